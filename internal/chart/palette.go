package chart

// Palette is the fixed color cycle for pie segments and bars.
var Palette = []string{
	"#0088FE",
	"#00C49F",
	"#FFBB28",
	"#FF8042",
	"#8884d8",
	"#82ca9d",
	"#FF6B6B",
	"#4ECDC4",
	"#45B7D1",
	"#96CEB4",
	"#FFEEAD",
	"#D4A5A5",
	"#9B59B6",
	"#3498DB",
	"#E67E22",
	"#2ECC71",
	"#F1C40F",
	"#E74C3C",
	"#1ABC9C",
	"#34495E",
}

// LineColor is the stroke of line charts and the fill of their standard markers.
const LineColor = "#82ca9d"

// ColorAt returns the palette color for the record at position i.
func ColorAt(i int) string {
	n := len(Palette)
	i %= n
	if i < 0 {
		i += n
	}
	return Palette[i]
}
