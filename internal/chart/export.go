package chart

import (
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Veraticus/optifi/internal/common"
)

// Size is the pixel size of an exported image.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when an export is asked for without dimensions.
var DefaultSize = Size{Width: 1024, Height: 576}

const (
	barWidth   = 40
	barSpacing = 16
)

// ExportPNG draws r as a PNG image. Only pie, bar and line renderings can be exported.
func ExportPNG(r Rendering, w io.Writer, size Size) error {
	if size.Width <= 0 || size.Height <= 0 {
		size = DefaultSize
	}

	var err error
	switch c := r.(type) {
	case PieChart:
		err = pieChart(c, size).Render(gochart.PNG, w)
	case BarChart:
		err = barChart(c, size).Render(gochart.PNG, w)
	case LineChart:
		err = lineChart(c, size).Render(gochart.PNG, w)
	default:
		return fmt.Errorf("%w: %s", common.ErrNotRenderable, r.Kind())
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", r.Kind(), err)
	}
	return nil
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func pieChart(c PieChart, size Size) gochart.PieChart {
	values := make([]gochart.Value, len(c.Segments))
	for i, s := range c.Segments {
		values[i] = gochart.Value{
			Label: fmt.Sprintf("%s %d%%", s.Label, s.Percent),
			Value: s.Value,
			Style: gochart.Style{
				FillColor:   hexColor(s.Color),
				StrokeColor: drawing.ColorWhite,
				StrokeWidth: 1,
			},
		}
	}
	return gochart.PieChart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
}

func barChart(c BarChart, size Size) gochart.BarChart {
	bars := make([]gochart.Value, len(c.Bars))
	for i, b := range c.Bars {
		bars[i] = gochart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: gochart.Style{
				FillColor:   hexColor(b.Color),
				StrokeColor: hexColor(b.Color),
			},
		}
	}

	// go-chart refuses to draw bars that do not fit the canvas.
	width := max(size.Width, len(c.Bars)*(barWidth+barSpacing)+2*barWidth)

	return gochart.BarChart{
		Title:      c.Title,
		Width:      width,
		Height:     size.Height,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Bars:       bars,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
	}
}

func lineChart(c LineChart, size Size) gochart.Chart {
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	ticks := make([]gochart.Tick, len(c.Points))
	for i, p := range c.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.Label}
	}

	// A single point has no x range; pad it the way go-chart expects.
	if len(xs) == 1 {
		xs = append(xs, 1)
		ys = append(ys, ys[0])
		ticks = append(ticks, gochart.Tick{Value: 1})
	}

	points := c.Points
	series := gochart.ContinuousSeries{
		Name:    c.Title,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: hexColor(LineColor),
			StrokeWidth: 3,
			DotWidthProvider: func(_, _ gochart.Range, index int, _, _ float64) float64 {
				if index < len(points) {
					return points[index].Marker.Radius
				}
				return 0
			},
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				if index < len(points) && points[index].Anomaly {
					return hexColor(AnomalyMarker.Stroke)
				}
				return hexColor(StandardMarker.Fill)
			},
		},
	}

	ch := gochart.Chart{
		Title:  c.Title,
		Width:  size.Width,
		Height: size.Height,
		XAxis:  gochart.XAxis{Ticks: ticks},
		Series: []gochart.Series{series},
	}

	lo, hi := ys[0], ys[0]
	for _, y := range ys {
		lo = min(lo, y)
		hi = max(hi, y)
	}
	if lo == hi {
		ch.YAxis = gochart.YAxis{Range: &gochart.ContinuousRange{Min: lo - 1, Max: hi + 1}}
	}

	return ch
}
