package chart

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	minDrawWidth  = 24
	maxLabelWidth = 16
	blockGlyph    = "█"
	segmentGlyph  = "■"
	pointGlyph    = "●"
	anomalyGlyph  = "◉"
	trackGlyph    = "·"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Italic(true)
	advisoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f59e0b"))
	failureStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#737373"))
)

// Draw renders r as terminal text at most width cells wide.
func Draw(r Rendering, width int) string {
	if width < minDrawWidth {
		width = minDrawWidth
	}

	switch c := r.(type) {
	case PieChart:
		return withHeader(c.Header, drawPie(c, width), width)
	case BarChart:
		return withHeader(c.Header, drawBars(c, width), width)
	case LineChart:
		return withHeader(c.Header, drawLine(c, width), width)
	case Unsupported:
		return advisoryStyle.Render(c.Advisory())
	case Invalid:
		return advisoryStyle.Render(ansi.Truncate(c.Advisory(), width, "…"))
	case Failed:
		return failureStyle.Render(c.Message)
	default:
		return advisoryStyle.Render("Nothing to display.")
	}
}

func withHeader(h Header, body string, width int) string {
	var parts []string
	if h.Title != "" {
		parts = append(parts, titleStyle.Render(ansi.Truncate(h.Title, width, "…")))
	}
	parts = append(parts, body)
	if h.Summary != "" {
		parts = append(parts, summaryStyle.Width(width).Render(h.Summary))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func labelColumn(labels []string) int {
	w := 0
	for _, l := range labels {
		w = max(w, lipgloss.Width(l))
	}
	return min(w, maxLabelWidth)
}

func padLabel(label string, w int) string {
	label = ansi.Truncate(label, w, "…")
	return label + strings.Repeat(" ", max(0, w-lipgloss.Width(label)))
}

func drawPie(c PieChart, width int) string {
	if len(c.Segments) == 0 {
		return mutedStyle.Render("No data.")
	}

	labels := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		labels[i] = s.Label
	}
	lw := labelColumn(labels)
	area := max(1, width-lw-9)

	lines := make([]string, len(c.Segments))
	for i, s := range c.Segments {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color))
		n := int(s.Share * float64(area))
		lines[i] = fmt.Sprintf("%s %s %3d%% %s",
			style.Render(segmentGlyph),
			padLabel(s.Label, lw),
			s.Percent,
			style.Render(strings.Repeat(blockGlyph, max(0, n))),
		)
	}
	return strings.Join(lines, "\n")
}

func drawBars(c BarChart, width int) string {
	if len(c.Bars) == 0 {
		return mutedStyle.Render("No data.")
	}

	labels := make([]string, len(c.Bars))
	values := make([]string, len(c.Bars))
	var peak float64
	vw := 0
	for i, b := range c.Bars {
		labels[i] = b.Label
		values[i] = formatValue(b.Value)
		vw = max(vw, len(values[i]))
		peak = max(peak, b.Value)
	}
	lw := labelColumn(labels)
	area := max(1, width-lw-vw-2)

	lines := make([]string, len(c.Bars))
	for i, b := range c.Bars {
		n := 0
		if peak > 0 && b.Value > 0 {
			n = max(1, int(b.Value/peak*float64(area)))
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color))
		bar := style.Render(strings.Repeat(blockGlyph, n))
		lines[i] = padLabel(b.Label, lw) + " " + bar + strings.Repeat(" ", area-n+1) + fmt.Sprintf("%*s", vw, values[i])
	}
	return strings.Join(lines, "\n")
}

func drawLine(c LineChart, width int) string {
	if len(c.Points) == 0 {
		return mutedStyle.Render("No data.")
	}

	labels := make([]string, len(c.Points))
	values := make([]string, len(c.Points))
	lo, hi := c.Points[0].Value, c.Points[0].Value
	vw := 0
	for i, p := range c.Points {
		labels[i] = p.Label
		values[i] = formatValue(p.Value)
		vw = max(vw, len(values[i]))
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
	}
	lw := labelColumn(labels)
	area := max(2, width-lw-vw-2)

	line := lipgloss.NewStyle().Foreground(lipgloss.Color(LineColor))
	anomaly := lipgloss.NewStyle().Foreground(lipgloss.Color(AnomalyMarker.Stroke)).Bold(true)

	lines := make([]string, len(c.Points))
	for i, p := range c.Points {
		pos := 0
		if hi > lo {
			pos = int((p.Value - lo) / (hi - lo) * float64(area-1))
		}
		glyph := line.Render(pointGlyph)
		if p.Anomaly {
			glyph = anomaly.Render(anomalyGlyph)
		}
		track := mutedStyle.Render(strings.Repeat(trackGlyph, pos)) + glyph + strings.Repeat(" ", area-pos-1)
		lines[i] = padLabel(p.Label, lw) + " " + track + " " + fmt.Sprintf("%*s", vw, values[i])
	}
	return strings.Join(lines, "\n")
}

func formatValue(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
