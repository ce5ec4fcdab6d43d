package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

// NoVisualization is shown before any chart has been produced.
const NoVisualization = "No visualization yet. Describe a chart below."

// ChartPaneModel draws the visualization slot and takes ad-hoc chart prompts.
type ChartPaneModel struct {
	theme     themes.Theme
	rendering chart.Rendering
	input     textinput.Model
	width     int
	height    int
	loading   bool
}

// NewChartPaneModel creates an empty visualization pane.
func NewChartPaneModel(theme themes.Theme) ChartPaneModel {
	input := textinput.New()
	input.Placeholder = "e.g. spending by day this week"
	input.Prompt = "Visualize: "
	input.CharLimit = 200

	m := ChartPaneModel{theme: theme, input: input}
	m.Resize(40, 12)
	return m
}

// Update handles key presses while the pane is focused.
func (m ChartPaneModel) Update(msg tea.Msg) (ChartPaneModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "enter" {
		prompt := strings.TrimSpace(m.input.Value())
		if prompt == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, emit(VisualizeSubmittedMsg{Prompt: prompt})
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetSnapshot picks up the current visualization.
func (m *ChartPaneModel) SetSnapshot(snap dashboard.Snapshot) {
	m.loading = snap.Visualize.Loading()
	m.rendering = nil
	if r, ok := snap.Rendering(); ok {
		m.rendering = r
	}
}

// Rendering returns the interpreted visualization, or nil when the slot is empty.
func (m ChartPaneModel) Rendering() chart.Rendering {
	return m.rendering
}

// Focus activates the prompt.
func (m *ChartPaneModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur deactivates the prompt.
func (m *ChartPaneModel) Blur() {
	m.input.Blur()
}

// View renders the chart above the prompt.
func (m ChartPaneModel) View() string {
	var body string
	switch {
	case m.loading:
		body = m.theme.StatusPending.Render("Generating chart...")
	case m.rendering == nil:
		body = lipgloss.NewStyle().Foreground(m.theme.Muted).Render(NoVisualization)
	default:
		body = chart.Draw(m.rendering, m.width)
	}

	body = lipgloss.NewStyle().
		Height(max(1, m.height-1)).
		MaxHeight(max(1, m.height-1)).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.input.View())
}

// Resize updates the component size.
func (m *ChartPaneModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-lipgloss.Width(m.input.Prompt)-1)
}
