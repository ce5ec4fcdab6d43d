package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/tui/viewmodel"
)

const (
	// forecastPaneHeight fits the three fields, the action line and a short narrative.
	forecastPaneHeight = 12
	// fullStatsMinHeight is the terminal height needed for the card layout of the stats.
	fullStatsMinHeight = 40
	paneChromeWidth    = 4
	paneChromeHeight   = 3
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if !m.ready {
		return m.renderLoading()
	}

	if m.showHelp {
		return m.renderHelp()
	}

	m.handleResize()
	if m.width < compactWidth {
		return m.renderCompactView()
	}
	return m.renderFullView()
}

// handleResize adjusts component sizes to the terminal.
func (m *Model) handleResize() {
	m.stats.SetCompact(m.width < compactWidth || m.height < fullStatsMinHeight)
	m.stats.Resize(m.width)
	m.help.Width = m.width

	bodyHeight := m.bodyHeight()
	if m.width < compactWidth {
		// One pane at a time below the pane tabs.
		w, h := innerSize(m.width, bodyHeight-1)
		m.chat.Resize(w, h)
		m.chart.Resize(w, h)
		m.list.Resize(w, h)
		m.subs.Resize(w, h)
		m.forecast.Resize(w)
		return
	}

	leftWidth, rightWidth := m.columnWidths()
	listHeight, chatHeight := m.leftHeights(bodyHeight)
	chartHeight, subsHeight := m.rightHeights(bodyHeight)

	m.list.Resize(innerSize(leftWidth, listHeight))
	m.chat.Resize(innerSize(leftWidth, chatHeight))
	m.chart.Resize(innerSize(rightWidth, chartHeight))
	m.subs.Resize(innerSize(rightWidth, subsHeight))
	w, _ := innerSize(rightWidth, forecastPaneHeight)
	m.forecast.Resize(w)
}

// bodyHeight is what remains for the panes after the stats and the status bar.
func (m Model) bodyHeight() int {
	return max(paneChromeHeight+1, m.height-lipgloss.Height(m.stats.View())-1)
}

func (m Model) columnWidths() (int, int) {
	left := m.width * 55 / 100
	return left, m.width - left
}

func (m Model) leftHeights(body int) (int, int) {
	list := body * 3 / 5
	return list, body - list
}

func (m Model) rightHeights(body int) (int, int) {
	rest := max(2*(paneChromeHeight+1), body-forecastPaneHeight)
	chart := rest * 3 / 5
	return chart, rest - chart
}

// innerSize returns the content size of a pane of the given outer size.
func innerSize(width, height int) (int, int) {
	return max(1, width-paneChromeWidth), max(1, height-paneChromeHeight)
}

// renderLoading renders the loading screen.
func (m Model) renderLoading() string {
	content := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Title.Render("Loading Optifi..."),
		"",
		m.spinner.View(),
		"",
		lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Connecting to your finance feeds..."),
	)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// renderCompactView shows the focused pane alone, below a row of pane tabs.
func (m Model) renderCompactView() string {
	bodyHeight := m.bodyHeight()

	tabs := make([]string, 0, 5)
	for p := viewmodel.PaneChat; p <= viewmodel.PaneForecast; p++ {
		if p == m.focus {
			tabs = append(tabs, m.theme.Selected.Render(" "+p.String()+" "))
			continue
		}
		tabs = append(tabs, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(" "+p.String()+" "))
	}
	tabRow := ansi.Truncate(strings.Join(tabs, ""), m.width, "…")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.stats.View(),
		tabRow,
		m.renderPane(m.focus, m.width, bodyHeight-1),
		m.renderStatusBar(),
	)
}

// renderFullView lays out every pane in two columns under the stats.
func (m Model) renderFullView() string {
	bodyHeight := m.bodyHeight()
	leftWidth, rightWidth := m.columnWidths()
	listHeight, chatHeight := m.leftHeights(bodyHeight)
	chartHeight, subsHeight := m.rightHeights(bodyHeight)

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderPane(viewmodel.PaneTransactions, leftWidth, listHeight),
		m.renderPane(viewmodel.PaneChat, leftWidth, chatHeight),
	)
	right := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderPane(viewmodel.PaneChart, rightWidth, chartHeight),
		m.renderPane(viewmodel.PaneSubscriptions, rightWidth, subsHeight),
		m.renderPane(viewmodel.PaneForecast, rightWidth, bodyHeight-chartHeight-subsHeight),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.stats.View(),
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		m.renderStatusBar(),
	)
}

// renderPane draws a titled, bordered pane of the given outer size.
func (m Model) renderPane(p viewmodel.Pane, width, height int) string {
	var body string
	switch p {
	case viewmodel.PaneChat:
		body = m.chat.View()
	case viewmodel.PaneChart:
		body = m.chart.View()
	case viewmodel.PaneTransactions:
		body = m.list.View()
	case viewmodel.PaneSubscriptions:
		body = m.subs.View()
	case viewmodel.PaneForecast:
		body = m.forecast.View()
	}

	style := m.theme.Pane
	title := m.theme.Subtitle.Render(p.String())
	if p == m.focus {
		style = m.theme.FocusedPane
		title = m.theme.Title.Render(p.String())
	}

	innerHeight := max(1, height-2)
	return style.
		Width(max(1, width-2)).
		Height(innerHeight).
		MaxHeight(height).
		Render(lipgloss.NewStyle().MaxHeight(innerHeight).Render(lipgloss.JoinVertical(lipgloss.Left, title, body)))
}

// renderStatusBar renders the bottom status bar.
func (m Model) renderStatusBar() string {
	var left []string
	if m.snapshot.Loading() {
		left = append(left, m.spinner.View()+" "+m.theme.StatusPending.Render("Loading"))
	}
	for _, st := range viewmodel.FeedStatuses(m.snapshot) {
		if st.Error != "" {
			left = append(left, m.theme.StatusError.Render(st.Name+": "+st.Error))
		}
	}
	if m.lastError != nil && !common.IsFeedFailure(m.lastError) {
		left = append(left, m.theme.StatusWarning.Render(m.lastError.Error()))
	}

	status := strings.Join(left, "  ")
	hint := m.help.ShortHelpView(m.keymap.ShortHelp())

	spacing := m.width - lipgloss.Width(status) - lipgloss.Width(hint)
	if spacing < 1 {
		status = ansi.Truncate(status, max(0, m.width-lipgloss.Width(hint)-2), "…")
		spacing = max(1, m.width-lipgloss.Width(status)-lipgloss.Width(hint))
	}

	return ansi.Truncate(status+strings.Repeat(" ", spacing)+hint, m.width, "")
}

// renderHelp renders the help screen.
func (m Model) renderHelp() string {
	title := m.theme.Title.Render("Optifi - Help")

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{m.keymap.NextPane, m.keymap.PrevPane, m.keymap.Leave, m.keymap.Submit}},
		{"Transactions", []key.Binding{m.keymap.Search, m.keymap.TabAll, m.keymap.TabUnusual, m.keymap.Explanation}},
		{"Feeds", []key.Binding{m.keymap.Rescan, m.keymap.RefreshAll}},
		{"Application", []key.Binding{m.keymap.Help, m.keymap.Quit, m.keymap.ForceQuit, m.keymap.ClearScreen}},
	}

	var content []string
	for _, section := range sections {
		content = append(content, m.theme.Subtitle.Render(section.title))
		for _, b := range section.bindings {
			h := b.Help()
			line := fmt.Sprintf("  %-12s %s",
				lipgloss.NewStyle().Foreground(m.theme.Primary).Render(h.Key),
				m.theme.Normal.Render(h.Desc),
			)
			content = append(content, line)
		}
		content = append(content, "")
	}

	footer := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press ? or Esc to close help")

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.theme.BorderedBox.
			Width(min(60, max(20, m.width-4))).
			MaxHeight(max(1, m.height-2)).
			Render(
				lipgloss.JoinVertical(
					lipgloss.Left,
					title,
					"",
					lipgloss.JoinVertical(lipgloss.Left, content...),
					footer,
				),
			),
	)
}
