package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/tui/themes"
	"github.com/Veraticus/optifi/internal/tui/viewmodel"
)

// StatsPanelModel displays the statistic cards.
type StatsPanelModel struct {
	theme       themes.Theme
	err         error
	view        viewmodel.StatsView
	savingsBar  progress.Model
	savingsRate float64
	width       int
	loaded      bool
	loading     bool
	compact     bool
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	bar := progress.New(progress.WithSolidFill(string(theme.Success)))
	bar.ShowPercentage = false

	return StatsPanelModel{
		theme:      theme,
		savingsBar: bar,
		width:      80,
	}
}

// SetFeed replaces the displayed statistics with the feed's current state.
func (m *StatsPanelModel) SetFeed(feed dashboard.Feed[model.Stats]) {
	m.loading = feed.Loading()
	m.err = feed.Err
	m.loaded = feed.HasData
	if feed.HasData {
		m.view = viewmodel.NewStatsView(feed.Data)
		m.savingsRate = feed.Data.SavingsRate
	}
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if !m.loaded {
		return m.renderPlaceholder()
	}
	if m.compact {
		return m.renderCompact()
	}
	return m.renderFull()
}

func (m StatsPanelModel) renderPlaceholder() string {
	line := m.theme.StatusPending.Render("Loading statistics...")
	if !m.loading && m.err != nil {
		line = m.theme.StatusError.Render("Statistics unavailable: " + common.UserMessage(m.err, "connection failed"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.theme.Title.Render("Overview"), line)
}

// renderCompact renders the cards as two text lines.
func (m StatsPanelModel) renderCompact() string {
	row := func(cards []viewmodel.Card) string {
		parts := make([]string, 0, len(cards))
		for _, c := range cards {
			parts = append(parts, fmt.Sprintf("%s %s", c.Label+":", m.toneStyle(c.Tone).Render(c.Value)))
		}
		return ansi.Truncate(strings.Join(parts, " | "), m.width, "…")
	}
	return lipgloss.JoinVertical(lipgloss.Left, row(m.view.General), row(m.view.Insights))
}

// renderFull renders two rows of cards and a savings rate gauge.
func (m StatsPanelModel) renderFull() string {
	m.savingsBar.Width = max(10, m.width-lipgloss.Width("Savings rate  "))
	gauge := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.theme.Subtitle.Render("Savings rate  "),
		m.savingsBar.ViewAs(clampPercent(m.savingsRate)),
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderRow(m.view.General),
		m.renderRow(m.view.Insights),
		gauge,
	)

	if m.err != nil {
		stale := m.theme.StatusWarning.Render("(stale)")
		content = lipgloss.JoinVertical(lipgloss.Left, content, stale)
	}
	return content
}

func (m StatsPanelModel) renderRow(cards []viewmodel.Card) string {
	if len(cards) == 0 {
		return ""
	}
	// Each card adds a border on both sides.
	cardWidth := max(12, m.width/len(cards)-2)

	rendered := make([]string, 0, len(cards))
	for _, c := range cards {
		label := ansi.Truncate(c.Label, cardWidth-2, "…")
		value := m.toneStyle(c.Tone).Bold(true).Render(c.Value)
		if c.Note != "" {
			value += " " + lipgloss.NewStyle().Foreground(m.theme.Muted).Render(c.Note)
		}
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Foreground(m.theme.Muted).Render(label),
			value,
		)
		rendered = append(rendered, m.theme.Card.Width(cardWidth).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m StatsPanelModel) toneStyle(t viewmodel.Tone) lipgloss.Style {
	switch t {
	case viewmodel.ToneGood:
		return lipgloss.NewStyle().Foreground(m.theme.Success)
	case viewmodel.ToneWarning:
		return lipgloss.NewStyle().Foreground(m.theme.Warning)
	case viewmodel.ToneBad:
		return lipgloss.NewStyle().Foreground(m.theme.Error)
	default:
		return m.theme.Normal
	}
}

// SetCompact sets compact mode.
func (m *StatsPanelModel) SetCompact(compact bool) {
	m.compact = compact
}

// Resize updates the component size.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
}

func clampPercent(v float64) float64 {
	return min(max(v/100, 0), 1)
}
