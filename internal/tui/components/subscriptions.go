package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

// SubscriptionsModel lists recurring charges found by the last scan.
type SubscriptionsModel struct {
	theme   themes.Theme
	err     error
	subs    []model.Subscription
	list    viewport.Model
	width   int
	height  int
	loading bool
	scanned bool
}

// NewSubscriptionsModel creates an empty subscriptions pane.
func NewSubscriptionsModel(theme themes.Theme) SubscriptionsModel {
	m := SubscriptionsModel{theme: theme, list: viewport.New(40, 8)}
	m.Resize(40, 10)
	return m
}

// Update scrolls the list while the pane is focused.
func (m SubscriptionsModel) Update(msg tea.Msg) (SubscriptionsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// SetFeed picks up the subscription feed.
func (m *SubscriptionsModel) SetFeed(feed dashboard.Feed[[]model.Subscription]) {
	m.loading = feed.Loading()
	m.err = feed.Err
	m.scanned = feed.HasData
	m.subs = feed.Data
	m.list.SetContent(m.renderList())
}

// Total sums the monthly amount of the listed charges.
func (m SubscriptionsModel) Total() string {
	total := model.SumSubscriptions(m.subs)
	return "$" + total.StringFixed(2)
}

// View renders the subscription list with its status line.
func (m SubscriptionsModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderStatus(), m.list.View())
}

func (m SubscriptionsModel) renderStatus() string {
	switch {
	case m.loading:
		return m.theme.StatusPending.Render("Scanning for recurring charges...")
	case m.err != nil && common.IsFeedFailure(m.err):
		return m.theme.StatusError.Render("Scan failed. Press r to retry.")
	case m.err != nil:
		return m.theme.StatusWarning.Render(ansi.Truncate(common.UserMessage(m.err, "Scan failed."), m.width, "…"))
	case !m.scanned:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Press r to scan.")
	case len(m.subs) == 0:
		return lipgloss.NewStyle().Foreground(m.theme.Muted).Render("No recurring charges found.")
	default:
		return m.theme.Subtitle.Render(fmt.Sprintf("%d recurring, %s total", len(m.subs), m.Total()))
	}
}

func (m SubscriptionsModel) renderList() string {
	lines := make([]string, 0, 2*len(m.subs))
	for _, s := range m.subs {
		marker := m.theme.StatusSuccess.Render("●")
		if !s.IsConfirmed() {
			marker = m.theme.StatusWarning.Render("◐")
		}

		amount := "$" + s.Amount.StringFixed(2)
		if s.Frequency != "" {
			amount += "/" + s.Frequency
		}
		name := ansi.Truncate(s.Name, max(4, m.width-lipgloss.Width(amount)-3), "…")
		gap := max(1, m.width-2-lipgloss.Width(name)-lipgloss.Width(amount))
		lines = append(lines, marker+" "+m.theme.Bold.Render(name)+strings.Repeat(" ", gap)+amount)

		detail := s.Type
		if s.Note != "" {
			detail += ": " + s.Note
		}
		lines = append(lines, "  "+m.theme.Italic.Render(ansi.Truncate(detail, max(4, m.width-2), "…")))
	}
	return strings.Join(lines, "\n")
}

// Resize updates the component size.
func (m *SubscriptionsModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.list.Width = width
	m.list.Height = max(1, height-1)
	m.list.SetContent(m.renderList())
}
