package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
)

// activate runs the initial fetches.
func (m Model) activate() tea.Cmd {
	ctx, d := m.ctx, m.dash
	return func() tea.Msg {
		return activatedMsg{err: d.Activate(ctx)}
	}
}

// runFeed wraps a dashboard action in a command.
func (m Model) runFeed(feed string, action func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return feedDoneMsg{feed: feed, err: action(ctx)}
	}
}

// refreshAll refetches stats, transactions and the anomaly analysis.
func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.runFeed(dashboard.FeedStats, m.dash.RefreshStats),
		m.runFeed(dashboard.FeedTransactions, m.dash.RefreshTransactions),
		m.runFeed(dashboard.FeedAnomalies, m.dash.AnalyzeAnomalies),
	)
}

func (m Model) rescan() tea.Cmd {
	return m.runFeed(dashboard.FeedSubscriptions, m.dash.RescanSubscriptions)
}

func (m Model) sendChat(text string) tea.Cmd {
	return m.runFeed(dashboard.FeedChat, func(ctx context.Context) error {
		return m.dash.SendChat(ctx, text)
	})
}

func (m Model) forecastGoal(req model.GoalForecastRequest) tea.Cmd {
	return m.runFeed(dashboard.FeedForecast, func(ctx context.Context) error {
		return m.dash.ForecastGoal(ctx, req)
	})
}

func (m Model) visualize(prompt string) tea.Cmd {
	return m.runFeed(dashboard.FeedVisualize, func(ctx context.Context) error {
		return m.dash.Visualize(ctx, prompt)
	})
}
