package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// Feed names used in logs.
const (
	FeedStats         = "stats"
	FeedAnomalies     = "anomalies"
	FeedTransactions  = "transactions"
	FeedChat          = "chat"
	FeedForecast      = "forecast"
	FeedSubscriptions = "subscriptions"
	FeedVisualize     = "visualize"
)

// Dashboard wires the backend feeds to the view state.
// Every action records its outcome in State; the returned error is informational only.
type Dashboard struct {
	backend  service.Backend
	state    *State
	chat     *Conversation
	logger   *slog.Logger
	observer func(feed string, err error)
}

// New creates a dashboard over backend.
func New(backend service.Backend, policy WritePolicy) *Dashboard {
	return &Dashboard{
		backend: backend,
		state:   NewState(policy),
		chat:    NewConversation(),
		logger:  common.ComponentLogger("dashboard"),
	}
}

// State returns the view state.
func (d *Dashboard) State() *State {
	return d.state
}

// Observe registers fn to be called whenever a feed request finishes, failed or not.
// It must be set before any action runs.
func (d *Dashboard) Observe(fn func(feed string, err error)) {
	d.observer = fn
}

// Conversation returns the chat log.
func (d *Dashboard) Conversation() *Conversation {
	return d.chat
}

// Activate runs the initial fetches concurrently: subscription scan, transactions, stats
// and anomaly analysis. A failing feed never cancels the others.
func (d *Dashboard) Activate(ctx context.Context) error {
	d.logger.Info("activating dashboard")

	var g errgroup.Group
	g.Go(func() error {
		_ = d.RescanSubscriptions(ctx)
		return nil
	})
	g.Go(func() error {
		_ = d.RefreshTransactions(ctx)
		return nil
	})
	g.Go(func() error {
		_ = d.RefreshStats(ctx)
		return nil
	})
	g.Go(func() error {
		_ = d.AnalyzeAnomalies(ctx)
		return nil
	})
	// Feed failures are recorded in State; only cancellation is reported.
	_ = g.Wait()
	return ctx.Err()
}

// RefreshStats refetches the statistics.
func (d *Dashboard) RefreshStats(ctx context.Context) error {
	t := d.state.BeginStats()
	stats, err := d.backend.Stats(ctx)
	d.state.ResolveStats(t, stats, err)
	return d.report(FeedStats, err)
}

// AnalyzeAnomalies reruns the anomaly analysis.
func (d *Dashboard) AnalyzeAnomalies(ctx context.Context) error {
	t := d.state.BeginAnomalies()
	resp, err := d.backend.AnalyzeAnomalies(ctx)
	d.state.ResolveAnomalies(t, resp, err)
	return d.report(FeedAnomalies, err)
}

// RefreshTransactions refetches the transaction list.
func (d *Dashboard) RefreshTransactions(ctx context.Context) error {
	t := d.state.BeginTransactions()
	transactions, err := d.backend.Transactions(ctx)
	d.state.ResolveTransactions(t, transactions, err)
	return d.report(FeedTransactions, err)
}

// RescanSubscriptions runs a new subscription scan.
func (d *Dashboard) RescanSubscriptions(ctx context.Context) error {
	t := d.state.BeginSubscriptions()
	resp, err := d.backend.Subscriptions(ctx)
	d.state.ResolveSubscriptions(t, resp, err)
	if err == nil && resp.Error != "" {
		d.logger.Warn("subscription scan refused", "error", resp.Error)
	}
	return d.report(FeedSubscriptions, err)
}

// SendChat submits one chat turn. Blank input and input while a reply is pending are
// rejected before any request is made.
func (d *Dashboard) SendChat(ctx context.Context, text string) error {
	if err := d.chat.Submit(text); err != nil {
		return err
	}
	resp, err := d.backend.Chat(ctx, service.ChatRequest{Message: text})
	if spec := d.chat.Resolve(resp, err); spec != nil {
		d.state.SetVisualization(*spec)
	}
	return d.report(FeedChat, err)
}

// ForecastGoal asks whether a savings goal is reachable.
func (d *Dashboard) ForecastGoal(ctx context.Context, req model.GoalForecastRequest) error {
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %w", common.ErrInvalidGoal, err)
	}
	t := d.state.BeginForecast()
	resp, err := d.backend.Forecast(ctx, req)
	d.state.ResolveForecast(t, resp, err)
	return d.report(FeedForecast, err)
}

// Visualize asks the backend for a chart matching prompt.
func (d *Dashboard) Visualize(ctx context.Context, prompt string) error {
	t := d.state.BeginVisualize()
	resp, err := d.backend.Visualize(ctx, prompt)
	d.state.ResolveVisualize(t, resp, err)
	return d.report(FeedVisualize, err)
}

// SetSearch sets the transaction search filter.
func (d *Dashboard) SetSearch(query string) {
	d.state.SetSearch(query)
}

// SetTab selects the transactions pane tab.
func (d *Dashboard) SetTab(tab Tab) {
	d.state.SetTab(tab)
}

// ToggleExplanation reveals or hides why a transaction was flagged.
func (d *Dashboard) ToggleExplanation(id model.ID) bool {
	return d.state.ToggleExplanation(id)
}

func (d *Dashboard) report(feed string, err error) error {
	if d.observer != nil {
		d.observer(feed, err)
	}
	if err == nil {
		return nil
	}
	common.LogError(err, "feed request failed", common.Fields{
		"component": "dashboard",
		"feed":      feed,
	})
	return fmt.Errorf("%s feed: %w", feed, err)
}
