package dashboard

import (
	"sync"

	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// Tab selects which list the transactions pane shows.
type Tab string

// Transaction pane tabs.
const (
	TabAll     Tab = "all"
	TabUnusual Tab = "unusual"
)

// VisualizationFailed is shown when a visualization request cannot reach the backend.
const VisualizationFailed = "Connection failed."

// State is the single record of everything the dashboard shows.
// Each feed has its own Begin and Resolve operation; all writes are serialized.
type State struct {
	explanations  map[model.ID]string
	revealed      map[model.ID]bool
	stats         Feed[model.Stats]
	anomalies     Feed[[]model.Anomaly]
	transactions  Feed[[]model.Transaction]
	subscriptions Feed[[]model.Subscription]
	forecast      Feed[model.ForecastResult]
	visualize     Feed[model.ChartSpec]
	search        string
	tab           Tab
	viz           model.ChartSpec
	mu            sync.Mutex
	policy        WritePolicy
	vizRevision   int
	vizEverSet    bool
}

// NewState creates an empty state using policy for out-of-order responses.
func NewState(policy WritePolicy) *State {
	return &State{
		policy:       policy,
		tab:          TabAll,
		explanations: make(map[model.ID]string),
		revealed:     make(map[model.ID]bool),
	}
}

// Policy returns the write policy in effect.
func (s *State) Policy() WritePolicy {
	return s.policy
}

// BeginStats marks a stats request as dispatched.
func (s *State) BeginStats() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats.begin()
}

// ResolveStats applies a stats response. A failure keeps the previous stats.
func (s *State) ResolveStats(t Ticket, stats model.Stats, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stats.end(t, s.policy) {
		return
	}
	if err != nil {
		s.stats.Err = err
		return
	}
	s.stats.set(stats)
}

// BeginAnomalies marks an anomaly analysis as dispatched.
func (s *State) BeginAnomalies() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.anomalies.begin()
}

// ResolveAnomalies applies an analysis. The list and the explanation lookup change only
// when the response carried an anomalies key.
func (s *State) ResolveAnomalies(t Ticket, resp service.AnomalyResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.anomalies.end(t, s.policy) {
		return
	}
	if err != nil {
		s.anomalies.Err = err
		return
	}
	if !resp.Present {
		return
	}
	s.anomalies.set(resp.Anomalies)
	s.explanations = model.ExplanationIndex(resp.Anomalies)
}

// BeginTransactions marks a transactions fetch as dispatched.
func (s *State) BeginTransactions() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transactions.begin()
}

// ResolveTransactions replaces the transaction list on success and offers it to the
// default chart synthesizer. A failure keeps the list on screen.
func (s *State) ResolveTransactions(t Ticket, transactions []model.Transaction, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.transactions.end(t, s.policy) {
		return
	}
	if err != nil {
		s.transactions.Err = err
		return
	}
	s.transactions.set(transactions)

	if !s.vizEverSet && len(transactions) > 0 {
		s.setVisualization(chart.DefaultSpec(transactions))
	}
}

// BeginSubscriptions marks a subscription scan as dispatched.
func (s *State) BeginSubscriptions() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscriptions.begin()
}

// ResolveSubscriptions replaces the subscription list on success.
// A domain error or a failure leaves the list untouched.
func (s *State) ResolveSubscriptions(t Ticket, resp service.SubscriptionsResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.subscriptions.end(t, s.policy) {
		return
	}
	switch {
	case err != nil:
		s.subscriptions.Err = err
	case resp.Error != "":
		s.subscriptions.Err = common.NewUserError(resp.Error, nil)
	default:
		subs := resp.Subscriptions
		if subs == nil {
			subs = []model.Subscription{}
		}
		s.subscriptions.set(subs)
	}
}

// BeginForecast marks a goal forecast as dispatched and clears the previous result.
func (s *State) BeginForecast() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forecast.Data = model.ForecastResult{}
	s.forecast.HasData = false
	return s.forecast.begin()
}

// ResolveForecast shows the narrative, or a fallback when the backend refused or was unreachable.
func (s *State) ResolveForecast(t Ticket, resp service.ForecastResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.forecast.end(t, s.policy) {
		return
	}
	if err != nil {
		s.forecast.Err = err
		s.forecast.set(model.ForecastResult{Message: model.ForecastConnError})
		return
	}
	s.forecast.set(resp.Result())
}

// BeginVisualize marks an ad-hoc visualization request as dispatched and empties the
// visualization slot. The slot still counts as set, so the default chart stays out.
func (s *State) BeginVisualize() Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setVisualization(model.ChartSpec{})
	return s.visualize.begin()
}

// ResolveVisualize puts the returned spec, or an error descriptor, into the visualization slot.
func (s *State) ResolveVisualize(t Ticket, resp service.VisualizeResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.visualize.end(t, s.policy) {
		return
	}
	if err != nil {
		s.visualize.Err = err
		s.setVisualization(model.ChartSpec{Error: VisualizationFailed})
		return
	}
	spec := resp.Spec()
	s.visualize.set(spec)
	s.setVisualization(spec)
}

// SetVisualization replaces the visualization slot, as a chat reply with a chart does.
func (s *State) SetVisualization(spec model.ChartSpec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setVisualization(spec)
}

func (s *State) setVisualization(spec model.ChartSpec) {
	s.viz = spec
	s.vizRevision++
	s.vizEverSet = true
}

// SetSearch sets the transaction filter.
func (s *State) SetSearch(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = query
}

// SetTab selects the transactions pane tab. Unknown tabs fall back to TabAll.
func (s *State) SetTab(tab Tab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tab != TabUnusual {
		tab = TabAll
	}
	s.tab = tab
}

// ToggleExplanation shows or hides the flag reasons of an anomalous transaction.
// It reports whether the explanation is now visible.
func (s *State) ToggleExplanation(id model.ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.explanations[id]; !ok {
		return false
	}
	s.revealed[id] = !s.revealed[id]
	return s.revealed[id]
}

// Explanation returns the joined flag reasons for id.
func (s *State) Explanation(id model.ID) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.explanations[id]
	return text, ok
}

// Snapshot is a consistent copy of the state for rendering.
// VizRevision counts replacements of the visualization slot.
type Snapshot struct {
	Explanations  map[model.ID]string
	Revealed      map[model.ID]bool
	Stats         Feed[model.Stats]
	Anomalies     Feed[[]model.Anomaly]
	Transactions  Feed[[]model.Transaction]
	Subscriptions Feed[[]model.Subscription]
	Forecast      Feed[model.ForecastResult]
	Visualize     Feed[model.ChartSpec]
	Search        string
	Tab           Tab
	Visualization model.ChartSpec
	VizRevision   int
	VizSet        bool
}

// Snapshot copies the current state. Lists are shared; they are replaced, never mutated.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	explanations := make(map[model.ID]string, len(s.explanations))
	for k, v := range s.explanations {
		explanations[k] = v
	}
	revealed := make(map[model.ID]bool, len(s.revealed))
	for k, v := range s.revealed {
		if v {
			revealed[k] = true
		}
	}

	return Snapshot{
		Explanations:  explanations,
		Revealed:      revealed,
		Stats:         s.stats,
		Anomalies:     s.anomalies,
		Transactions:  s.transactions,
		Subscriptions: s.subscriptions,
		Forecast:      s.forecast,
		Visualize:     s.visualize,
		Search:        s.search,
		Tab:           s.tab,
		Visualization: s.viz,
		VizRevision:   s.vizRevision,
		VizSet:        s.vizEverSet,
	}
}

// VisibleTransactions applies the search filter to the transaction list.
func (s Snapshot) VisibleTransactions() []model.Transaction {
	if s.Search == "" {
		return s.Transactions.Data
	}
	out := make([]model.Transaction, 0, len(s.Transactions.Data))
	for _, t := range s.Transactions.Data {
		if t.Matches(s.Search) {
			out = append(out, t)
		}
	}
	return out
}

// IsAnomalous reports whether the transaction was flagged by the last analysis.
func (s Snapshot) IsAnomalous(id model.ID) bool {
	_, ok := s.Explanations[id]
	return ok
}

// Rendering interprets the visualization slot.
func (s Snapshot) Rendering() (chart.Rendering, bool) {
	if !s.VizSet || s.Visualization.IsEmpty() {
		return nil, false
	}
	return chart.Interpret(s.Visualization), true
}

// Loading reports whether any feed has a request in flight.
func (s Snapshot) Loading() bool {
	return s.Stats.Loading() || s.Anomalies.Loading() || s.Transactions.Loading() ||
		s.Subscriptions.Loading() || s.Forecast.Loading() || s.Visualize.Loading()
}
