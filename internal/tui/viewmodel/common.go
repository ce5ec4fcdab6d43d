// Package viewmodel turns dashboard state into display-ready values.
package viewmodel

import "fmt"

// Pane identifies a focusable area of the dashboard.
type Pane int

const (
	// PaneChat is the conversation with the financial coach.
	PaneChat Pane = iota
	// PaneChart is the visualization slot and its prompt.
	PaneChart
	// PaneTransactions is the transaction list with its tabs.
	PaneTransactions
	// PaneSubscriptions lists detected recurring charges.
	PaneSubscriptions
	// PaneForecast is the savings goal form.
	PaneForecast

	paneCount
)

// String returns the pane title.
func (p Pane) String() string {
	switch p {
	case PaneChat:
		return "Chat"
	case PaneChart:
		return "Visualization"
	case PaneTransactions:
		return "Transactions"
	case PaneSubscriptions:
		return "Subscriptions"
	case PaneForecast:
		return "Goal Forecast"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// Next returns the pane after p, wrapping around.
func (p Pane) Next() Pane {
	return (p + 1) % paneCount
}

// Prev returns the pane before p, wrapping around.
func (p Pane) Prev() Pane {
	return (p + paneCount - 1) % paneCount
}

// FeedStatus summarizes a feed for the status bar.
type FeedStatus struct {
	Name    string
	Error   string
	Loading bool
}
