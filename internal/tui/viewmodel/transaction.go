package viewmodel

import (
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
)

// EmptyTransactions is shown when the search leaves nothing to list.
const EmptyTransactions = "No transactions found."

// TransactionListView represents the transactions pane.
type TransactionListView struct {
	Search string
	Tab    dashboard.Tab
	Rows   []TransactionRow
	// Anomalies counts flagged transactions for the tab label.
	Anomalies int
	Loading   bool
}

// TransactionRow represents one line of the transactions pane.
type TransactionRow struct {
	ID          model.ID
	Description string
	Category    string
	Date        string
	Amount      string
	Explanation string
	Severity    string
	Deposit     bool
	Flagged     bool
	Revealed    bool
}

// NewTransactionListView builds the rows of the selected tab.
// The search filter only narrows the all tab.
func NewTransactionListView(snap dashboard.Snapshot) TransactionListView {
	view := TransactionListView{
		Search:    snap.Search,
		Tab:       snap.Tab,
		Anomalies: len(snap.Anomalies.Data),
	}

	if snap.Tab == dashboard.TabUnusual {
		view.Loading = snap.Anomalies.Loading()
		for _, a := range snap.Anomalies.Data {
			explanation, ok := snap.Explanations[a.ID]
			if !ok {
				explanation = a.Explanation()
			}
			view.Rows = append(view.Rows, TransactionRow{
				ID:          a.ID,
				Description: a.Description,
				Category:    a.Category,
				Date:        a.Date,
				Amount:      "-$" + a.Amount.StringFixed(2),
				Explanation: explanation,
				Severity:    a.Severity,
				Flagged:     true,
				Revealed:    snap.Revealed[a.ID],
			})
		}
		return view
	}

	view.Loading = snap.Transactions.Loading()
	for _, t := range snap.VisibleTransactions() {
		row := TransactionRow{
			ID:          t.ID,
			Description: t.Description,
			Category:    t.Category,
			Date:        t.Date,
			Amount:      t.SignedAmount(),
			Deposit:     !t.IsWithdrawal(),
			Flagged:     snap.IsAnomalous(t.ID),
			Revealed:    snap.Revealed[t.ID],
		}
		if row.Flagged {
			row.Explanation = snap.Explanations[t.ID]
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// IsEmpty returns true if there are no rows to show.
func (v TransactionListView) IsEmpty() bool {
	return len(v.Rows) == 0
}

// FeedStatuses summarizes every feed for the status bar, in a fixed order.
func FeedStatuses(snap dashboard.Snapshot) []FeedStatus {
	return []FeedStatus{
		feedStatus(dashboard.FeedStats, snap.Stats.Loading(), snap.Stats.Err),
		feedStatus(dashboard.FeedTransactions, snap.Transactions.Loading(), snap.Transactions.Err),
		feedStatus(dashboard.FeedAnomalies, snap.Anomalies.Loading(), snap.Anomalies.Err),
		feedStatus(dashboard.FeedSubscriptions, snap.Subscriptions.Loading(), snap.Subscriptions.Err),
		feedStatus(dashboard.FeedForecast, snap.Forecast.Loading(), snap.Forecast.Err),
		feedStatus(dashboard.FeedVisualize, snap.Visualize.Loading(), snap.Visualize.Err),
	}
}

func feedStatus(name string, loading bool, err error) FeedStatus {
	status := FeedStatus{Name: name, Loading: loading}
	if err != nil {
		status.Error = common.UserMessage(err, "unavailable")
	}
	return status
}
