package viewmodel

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

func loadedState(t *testing.T) *dashboard.State {
	t.Helper()

	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.ResolveTransactions(s.BeginTransactions(), []model.Transaction{
		{ID: "1", Description: "Blue Bottle", Category: "Coffee", Amount: decimal.RequireFromString("6.25"), Type: model.TypeWithdrawal, Date: "2024-03-01"},
		{ID: "2", Description: "ACME Corp Payroll", Category: "Income", Amount: decimal.NewFromInt(2400), Type: model.TypeDeposit, Date: "2024-03-01"},
		{ID: "3", Description: "Best Buy", Category: "Shopping", Amount: decimal.NewFromInt(1299), Type: model.TypeWithdrawal, Date: "2024-03-02"},
	}, nil)
	s.ResolveAnomalies(s.BeginAnomalies(), service.AnomalyResponse{
		Present: true,
		Anomalies: []model.Anomaly{{
			ID: "3", Description: "Best Buy", Date: "2024-03-02", Severity: "high",
			Amount: decimal.NewFromInt(1299), FlagReasons: []string{"5x category average", "new merchant"},
		}},
	}, nil)
	return s
}

func TestNewTransactionListView_All(t *testing.T) {
	s := loadedState(t)

	view := NewTransactionListView(s.Snapshot())

	require.Len(t, view.Rows, 3)
	assert.Equal(t, dashboard.TabAll, view.Tab)
	assert.Equal(t, 1, view.Anomalies)
	assert.Equal(t, "-$6.25", view.Rows[0].Amount)
	assert.False(t, view.Rows[0].Flagged)
	assert.Equal(t, "+$2400.00", view.Rows[1].Amount)
	assert.True(t, view.Rows[1].Deposit)
	assert.True(t, view.Rows[2].Flagged)
	assert.Equal(t, "5x category average, new merchant", view.Rows[2].Explanation)
	assert.False(t, view.Rows[2].Revealed)
}

func TestNewTransactionListView_SearchOnlyNarrowsAll(t *testing.T) {
	s := loadedState(t)
	s.SetSearch("coffee")

	all := NewTransactionListView(s.Snapshot())
	require.Len(t, all.Rows, 1)
	assert.Equal(t, model.ID("1"), all.Rows[0].ID)

	s.SetTab(dashboard.TabUnusual)
	unusual := NewTransactionListView(s.Snapshot())
	require.Len(t, unusual.Rows, 1)
	assert.Equal(t, model.ID("3"), unusual.Rows[0].ID)
}

func TestNewTransactionListView_Unusual(t *testing.T) {
	s := loadedState(t)
	s.SetTab(dashboard.TabUnusual)
	s.ToggleExplanation("3")

	view := NewTransactionListView(s.Snapshot())

	require.Len(t, view.Rows, 1)
	row := view.Rows[0]
	assert.Equal(t, "-$1299.00", row.Amount)
	assert.Equal(t, "high", row.Severity)
	assert.True(t, row.Flagged)
	assert.True(t, row.Revealed)
	assert.Equal(t, "5x category average, new merchant", row.Explanation)
}

func TestNewTransactionListView_Empty(t *testing.T) {
	s := loadedState(t)
	s.SetSearch("rent")

	view := NewTransactionListView(s.Snapshot())

	assert.True(t, view.IsEmpty())
	assert.Equal(t, "rent", view.Search)
}

func TestFeedStatuses(t *testing.T) {
	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.BeginStats()
	s.ResolveSubscriptions(s.BeginSubscriptions(), service.SubscriptionsResponse{Error: "Scan refused."}, nil)
	s.ResolveTransactions(s.BeginTransactions(), nil, fmt.Errorf("%w: timeout", common.ErrTransport))

	statuses := FeedStatuses(s.Snapshot())

	require.Len(t, statuses, 6)
	byName := make(map[string]FeedStatus, len(statuses))
	for _, st := range statuses {
		byName[st.Name] = st
	}
	assert.True(t, byName[dashboard.FeedStats].Loading)
	assert.Equal(t, "Scan refused.", byName[dashboard.FeedSubscriptions].Error)
	assert.Equal(t, "unavailable", byName[dashboard.FeedTransactions].Error)
	assert.Empty(t, byName[dashboard.FeedForecast].Error)
}
