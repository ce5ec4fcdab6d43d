package chart

import (
	"github.com/shopspring/decimal"

	"github.com/Veraticus/optifi/internal/model"
)

// Default chart text.
const (
	DefaultTitle   = "Total Spending by Category"
	DefaultSummary = "Distribution of your expenses."
	DefaultDataKey = "amount"
)

// DefaultSpec builds the spending-by-category pie from raw transactions.
// Categories keep the order of their first withdrawal and totals are rounded to cents.
func DefaultSpec(transactions []model.Transaction) model.ChartSpec {
	var order []string
	totals := make(map[string]decimal.Decimal)

	for _, txn := range transactions {
		if !txn.IsWithdrawal() {
			continue
		}
		sum, seen := totals[txn.Category]
		if !seen {
			order = append(order, txn.Category)
		}
		totals[txn.Category] = sum.Add(txn.Amount)
	}

	data := make([]model.Row, 0, len(order))
	for _, category := range order {
		data = append(data, model.Row{
			nameField:      category,
			DefaultDataKey: totals[category].Round(2).InexactFloat64(),
		})
	}

	return model.ChartSpec{
		ChartType: model.ChartPie,
		Title:     DefaultTitle,
		Summary:   DefaultSummary,
		Data:      data,
		DataKey:   DefaultDataKey,
	}
}
