package model

import "github.com/shopspring/decimal"

// SubscriptionTypeConfirmed marks a recurring charge the backend is sure about.
const SubscriptionTypeConfirmed = "Subscription"

// Subscription is a recurring charge detected by the backend.
type Subscription struct {
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Note       string          `json:"ai_note"`
	Frequency  string          `json:"frequency,omitempty"`
	Confidence string          `json:"confidence,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
}

// IsConfirmed reports whether the entry is a known subscription rather than a probable gray charge.
func (s Subscription) IsConfirmed() bool {
	return s.Type == SubscriptionTypeConfirmed
}

// SumSubscriptions totals the amounts of subs.
func SumSubscriptions(subs []Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, s := range subs {
		total = total.Add(s.Amount)
	}
	return total
}
