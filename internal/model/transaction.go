// Package model defines the domain types shared by the feeds, the chart interpreter and the UI.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionType tells deposits from withdrawals.
type TransactionType string

// Transaction types sent by the backend.
const (
	TypeWithdrawal TransactionType = "withdrawal"
	TypeDeposit    TransactionType = "deposit"
)

// ID identifies a transaction. The backend sends integers, but string ids are accepted too.
type ID string

// UnmarshalJSON accepts both JSON numbers and strings.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Transaction is a single account transaction as listed by the backend.
type Transaction struct {
	ID          ID              `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

// IsWithdrawal reports whether the transaction is money going out.
func (t Transaction) IsWithdrawal() bool {
	return t.Type == TypeWithdrawal
}

// SignedAmount formats the amount with a leading + for deposits and - otherwise.
func (t Transaction) SignedAmount() string {
	sign := "-"
	if t.Type == TypeDeposit {
		sign = "+"
	}
	return sign + "$" + t.Amount.StringFixed(2)
}

// Matches reports whether query is a case-insensitive substring of the description or category.
// An empty query matches everything.
func (t Transaction) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Description), q) ||
		strings.Contains(strings.ToLower(t.Category), q)
}
