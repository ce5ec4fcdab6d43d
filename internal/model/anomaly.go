package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Anomaly is a transaction the analysis backend flagged as unusual.
type Anomaly struct {
	ID          ID              `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Date        string          `json:"date"`
	Severity    string          `json:"severity,omitempty"`
	FlagReasons []string        `json:"flag_reasons"`
	Amount      decimal.Decimal `json:"amount"`
}

// Explanation joins the flag reasons in order.
func (a Anomaly) Explanation() string {
	return strings.Join(a.FlagReasons, ", ")
}

// ExplanationIndex maps transaction ids to their joined flag reasons.
func ExplanationIndex(anomalies []Anomaly) map[ID]string {
	index := make(map[ID]string, len(anomalies))
	for _, a := range anomalies {
		index[a.ID] = a.Explanation()
	}
	return index
}
