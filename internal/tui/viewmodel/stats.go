package viewmodel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/optifi/internal/model"
)

// BurnRateLimit is the burn rate, in percent of the average pace, above which spending runs hot.
const BurnRateLimit = 105

// Tone tells the renderer how to color a card value.
type Tone int

const (
	// ToneNeutral is plain text.
	ToneNeutral Tone = iota
	// ToneGood marks a healthy value.
	ToneGood
	// ToneWarning marks a value worth watching.
	ToneWarning
	// ToneBad marks an unhealthy value.
	ToneBad
)

// String returns the tone name.
func (t Tone) String() string {
	switch t {
	case ToneNeutral:
		return "Neutral"
	case ToneGood:
		return "Good"
	case ToneWarning:
		return "Warning"
	case ToneBad:
		return "Bad"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// Card is one statistic as displayed.
type Card struct {
	Label string
	Value string
	Note  string
	Tone  Tone
}

// StatsView holds the two rows of statistic cards.
type StatsView struct {
	General  []Card
	Insights []Card
}

// NewStatsView formats stats for display.
func NewStatsView(s model.Stats) StatsView {
	savedTone := ToneGood
	savedSign := "+"
	if s.Saved < 0 {
		savedTone = ToneBad
		savedSign = ""
	}

	momTone := ToneGood
	momSign := ""
	if s.MoMChange > 0 {
		momTone = ToneWarning
		momSign = "+"
	}

	burnTone := ToneGood
	if s.BurnRate > BurnRateLimit {
		burnTone = ToneBad
	}

	return StatsView{
		General: []Card{
			{Label: "Net Saved", Value: savedSign + FormatCurrency(s.Saved), Tone: savedTone},
			{Label: "Total Spent", Value: FormatCurrency(s.TotalSpent)},
			{Label: "Avg. Monthly Expenses", Value: FormatCurrency(s.AvgMonthly)},
			{Label: "Avg. Daily Expenses", Value: FormatCurrency(s.AvgDaily)},
		},
		Insights: []Card{
			{Label: "Savings Rate", Value: FormatPercent(s.SavingsRate)},
			{Label: "MoM Change", Value: momSign + FormatPercent(s.MoMChange), Tone: momTone},
			{Label: "Monthly Recurring Expenses", Value: FormatCurrency(s.TotalMonthlyFixed)},
			{Label: "Burn Rate", Value: FormatPercent(s.BurnRate), Note: "of avg pace", Tone: burnTone},
		},
	}
}

// Cards returns both rows in display order.
func (sv StatsView) Cards() []Card {
	out := make([]Card, 0, len(sv.General)+len(sv.Insights))
	out = append(out, sv.General...)
	return append(out, sv.Insights...)
}

// FormatCurrency renders whole US dollars with thousands separators, as in -$1,234.
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.String())
}

// FormatPercent renders a percentage the backend already rounded.
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(v).String() + "%"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
