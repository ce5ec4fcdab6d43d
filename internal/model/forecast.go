package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Forecast fallbacks shown instead of a narrative.
const (
	ForecastUnavailable = "Forecast unavailable."
	ForecastConnError   = "Connection error."
)

// Forecast statuses the backend may attach to a narrative.
const (
	ForecastOnTrack = "on_track"
	ForecastAtRisk  = "at_risk"
)

// GoalForecastRequest asks whether a savings goal is reachable.
type GoalForecastRequest struct {
	Date   time.Time
	Name   string
	Amount decimal.Decimal
}

// Validate checks the goal is named, positive and dated.
func (r GoalForecastRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("goal name is required")
	}
	if !r.Amount.IsPositive() {
		return fmt.Errorf("goal amount must be positive, got %s", r.Amount)
	}
	if r.Date.IsZero() {
		return fmt.Errorf("goal date is required")
	}
	return nil
}

// ForecastResult is what the forecast slot displays.
type ForecastResult struct {
	Message   string
	Status    string
	Available bool
}
