// Package service defines the contract between the dashboard and the analysis backend.
package service

import (
	"context"
	"encoding/json"

	"github.com/Veraticus/optifi/internal/model"
)

// Backend is the analysis service the dashboard reads from.
// Transport failures are returned as errors wrapping common.ErrTransport or common.ErrDecode.
// Domain errors reported by the backend come back inside the response value.
type Backend interface {
	Stats(ctx context.Context) (model.Stats, error)
	AnalyzeAnomalies(ctx context.Context) (AnomalyResponse, error)
	Transactions(ctx context.Context) ([]model.Transaction, error)
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
	Forecast(ctx context.Context, req model.GoalForecastRequest) (ForecastResponse, error)
	Subscriptions(ctx context.Context) (SubscriptionsResponse, error)
	Visualize(ctx context.Context, prompt string) (VisualizeResponse, error)
}

// AnomalyResponse is the result of an anomaly analysis.
// Present is false when the backend omitted the anomalies key altogether.
type AnomalyResponse struct {
	Anomalies []model.Anomaly
	Present   bool
}

// UnmarshalJSON records whether the anomalies key was sent.
func (r *AnomalyResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Anomalies *[]model.Anomaly `json:"anomalies"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Present = raw.Anomalies != nil
	if r.Present {
		r.Anomalies = *raw.Anomalies
	}
	return nil
}

// ChatRequest is one conversation turn.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the backend reply to a chat turn.
// Visualization is nil unless a non-empty chart object was attached.
type ChatResponse struct {
	Visualization *model.ChartSpec `json:"-"`
	Reply         string           `json:"reply"`
}

// UnmarshalJSON treats an empty visualization object as absent.
func (r *ChatResponse) UnmarshalJSON(data []byte) error {
	var raw struct {
		Visualization json.RawMessage `json:"visualization"`
		Reply         string          `json:"reply"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Reply = raw.Reply
	r.Visualization = nil

	spec, err := nonEmptySpec(raw.Visualization)
	if err != nil {
		return err
	}
	r.Visualization = spec
	return nil
}

// ForecastResponse carries a narrative or a domain error.
type ForecastResponse struct {
	Message string `json:"forecast_message"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Result maps the response onto what the forecast slot displays.
func (r ForecastResponse) Result() model.ForecastResult {
	if r.Error != "" {
		return model.ForecastResult{Message: model.ForecastUnavailable}
	}
	return model.ForecastResult{Message: r.Message, Status: r.Status, Available: true}
}

// SubscriptionsResponse carries the detected recurring charges or a domain error.
type SubscriptionsResponse struct {
	Error         string               `json:"error,omitempty"`
	Subscriptions []model.Subscription `json:"subscriptions"`
}

// VisualizeResponse carries a chart spec or a domain error.
type VisualizeResponse struct {
	Visualization *model.ChartSpec `json:"visualization,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Spec returns the spec to place in the visualization slot.
// A domain error becomes an error descriptor.
func (r VisualizeResponse) Spec() model.ChartSpec {
	if r.Error != "" {
		return model.ChartSpec{Error: r.Error}
	}
	if r.Visualization == nil {
		return model.ChartSpec{}
	}
	return *r.Visualization
}

func nonEmptySpec(raw json.RawMessage) (*model.ChartSpec, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil || len(keys) == 0 {
		// null, arrays and scalars are not charts
		return nil, nil //nolint:nilerr
	}
	var spec model.ChartSpec
	if err := json.Unmarshal(raw, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}
