package dashboard

import (
	"context"
	"sync"

	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// fakeBackend is a scripted service.Backend. Unset functions return zero values.
type fakeBackend struct {
	stats         func(context.Context) (model.Stats, error)
	anomalies     func(context.Context) (service.AnomalyResponse, error)
	transactions  func(context.Context) ([]model.Transaction, error)
	chat          func(context.Context, service.ChatRequest) (service.ChatResponse, error)
	forecast      func(context.Context, model.GoalForecastRequest) (service.ForecastResponse, error)
	subscriptions func(context.Context) (service.SubscriptionsResponse, error)
	visualize     func(context.Context, string) (service.VisualizeResponse, error)
	calls         map[string]int
	mu            sync.Mutex
}

var _ service.Backend = (*fakeBackend)(nil)

func (f *fakeBackend) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[op]++
}

func (f *fakeBackend) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeBackend) Stats(ctx context.Context) (model.Stats, error) {
	f.record(FeedStats)
	if f.stats == nil {
		return model.Stats{}, nil
	}
	return f.stats(ctx)
}

func (f *fakeBackend) AnalyzeAnomalies(ctx context.Context) (service.AnomalyResponse, error) {
	f.record(FeedAnomalies)
	if f.anomalies == nil {
		return service.AnomalyResponse{}, nil
	}
	return f.anomalies(ctx)
}

func (f *fakeBackend) Transactions(ctx context.Context) ([]model.Transaction, error) {
	f.record(FeedTransactions)
	if f.transactions == nil {
		return nil, nil
	}
	return f.transactions(ctx)
}

func (f *fakeBackend) Chat(ctx context.Context, req service.ChatRequest) (service.ChatResponse, error) {
	f.record(FeedChat)
	if f.chat == nil {
		return service.ChatResponse{}, nil
	}
	return f.chat(ctx, req)
}

func (f *fakeBackend) Forecast(ctx context.Context, req model.GoalForecastRequest) (service.ForecastResponse, error) {
	f.record(FeedForecast)
	if f.forecast == nil {
		return service.ForecastResponse{}, nil
	}
	return f.forecast(ctx, req)
}

func (f *fakeBackend) Subscriptions(ctx context.Context) (service.SubscriptionsResponse, error) {
	f.record(FeedSubscriptions)
	if f.subscriptions == nil {
		return service.SubscriptionsResponse{}, nil
	}
	return f.subscriptions(ctx)
}

func (f *fakeBackend) Visualize(ctx context.Context, prompt string) (service.VisualizeResponse, error) {
	f.record(FeedVisualize)
	if f.visualize == nil {
		return service.VisualizeResponse{}, nil
	}
	return f.visualize(ctx, prompt)
}
