package api

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

func TestDemoBackend_Deterministic(t *testing.T) {
	ctx := context.Background()
	a, err := NewDemoBackend(60, 42, 0).Transactions(ctx)
	require.NoError(t, err)
	b, err := NewDemoBackend(60, 42, 0).Transactions(ctx)
	require.NoError(t, err)

	require.Len(t, a, 60)
	for i := range a {
		assert.Equal(t, a[i].Description, b[i].Description)
		assert.True(t, a[i].Amount.Equal(b[i].Amount))
	}
}

func TestDemoBackend_Feeds(t *testing.T) {
	ctx := context.Background()
	demo := NewDemoBackend(90, 7, 0)

	stats, err := demo.Stats(ctx)
	require.NoError(t, err)
	assert.Positive(t, stats.TotalSpent)

	anomalies, err := demo.AnalyzeAnomalies(ctx)
	require.NoError(t, err)
	assert.True(t, anomalies.Present)

	subs, err := demo.Subscriptions(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, subs.Subscriptions)
	for _, s := range subs.Subscriptions {
		assert.True(t, s.IsConfirmed())
	}
}

func TestDemoBackend_ChatAttachesChart(t *testing.T) {
	demo := NewDemoBackend(90, 7, 0)

	plain, err := demo.Chat(context.Background(), service.ChatRequest{Message: "how am I doing?"})
	require.NoError(t, err)
	assert.NotEmpty(t, plain.Reply)
	assert.Nil(t, plain.Visualization)

	withChart, err := demo.Chat(context.Background(), service.ChatRequest{Message: "show me a chart"})
	require.NoError(t, err)
	require.NotNil(t, withChart.Visualization)
	assert.IsType(t, chart.LineChart{}, chart.Interpret(*withChart.Visualization))
}

func TestDemoBackend_VisualizeRendersEverywhere(t *testing.T) {
	demo := NewDemoBackend(90, 7, 0)

	for _, prompt := range []string{"daily spending", "monthly trend", "by category"} {
		resp, err := demo.Visualize(context.Background(), prompt)
		require.NoError(t, err)
		r := chart.Interpret(resp.Spec())
		assert.NotEqual(t, chart.KindInvalid, r.Kind(), prompt)
		assert.NotEqual(t, chart.KindFailed, r.Kind(), prompt)
	}

	resp, err := demo.Visualize(context.Background(), "  ")
	require.NoError(t, err)
	assert.True(t, resp.Spec().IsError())
}

func TestDemoBackend_Forecast(t *testing.T) {
	demo := NewDemoBackend(10, 1, 0)

	resp, err := demo.Forecast(context.Background(), model.GoalForecastRequest{
		Name:   "Emergency fund",
		Amount: decimal.NewFromInt(1200),
		Date:   time.Now().AddDate(0, 6, 0),
	})
	require.NoError(t, err)
	assert.True(t, resp.Result().Available)
	assert.Contains(t, resp.Message, "Emergency fund")

	bad, err := demo.Forecast(context.Background(), model.GoalForecastRequest{})
	require.NoError(t, err)
	assert.Equal(t, model.ForecastUnavailable, bad.Result().Message)
}

func TestDemoBackend_Latency(t *testing.T) {
	demo := NewDemoBackend(10, 1, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := demo.Stats(ctx)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
