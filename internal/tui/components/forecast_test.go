package components

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
	tuitest "github.com/Veraticus/optifi/internal/tui/testing"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

func TestForecastForm_Request(t *testing.T) {
	tests := []struct {
		name       string
		goal       string
		amount     string
		date       string
		wantAmount string
		wantErr    string
	}{
		{name: "valid", goal: "Trip", amount: "1500", date: "2030-06-01", wantAmount: "1500"},
		{name: "currency formatting", goal: "Trip", amount: "$1,500.50", date: "2030-06-01", wantAmount: "1500.5"},
		{name: "missing name", amount: "10", date: "2030-06-01", wantErr: "goal name is required"},
		{name: "not a number", goal: "Trip", amount: "lots", date: "2030-06-01", wantErr: `amount "lots" is not a number`},
		{name: "zero amount", goal: "Trip", amount: "0", date: "2030-06-01", wantErr: "goal amount must be positive"},
		{name: "bad date", goal: "Trip", amount: "10", date: "June", wantErr: "must look like 2006-01-02"},
		{name: "missing date", goal: "Trip", amount: "10", wantErr: "goal date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewForecastFormModel(themes.Default)
			m.SetValues(tt.goal, tt.amount, tt.date)

			req, err := m.Request()

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.goal, req.Name)
			assert.Equal(t, tt.wantAmount, req.Amount.String())
			assert.Equal(t, time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), req.Date)
		})
	}
}

func TestForecastForm_EnterAdvancesThenSubmits(t *testing.T) {
	m := NewForecastFormModel(themes.Default)
	m.Focus()
	m = typeInto(m, "Trip")

	m, cmd := m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd, "focus moves to the amount field")
	assert.NotPanics(t, func() { _ = m.View() })

	m = typeInto(m, "1200")
	m, _ = m.Update(tuitest.KeyEnter())
	m = typeInto(m, "2030-01-15")

	_, cmd = m.Update(tuitest.KeyEnter())
	require.NotNil(t, cmd)
	msg, ok := cmd().(ForecastSubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "Trip", msg.Request.Name)
	assert.Equal(t, "1200", msg.Request.Amount.String())
}

func TestForecastForm_InvalidInputShowsError(t *testing.T) {
	m := NewForecastFormModel(themes.Default)
	m.Focus()
	m.SetValues("Trip", "-5", "2030-01-15")
	m, _ = m.Update(tuitest.KeyDown())
	m, _ = m.Update(tuitest.KeyDown())

	m, cmd := m.Update(tuitest.KeyEnter())

	assert.Nil(t, cmd)
	assert.Contains(t, tuitest.StripANSI(m.View()), "goal amount must be positive")
}

func TestForecastForm_Result(t *testing.T) {
	tests := []struct {
		err  error
		name string
		resp service.ForecastResponse
		want string
	}{
		{name: "narrative", resp: service.ForecastResponse{Message: "Save $200 a month.", Status: model.ForecastOnTrack}, want: "Save $200 a month."},
		{name: "refused", resp: service.ForecastResponse{Error: "Missing goal data"}, want: model.ForecastUnavailable},
		{name: "unreachable", err: errUnreachable, want: model.ForecastConnError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := dashboard.NewState(dashboard.LastResolvedWins)
			ticket := s.BeginForecast()

			m := NewForecastFormModel(themes.Default)
			m.SetFeed(s.Snapshot().Forecast)
			assert.Contains(t, tuitest.StripANSI(m.View()), "Forecasting...")

			s.ResolveForecast(ticket, tt.resp, tt.err)
			m.SetFeed(s.Snapshot().Forecast)

			assert.Contains(t, tuitest.StripANSI(m.View()), tt.want)
		})
	}
}
