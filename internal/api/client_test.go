package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL, SessionID: "session-1"})
	require.NoError(t, err)
	return client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantURL string
		wantErr bool
	}{
		{name: "default base URL", config: Config{}, wantURL: DefaultBaseURL},
		{name: "trailing slash trimmed", config: Config{BaseURL: "https://optifi.example.com/"}, wantURL: "https://optifi.example.com"},
		{name: "bad scheme", config: Config{BaseURL: "ftp://example.com"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.config)
			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantURL, client.baseURL)
			assert.NotEmpty(t, client.SessionID())
		})
	}
}

func TestClient_Stats(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/stats", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = io.WriteString(w, `{"saved":1200.5,"total_spent":3400,"avg_monthly":1700,"avg_daily":56.6,
			"savings_rate":26.1,"mom_change":-3.2,"totalMonthlyFixed":45.98,"burn_rate":101}`)
	})

	stats, err := client.Stats(context.Background())

	require.NoError(t, err)
	assert.InDelta(t, 1200.5, stats.Saved, 1e-9)
	assert.InDelta(t, 45.98, stats.TotalMonthlyFixed, 1e-9)
	assert.InDelta(t, -3.2, stats.MoMChange, 1e-9)
}

func TestClient_Transactions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id":1,"description":"Coffee","category":"Coffee","amount":4.50,"type":"withdrawal","date":"2024-01-01"},
			{"id":2,"description":"Paycheck","category":"Income","amount":2000,"type":"deposit","date":"2024-01-02"}
		]`)
	})

	txns, err := client.Transactions(context.Background())

	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, model.ID("1"), txns[0].ID)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("4.5")))
	assert.Equal(t, model.TypeDeposit, txns[1].Type)
}

func TestClient_TransactionsNull(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `null`)
	})

	txns, err := client.Transactions(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, txns)
	assert.Empty(t, txns)
}

func TestClient_Chat(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantViz  bool
		wantType model.ChartType
	}{
		{
			name:     "reply with chart",
			body:     `{"reply":"You spent $120 more this month.","visualization":{"chartType":"bar","data":[{"month":"2024-01","amount":120}],"dataKey":"amount","xAxisKey":"month"}}`,
			wantViz:  true,
			wantType: model.ChartBar,
		},
		{name: "empty visualization object", body: `{"reply":"ok","visualization":{}}`},
		{name: "null visualization", body: `{"reply":"ok","visualization":null}`},
		{name: "no visualization", body: `{"reply":"ok"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var req service.ChatRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "how am I doing?", req.Message)
				assert.Equal(t, "session-1", req.SessionID)

				_, _ = io.WriteString(w, tt.body)
			})

			resp, err := client.Chat(context.Background(), service.ChatRequest{Message: "how am I doing?"})

			require.NoError(t, err)
			assert.NotEmpty(t, resp.Reply)
			if tt.wantViz {
				require.NotNil(t, resp.Visualization)
				assert.Equal(t, tt.wantType, resp.Visualization.ChartType)
				assert.Equal(t, "month", resp.Visualization.XAxisKey)
			} else {
				assert.Nil(t, resp.Visualization)
			}
		})
	}
}

func TestClient_Forecast(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Vacation", body["name"])
		assert.InDelta(t, 1500.0, body["amount"], 1e-9)
		assert.Equal(t, "2025-06-01", body["date"])
		_, _ = io.WriteString(w, `{"forecast_message":"You are on track.","status":"on_track"}`)
	})

	resp, err := client.Forecast(context.Background(), model.GoalForecastRequest{
		Name:   "Vacation",
		Amount: decimal.NewFromInt(1500),
		Date:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	result := resp.Result()
	assert.True(t, result.Available)
	assert.Equal(t, "You are on track.", result.Message)
	assert.Equal(t, model.ForecastOnTrack, result.Status)
}

func TestClient_DomainErrorOnBadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"Missing goal data"}`)
	})

	resp, err := client.Forecast(context.Background(), model.GoalForecastRequest{})

	require.NoError(t, err)
	assert.Equal(t, "Missing goal data", resp.Error)
	assert.Equal(t, model.ForecastUnavailable, resp.Result().Message)
}

func TestClient_Subscriptions(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = io.WriteString(w, `{"subscriptions":[{"name":"Netflix","amount":15.99,"type":"Subscription","ai_note":"Monthly streaming"}]}`)
	})

	resp, err := client.Subscriptions(context.Background())

	require.NoError(t, err)
	assert.Empty(t, resp.Error)
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, "Monthly streaming", resp.Subscriptions[0].Note)
	assert.True(t, resp.Subscriptions[0].IsConfirmed())
}

func TestClient_Visualize(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantError string
		wantType  model.ChartType
	}{
		{
			name:     "chart",
			body:     `{"visualization":{"chartType":"pie","data":[{"name":"Rent","amount":1200}],"dataKey":"amount"}}`,
			wantType: model.ChartPie,
		},
		{
			name:      "domain error",
			body:      `{"error":"AI response blocked."}`,
			wantError: "AI response blocked.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "spending by category", body["prompt"])
				_, _ = io.WriteString(w, tt.body)
			})

			resp, err := client.Visualize(context.Background(), "spending by category")

			require.NoError(t, err)
			spec := resp.Spec()
			assert.Equal(t, tt.wantError, spec.Error)
			assert.Equal(t, tt.wantType, spec.ChartType)
		})
	}
}

func TestClient_AnalyzeAnomalies(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantCount   int
	}{
		{
			name:        "anomalies present",
			body:        `{"anomalies":[{"id":7,"flag_reasons":["amount 5x category average","first-time merchant"]}]}`,
			wantPresent: true,
			wantCount:   1,
		},
		{name: "empty list", body: `{"anomalies":[]}`, wantPresent: true},
		{name: "key missing", body: `{"status":"busy"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/analyze", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			})

			resp, err := client.AnalyzeAnomalies(context.Background())

			require.NoError(t, err)
			assert.Equal(t, tt.wantPresent, resp.Present)
			assert.Len(t, resp.Anomalies, tt.wantCount)
		})
	}
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		handler http.HandlerFunc
		want    error
		name    string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			want: common.ErrTransport,
		},
		{
			name: "error field without domain routing",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				_, _ = io.WriteString(w, `{"error":"upstream"}`)
			},
			want: common.ErrTransport,
		},
		{
			name: "malformed JSON",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = io.WriteString(w, `{"saved":`)
			},
			want: common.ErrDecode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			_, err := client.Stats(context.Background())

			require.ErrorIs(t, err, tt.want)
			assert.True(t, common.IsFeedFailure(err))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "short body", body: "  bad gateway\n", want: "bad gateway"},
		{name: "long ascii", body: strings.Repeat("x", maxErrorBody+10), want: strings.Repeat("x", maxErrorBody) + "..."},
		{name: "multi-byte at the cut", body: strings.Repeat("€", 300), want: strings.Repeat("€", maxErrorBody/3) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate([]byte(tt.body))

			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestClient_LongErrorBodyStaysValidUTF8(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, strings.Repeat("€", 300))
	})

	_, err := client.Stats(context.Background())

	require.ErrorIs(t, err, common.ErrTransport)
	assert.True(t, utf8.ValidString(err.Error()))
	assert.Contains(t, err.Error(), "€...")
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client, err := NewClient(Config{BaseURL: url})
	require.NoError(t, err)

	_, err = client.Transactions(context.Background())

	assert.ErrorIs(t, err, common.ErrTransport)
}

func TestClient_ContextCanceled(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{}`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Stats(ctx)

	assert.ErrorIs(t, err, common.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}
