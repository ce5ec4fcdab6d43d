// Package api talks to the Optifi analysis backend over HTTP.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// DefaultBaseURL is where the backend listens when run locally.
const DefaultBaseURL = "http://localhost:5001"

// maxErrorBody bounds how much of a failed response ends up in an error.
const maxErrorBody = 512

// Config holds client settings.
type Config struct {
	BaseURL   string
	SessionID string
	Timeout   time.Duration
}

// Client implements service.Backend against the REST API.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	sessionID  string
}

var _ service.Backend = (*Client)(nil)

// NewClient creates a backend client. A zero Timeout leaves requests bounded only by their context.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: base URL must be http or https: %s", common.ErrInvalidConfig, baseURL)
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return &Client{
		baseURL:   baseURL,
		sessionID: sessionID,
		logger:    common.ComponentLogger("api"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// SessionID identifies this client's conversation to the backend.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Stats fetches the dashboard statistics.
func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	if err := c.do(ctx, http.MethodGet, "/api/stats", nil, &stats, false); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

// AnalyzeAnomalies asks the backend to flag unusual transactions.
func (c *Client) AnalyzeAnomalies(ctx context.Context) (service.AnomalyResponse, error) {
	var resp service.AnomalyResponse
	if err := c.do(ctx, http.MethodPost, "/api/analyze", nil, &resp, false); err != nil {
		return service.AnomalyResponse{}, err
	}
	return resp, nil
}

// Transactions lists every transaction the backend knows about.
func (c *Client) Transactions(ctx context.Context) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &transactions, false); err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return transactions, nil
}

// Chat sends one conversation turn. The client's session id is used when the request has none.
func (c *Client) Chat(ctx context.Context, req service.ChatRequest) (service.ChatResponse, error) {
	if req.SessionID == "" {
		req.SessionID = c.sessionID
	}
	var resp service.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/chat", req, &resp, false); err != nil {
		return service.ChatResponse{}, err
	}
	return resp, nil
}

type forecastBody struct {
	Name   string      `json:"name"`
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
}

// Forecast asks whether a savings goal is reachable.
func (c *Client) Forecast(ctx context.Context, req model.GoalForecastRequest) (service.ForecastResponse, error) {
	body := forecastBody{
		Name:   req.Name,
		Amount: json.Number(req.Amount.String()),
		Date:   req.Date.Format("2006-01-02"),
	}
	var resp service.ForecastResponse
	if err := c.do(ctx, http.MethodPost, "/api/forecast", body, &resp, true); err != nil {
		return service.ForecastResponse{}, err
	}
	return resp, nil
}

// Subscriptions runs a subscription scan.
func (c *Client) Subscriptions(ctx context.Context) (service.SubscriptionsResponse, error) {
	var resp service.SubscriptionsResponse
	if err := c.do(ctx, http.MethodPost, "/api/subscriptions", nil, &resp, true); err != nil {
		return service.SubscriptionsResponse{}, err
	}
	return resp, nil
}

// Visualize asks the backend for a chart spec matching prompt.
func (c *Client) Visualize(ctx context.Context, prompt string) (service.VisualizeResponse, error) {
	body := struct {
		Prompt string `json:"prompt"`
	}{Prompt: prompt}
	var resp service.VisualizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/visualize", body, &resp, true); err != nil {
		return service.VisualizeResponse{}, err
	}
	return resp, nil
}

// do issues one request and decodes the JSON body into out.
// With domainErrors set, a non-2xx response whose body carries an "error" field is decoded
// like a success so the caller can route the message to its slot.
func (c *Client) do(ctx context.Context, method, path string, in, out any, domainErrors bool) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", common.ErrTransport, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", common.ErrTransport, err)
	}

	c.logger.Debug("backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if domainErrors && hasErrorField(data) {
			return decode(data, out)
		}
		return fmt.Errorf("%w: %s %s returned status %d: %s",
			common.ErrTransport, method, path, resp.StatusCode, truncate(data))
	}

	return decode(data, out)
}

func decode(data []byte, out any) error {
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %w", common.ErrDecode, err)
	}
	return nil
}

func hasErrorField(data []byte) bool {
	var body struct {
		Error string `json:"error"`
	}
	return json.Unmarshal(data, &body) == nil && body.Error != ""
}

// truncate shortens an error body for messages, cutting on a rune boundary.
func truncate(data []byte) string {
	s := strings.TrimSpace(string(data))
	if len(s) <= maxErrorBody {
		return s
	}
	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
