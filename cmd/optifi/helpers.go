package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"

	"github.com/Veraticus/optifi/internal/api"
	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/config"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/service"
)

const (
	demoTransactions = 120
	demoSeed         = 42
	defaultWidth     = 80
)

// newBackend returns the REST client, or generated data in demo mode.
func newBackend(cfg config.Config) (service.Backend, error) {
	if cfg.Demo {
		slog.Debug("using demo backend", "transactions", demoTransactions)
		return api.NewDemoBackend(demoTransactions, demoSeed, 0), nil
	}
	client, err := api.NewClient(api.Config{BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// newDashboard builds the dashboard over the configured backend. Set up logging first:
// components capture the default logger when they are created.
func newDashboard(cfg config.Config) (*dashboard.Dashboard, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	policy := dashboard.LastResolvedWins
	if cfg.DiscardStale {
		policy = dashboard.LatestDispatchWins
	}
	return dashboard.New(backend, policy), nil
}

// terminalWidth returns the width of stdout, or a default when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

// writePNG exports the visualization slot to path.
func writePNG(snap dashboard.Snapshot, path string) error {
	r, ok := snap.Rendering()
	if !ok {
		return fmt.Errorf("%w: no visualization to export", common.ErrNotRenderable)
	}

	f, err := os.Create(filepath.Clean(path)) // #nosec G304 -- user supplied output path
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			slog.Warn("Failed to close image", "path", path, "error", cerr)
		}
	}()

	if err := chart.ExportPNG(r, f, chart.DefaultSize); err != nil {
		return fmt.Errorf("failed to export chart: %w", err)
	}
	return nil
}
