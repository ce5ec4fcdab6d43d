package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/tui"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive dashboard",
		Long: `Open the full-screen dashboard: statistics, transactions with unusual
activity flagged, the Optimus coach, charts, recurring charges and goal forecasts.

Logs go to the configured log file while the dashboard owns the terminal.`,
		RunE: runDashboard,
	}

	cmd.Flags().Bool("no-mouse", false, "disable mouse support")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg := appCfg

	logFile, err := common.OpenLogFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", cerr)
		}
	}()

	level, err := common.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if err := common.SetupLogger(logFile, level, cfg.LogFormat); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	d, err := newDashboard(cfg)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithTheme(themes.GetTheme(cfg.Theme))}
	// The root command has no --no-mouse flag; GetBool reports false there.
	if noMouse, _ := cmd.Flags().GetBool("no-mouse"); noMouse {
		opts = append(opts, tui.WithMouse(false))
	}

	slog.Info("Starting dashboard", "base_url", cfg.BaseURL, "demo", cfg.Demo, "theme", cfg.Theme)
	return tui.Run(cmd.Context(), d, opts...)
}
