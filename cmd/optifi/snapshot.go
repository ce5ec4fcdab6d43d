package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/optifi/internal/cli"
	"github.com/Veraticus/optifi/internal/dashboard"
)

// activationFeeds is how many feeds Activate completes.
const activationFeeds = 4

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print statistics, transactions and recurring charges",
		Long: `Fetch every dashboard feed once and print the results.

The default chart is drawn from the transactions unless --no-chart is given.`,
		RunE: runSnapshot,
	}

	cmd.Flags().Int("limit", 20, "maximum transactions to print (0 for all)")
	cmd.Flags().String("tab", "all", "transactions to show (all, unusual)")
	cmd.Flags().String("search", "", "only show transactions matching this text")
	cmd.Flags().String("png", "", "also write the chart to this PNG file")
	cmd.Flags().Bool("no-chart", false, "skip the chart")

	return cmd
}

func parseTab(s string) (dashboard.Tab, error) {
	switch strings.ToLower(s) {
	case "", "all":
		return dashboard.TabAll, nil
	case "unusual", "anomalies":
		return dashboard.TabUnusual, nil
	default:
		return dashboard.TabAll, fmt.Errorf("unknown tab %q (want all or unusual)", s)
	}
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	tabName, _ := cmd.Flags().GetString("tab")
	search, _ := cmd.Flags().GetString("search")
	pngPath, _ := cmd.Flags().GetString("png")
	noChart, _ := cmd.Flags().GetBool("no-chart")

	tab, err := parseTab(tabName)
	if err != nil {
		return err
	}

	d, err := newDashboard(appCfg)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Snapshot")

	progress := cli.NewFeedProgress(cmd.ErrOrStderr(), activationFeeds, "Fetching")
	d.Observe(progress.Done)

	err = d.Activate(ctx)
	progress.Finish()
	if handler.WasInterrupted() {
		return nil
	}
	if err != nil {
		// Canceled mid-fetch; keep printing what arrived.
		slog.Debug("activation canceled", "error", err, "failed", progress.Failed())
	}

	d.SetTab(tab)
	d.SetSearch(search)

	return printSnapshot(cmd.OutOrStdout(), d.State().Snapshot(), limit, !noChart, pngPath)
}

func printSnapshot(out io.Writer, snap dashboard.Snapshot, limit int, withChart bool, pngPath string) error {
	sections := []string{
		cli.RenderStats(snap.Stats),
		cli.FormatTitle("Transactions") + "\n" + cli.RenderTransactions(snap, limit),
		cli.FormatTitle("Recurring Charges") + "\n" + cli.RenderSubscriptions(snap.Subscriptions),
	}
	if withChart {
		if viz := cli.RenderVisualization(snap, terminalWidth()); viz != "" {
			sections = append(sections, viz)
		}
	}

	for _, s := range sections {
		if _, err := fmt.Fprintln(out, s+"\n"); err != nil {
			return err
		}
	}

	if withChart && pngPath != "" {
		if err := writePNG(snap, pngPath); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, cli.FormatSuccess("Chart saved to "+pngPath))
	}
	return nil
}
