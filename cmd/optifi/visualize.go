package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/optifi/internal/cli"
	"github.com/Veraticus/optifi/internal/common"
)

func visualizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visualize <prompt...>",
		Short: "Draw a chart from a plain-language request",
		Example: `  optifi visualize spending by category
  optifi visualize monthly totals --png totals.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: runVisualize,
	}

	cmd.Flags().String("png", "", "also write the chart to this PNG file")

	return cmd
}

func runVisualize(cmd *cobra.Command, args []string) error {
	pngPath, _ := cmd.Flags().GetString("png")
	prompt := strings.Join(args, " ")

	d, err := newDashboard(appCfg)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Visualization")

	cmd.PrintErrln(cli.FormatInfo(cli.ChartIcon + " Drawing " + prompt + "..."))
	err = d.Visualize(ctx, prompt)
	if handler.WasInterrupted() {
		return nil
	}
	if err != nil {
		common.LogError(err, "visualization request failed", common.Fields{"prompt": prompt})
	}

	snap := d.State().Snapshot()
	viz := cli.RenderVisualization(snap, terminalWidth())
	if viz == "" {
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatWarning("The request returned no chart."))
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz)

	if pngPath == "" {
		return nil
	}
	if err := writePNG(snap, pngPath); err != nil {
		return fmt.Errorf("cannot save %q: %w", prompt, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Chart saved to "+pngPath))
	return nil
}
