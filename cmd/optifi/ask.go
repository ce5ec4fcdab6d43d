package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/optifi/internal/cli"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question...]",
		Short: "Ask Optimus about your finances",
		Long: `Ask the AI financial coach a question. Without a question, start an
interactive conversation that ends on "exit", "quit" or end of input.

Replies that include a chart are drawn below the answer.`,
		RunE: runAsk,
	}

	cmd.Flags().String("png", "", "write the last chart to this PNG file")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	pngPath, _ := cmd.Flags().GetString("png")

	d, err := newDashboard(appCfg)
	if err != nil {
		return err
	}

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.HandleInterrupts(cmd.Context(), "Conversation")
	out := cmd.OutOrStdout()
	width := terminalWidth()

	if len(args) == 0 {
		err = cli.ChatLoop(ctx, d, cli.NewLineReader(os.Stdin), out, width)
	} else {
		err = cli.Chat(ctx, d, strings.Join(args, " "), out, width)
	}
	if handler.WasInterrupted() {
		return nil
	}
	if err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}

	if pngPath != "" {
		if err := writePNG(d.State().Snapshot(), pngPath); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Chart saved to "+pngPath))
	}
	return nil
}
