package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
)

// Chat asks one question and writes the reply, plus the chart when the reply carried one.
func Chat(ctx context.Context, d *dashboard.Dashboard, question string, out io.Writer, width int) error {
	before := d.State().Snapshot().VizRevision

	err := d.SendChat(ctx, question)
	if errors.Is(err, common.ErrEmptyMessage) || errors.Is(err, common.ErrReplyPending) {
		return err
	}

	msgs := d.Conversation().Messages()
	if _, werr := fmt.Fprintln(out, RenderReply(msgs[len(msgs)-1])); werr != nil {
		return werr
	}

	snap := d.State().Snapshot()
	if snap.VizRevision != before {
		if viz := RenderVisualization(snap, width); viz != "" {
			if _, werr := fmt.Fprintln(out, "\n"+viz); werr != nil {
				return werr
			}
		}
	}
	return err
}

// ChatLoop reads questions from in until EOF, "exit" or cancellation. Failed turns are
// answered with the connection fallback and the loop goes on.
func ChatLoop(ctx context.Context, d *dashboard.Dashboard, in *LineReader, out io.Writer, width int) error {
	msgs := d.Conversation().Messages()
	if _, err := fmt.Fprintln(out, RenderReply(msgs[len(msgs)-1])); err != nil {
		return err
	}

	for {
		if _, err := fmt.Fprint(out, "\n"+FormatPrompt("You")); err != nil {
			return err
		}

		line, err := in.ReadLine(ctx)
		switch {
		case errors.Is(err, io.EOF):
			_, _ = fmt.Fprintln(out)
			return nil
		case errors.Is(err, ErrInputCancelled):
			return ctx.Err()
		case err != nil:
			return fmt.Errorf("failed to read question: %w", err)
		}

		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		if err := Chat(ctx, d, line, out, width); err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
