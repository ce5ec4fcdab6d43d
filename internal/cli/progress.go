package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// FeedProgress counts dashboard feeds as they answer.
type FeedProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
	failed []string
	mu     sync.Mutex
}

// NewFeedProgress creates a progress bar over total feed requests.
func NewFeedProgress(w io.Writer, total int, description string) *FeedProgress {
	p := &FeedProgress{writer: w}
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]"+description+"[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return p
}

// Done records that feed answered. Safe for concurrent use; pass it to Dashboard.Observe.
func (p *FeedProgress) Done(feed string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.failed = append(p.failed, feed)
	}
	if addErr := p.bar.Add(1); addErr != nil {
		slog.Warn("Failed to update progress bar", "error", addErr)
	}
}

// Failed returns the feeds that could not be reached, sorted.
func (p *FeedProgress) Failed() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := append([]string(nil), p.failed...)
	sort.Strings(out)
	return out
}

// Finish completes the bar even when some feeds never answered.
func (p *FeedProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
