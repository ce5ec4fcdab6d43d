package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/api"
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
)

func newDemoDashboard() *dashboard.Dashboard {
	return dashboard.New(api.NewDemoBackend(30, 3, 0), dashboard.LastResolvedWins)
}

func TestChat(t *testing.T) {
	tests := []struct {
		name      string
		question  string
		wantChart bool
	}{
		{name: "plain reply", question: "where can I save?"},
		{name: "reply with chart", question: "graph my spending by month", wantChart: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDemoDashboard()
			var out bytes.Buffer

			err := Chat(context.Background(), d, tt.question, &out, 60)

			require.NoError(t, err)
			text := ansi.Strip(out.String())
			assert.Contains(t, text, "Optimus:")
			assert.Contains(t, text, "30 transactions on record")
			_, hasChart := d.State().Snapshot().Rendering()
			assert.Equal(t, tt.wantChart, hasChart)
		})
	}
}

func TestChat_RejectsBlank(t *testing.T) {
	d := newDemoDashboard()
	var out bytes.Buffer

	err := Chat(context.Background(), d, "   ", &out, 60)

	assert.ErrorIs(t, err, common.ErrEmptyMessage)
	assert.Empty(t, out.String())
	assert.Len(t, d.Conversation().Messages(), 1)
}

func TestChatLoop(t *testing.T) {
	d := newDemoDashboard()
	in := NewLineReader(strings.NewReader("how am I doing?\n\nexit\nnever asked\n"))
	var out bytes.Buffer

	err := ChatLoop(context.Background(), d, in, &out, 60)

	require.NoError(t, err)
	text := ansi.Strip(out.String())
	assert.Contains(t, text, model.Greeting)
	assert.Equal(t, 2, strings.Count(text, "Optimus:"), "greeting and one reply")

	msgs := d.Conversation().Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "how am I doing?", msgs[1].Content)
}

func TestChatLoop_EOF(t *testing.T) {
	d := newDemoDashboard()
	in := NewLineReader(strings.NewReader("one question"))
	var out bytes.Buffer

	require.NoError(t, ChatLoop(context.Background(), d, in, &out, 60))
	assert.Len(t, d.Conversation().Messages(), 3)
}

func TestChatLoop_Cancelled(t *testing.T) {
	d := newDemoDashboard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ChatLoop(ctx, d, NewLineReader(strings.NewReader("hi\n")), &bytes.Buffer{}, 60)

	assert.ErrorIs(t, err, context.Canceled)
}
