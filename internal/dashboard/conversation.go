package dashboard

import (
	"strings"
	"sync"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/service"
)

// Chat fallbacks.
const (
	ReplyMissing     = "I'm having trouble connecting right now."
	ReplyUnreachable = "Sorry, I couldn't reach the server."
)

// Conversation is the append-only chat log and its pending-reply flag.
type Conversation struct {
	messages []model.Message
	mu       sync.Mutex
	awaiting bool
}

// NewConversation starts a log holding the greeting.
func NewConversation() *Conversation {
	return &Conversation{
		messages: []model.Message{{Role: model.RoleAssistant, Content: model.Greeting}},
	}
}

// Submit appends a user message and enters the awaiting state.
// Blank input and input while a reply is pending are rejected without any change.
func (c *Conversation) Submit(text string) error {
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyMessage
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.awaiting {
		return common.ErrReplyPending
	}
	c.messages = append(c.messages, model.Message{Role: model.RoleUser, Content: text})
	c.awaiting = true
	return nil
}

// Resolve appends the assistant reply for the pending turn and returns to idle.
// The returned spec is non-nil when the reply carried a chart for the visualization slot.
func (c *Conversation) Resolve(resp service.ChatResponse, err error) *model.ChartSpec {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.awaiting = false

	if err != nil {
		c.messages = append(c.messages, model.Message{Role: model.RoleAssistant, Content: ReplyUnreachable})
		return nil
	}

	reply := resp.Reply
	if reply == "" {
		reply = ReplyMissing
	}
	c.messages = append(c.messages, model.Message{Role: model.RoleAssistant, Content: reply})
	return resp.Visualization
}

// Awaiting reports whether a reply is pending.
func (c *Conversation) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []model.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Message, len(c.messages))
	copy(out, c.messages)
	return out
}
