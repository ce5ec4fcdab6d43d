package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

// ChatModel shows the conversation with the coach and takes the next question.
type ChatModel struct {
	theme    themes.Theme
	messages []model.Message
	input    textinput.Model
	log      viewport.Model
	width    int
	height   int
	awaiting bool
}

// NewChatModel creates an empty chat pane.
func NewChatModel(theme themes.Theme) ChatModel {
	input := textinput.New()
	input.Placeholder = "Ask about your spending..."
	input.Prompt = "> "
	input.CharLimit = 500

	m := ChatModel{
		theme: theme,
		input: input,
		log:   viewport.New(40, 8),
	}
	m.Resize(40, 10)
	return m
}

// Update handles key presses while the pane is focused.
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter":
		text := m.input.Value()
		if m.awaiting || strings.TrimSpace(text) == "" {
			return m, nil
		}
		m.input.SetValue("")
		return m, emit(ChatSubmittedMsg{Text: text})

	case "pgup", "pgdown", "ctrl+u", "ctrl+d":
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// SetConversation replaces the displayed log.
func (m *ChatModel) SetConversation(messages []model.Message, awaiting bool) {
	grew := len(messages) != len(m.messages) || awaiting != m.awaiting
	m.messages = messages
	m.awaiting = awaiting
	m.log.SetContent(m.renderLog())
	if grew {
		m.log.GotoBottom()
	}
}

// Focus activates the text input.
func (m *ChatModel) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur deactivates the text input.
func (m *ChatModel) Blur() {
	m.input.Blur()
}

// Input returns the text typed so far.
func (m ChatModel) Input() string {
	return m.input.Value()
}

// View renders the chat pane.
func (m ChatModel) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.log.View(), m.input.View())
}

func (m ChatModel) renderLog() string {
	bubbleWidth := max(10, m.width*3/4)

	lines := make([]string, 0, len(m.messages)+1)
	for _, msg := range m.messages {
		if msg.Role == model.RoleUser {
			bubble := m.theme.UserBubble.MaxWidth(bubbleWidth).Width(min(bubbleWidth, lipgloss.Width(msg.Content)+2)).Render(msg.Content)
			lines = append(lines, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, bubble))
			continue
		}
		lines = append(lines, m.theme.CoachBubble.Width(bubbleWidth).Render(msg.Content))
	}
	if m.awaiting {
		lines = append(lines, m.theme.StatusPending.Render("Optimus is thinking..."))
	}
	return strings.Join(lines, "\n")
}

// Resize updates the component size.
func (m *ChatModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(10, width-lipgloss.Width(m.input.Prompt)-1)
	m.log.Width = width
	m.log.Height = max(1, height-1)
	m.log.SetContent(m.renderLog())
}
