package components

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
)

// ChatSubmittedMsg is sent when the user sends a chat message.
type ChatSubmittedMsg struct {
	Text string
}

// VisualizeSubmittedMsg requests an ad-hoc chart.
type VisualizeSubmittedMsg struct {
	Prompt string
}

// ForecastSubmittedMsg requests a goal forecast.
type ForecastSubmittedMsg struct {
	Request model.GoalForecastRequest
}

// SearchChangedMsg is sent when the transaction search is applied or cleared.
type SearchChangedMsg struct {
	Query string
}

// TabSelectedMsg switches the transactions pane tab.
type TabSelectedMsg struct {
	Tab dashboard.Tab
}

// ExplanationToggledMsg reveals or hides why a transaction was flagged.
type ExplanationToggledMsg struct {
	ID model.ID
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
