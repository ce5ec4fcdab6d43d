package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

// DateLayout is the format of the goal date field.
const DateLayout = "2006-01-02"

const (
	fieldName = iota
	fieldAmount
	fieldDate
	fieldCount
)

// ForecastFormModel collects a savings goal and shows the forecast for it.
type ForecastFormModel struct {
	theme     themes.Theme
	inputErr  error
	result    model.ForecastResult
	fields    [fieldCount]textinput.Model
	active    int
	width     int
	loading   bool
	hasResult bool
	focused   bool
}

// NewForecastFormModel creates an empty goal form.
func NewForecastFormModel(theme themes.Theme) ForecastFormModel {
	name := textinput.New()
	name.Prompt = "Goal:   "
	name.Placeholder = "New laptop"
	name.CharLimit = 80

	amount := textinput.New()
	amount.Prompt = "Amount: "
	amount.Placeholder = "1500"
	amount.CharLimit = 16

	date := textinput.New()
	date.Prompt = "By:     "
	date.Placeholder = DateLayout
	date.CharLimit = len(DateLayout)

	return ForecastFormModel{
		theme:  theme,
		fields: [fieldCount]textinput.Model{name, amount, date},
		width:  40,
	}
}

// Update handles key presses while the form is focused.
func (m ForecastFormModel) Update(msg tea.Msg) (ForecastFormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up":
		return m, m.moveTo((m.active + fieldCount - 1) % fieldCount)
	case "down":
		return m, m.moveTo((m.active + 1) % fieldCount)
	case "enter":
		if m.active < fieldDate {
			return m, m.moveTo(m.active + 1)
		}
		if m.loading {
			return m, nil
		}
		req, err := m.Request()
		m.inputErr = err
		if err != nil {
			return m, nil
		}
		return m, emit(ForecastSubmittedMsg{Request: req})
	}

	var cmd tea.Cmd
	m.fields[m.active], cmd = m.fields[m.active].Update(msg)
	return m, cmd
}

// Request parses the form into a goal.
func (m ForecastFormModel) Request() (model.GoalForecastRequest, error) {
	req := model.GoalForecastRequest{Name: strings.TrimSpace(m.fields[fieldName].Value())}

	if raw := strings.TrimSpace(m.fields[fieldAmount].Value()); raw != "" {
		amount, err := decimal.NewFromString(strings.TrimPrefix(strings.ReplaceAll(raw, ",", ""), "$"))
		if err != nil {
			return req, fmt.Errorf("amount %q is not a number", raw)
		}
		req.Amount = amount
	}

	if raw := strings.TrimSpace(m.fields[fieldDate].Value()); raw != "" {
		date, err := time.Parse(DateLayout, raw)
		if err != nil {
			return req, fmt.Errorf("date %q must look like %s", raw, DateLayout)
		}
		req.Date = date
	}

	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

// SetValues fills the form fields.
func (m *ForecastFormModel) SetValues(name, amount, date string) {
	m.fields[fieldName].SetValue(name)
	m.fields[fieldAmount].SetValue(amount)
	m.fields[fieldDate].SetValue(date)
}

// SetFeed picks up the forecast feed.
func (m *ForecastFormModel) SetFeed(feed dashboard.Feed[model.ForecastResult]) {
	m.loading = feed.Loading()
	m.hasResult = feed.HasData
	m.result = feed.Data
}

func (m *ForecastFormModel) moveTo(i int) tea.Cmd {
	m.fields[m.active].Blur()
	m.active = i
	if !m.focused {
		return nil
	}
	return m.fields[m.active].Focus()
}

// Focus activates the current field.
func (m *ForecastFormModel) Focus() tea.Cmd {
	m.focused = true
	return m.fields[m.active].Focus()
}

// Blur deactivates every field.
func (m *ForecastFormModel) Blur() {
	m.focused = false
	for i := range m.fields {
		m.fields[i].Blur()
	}
}

// View renders the form above the latest forecast.
func (m ForecastFormModel) View() string {
	lines := make([]string, 0, fieldCount+3)
	for i := range m.fields {
		lines = append(lines, m.fields[i].View())
	}

	switch {
	case m.inputErr != nil:
		lines = append(lines, m.theme.StatusError.Render(m.inputErr.Error()))
	case m.loading:
		lines = append(lines, m.theme.StatusPending.Render("Forecasting..."))
	default:
		lines = append(lines, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("enter: Am I on track?"))
	}

	if m.hasResult {
		lines = append(lines, "", m.renderResult())
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ForecastFormModel) renderResult() string {
	style := m.theme.Normal
	switch {
	case !m.result.Available:
		style = m.theme.StatusWarning
	case m.result.Status == model.ForecastOnTrack:
		style = lipgloss.NewStyle().Foreground(m.theme.Success)
	case m.result.Status == model.ForecastAtRisk:
		style = lipgloss.NewStyle().Foreground(m.theme.Warning)
	}
	return style.Width(max(10, m.width)).Render(m.result.Message)
}

// Resize updates the component size.
func (m *ForecastFormModel) Resize(width int) {
	m.width = width
	for i := range m.fields {
		m.fields[i].Width = max(10, width-lipgloss.Width(m.fields[i].Prompt)-1)
	}
}
