package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/tui/components"
	"github.com/Veraticus/optifi/internal/tui/themes"
	"github.com/Veraticus/optifi/internal/tui/viewmodel"
)

// compactWidth is the terminal width below which only the focused pane is shown.
const compactWidth = 100

// Model holds the main TUI state.
type Model struct {
	ctx       context.Context
	lastError error
	dash      *dashboard.Dashboard
	logger    *slog.Logger
	theme     themes.Theme
	keymap    KeyMap
	help      help.Model
	spinner   spinner.Model
	snapshot  dashboard.Snapshot
	stats     components.StatsPanelModel
	chat      components.ChatModel
	chart     components.ChartPaneModel
	list      components.TransactionListModel
	subs      components.SubscriptionsModel
	forecast  components.ForecastFormModel
	config    Config
	width     int
	height    int
	focus     viewmodel.Pane
	showHelp  bool
	quitting  bool
	ready     bool
}

// NewModel creates the dashboard model. Nothing is fetched until Init runs.
func NewModel(ctx context.Context, d *dashboard.Dashboard, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	spin := spinner.New()
	spin.Spinner = spinner.MiniDot
	spin.Style = lipgloss.NewStyle().Foreground(cfg.Theme.Primary)

	m := Model{
		ctx:      ctx,
		dash:     d,
		logger:   common.ComponentLogger("tui"),
		theme:    cfg.Theme,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		spinner:  spin,
		stats:    components.NewStatsPanelModel(cfg.Theme),
		chat:     components.NewChatModel(cfg.Theme),
		chart:    components.NewChartPaneModel(cfg.Theme),
		list:     components.NewTransactionList(cfg.Theme),
		subs:     components.NewSubscriptionsModel(cfg.Theme),
		forecast: components.NewForecastFormModel(cfg.Theme),
		config:   cfg,
		width:    cfg.Width,
		height:   cfg.Height,
		showHelp: cfg.ShowHelp,
	}
	m.focusPane(viewmodel.PaneTransactions)
	m.handleResize()
	m.sync()
	return m
}

// Init starts the spinner and the initial fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.activate())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.focus == viewmodel.PaneSubscriptions {
			var cmd tea.Cmd
			m.subs, cmd = m.subs.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		// Requests resolve on their own goroutines; pick up whatever landed since the last frame.
		m.sync()
		return m, cmd

	case activatedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.logger.Debug("activation finished with errors", "error", msg.err)
		}
		m.sync()
		return m, nil

	case feedDoneMsg:
		m.lastError = msg.err
		if msg.err != nil {
			m.logger.Debug("feed finished with error", "feed", msg.feed, "error", msg.err)
		}
		m.sync()
		return m, nil

	case components.ChatSubmittedMsg:
		return m, m.sendChat(msg.Text)

	case components.VisualizeSubmittedMsg:
		return m, m.visualize(msg.Prompt)

	case components.ForecastSubmittedMsg:
		return m, m.forecastGoal(msg.Request)

	case components.SearchChangedMsg:
		m.dash.SetSearch(msg.Query)
		m.sync()
		return m, nil

	case components.TabSelectedMsg:
		m.dash.SetTab(msg.Tab)
		m.sync()
		return m, nil

	case components.ExplanationToggledMsg:
		m.dash.ToggleExplanation(msg.ID)
		m.sync()
		return m, nil
	}

	return m, nil
}

// handleKey routes a key press. Panes taking typed text get every key except the
// pane switching ones.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.NextPane):
		return m, m.focusPane(m.focus.Next())
	case key.Matches(msg, m.keymap.PrevPane):
		return m, m.focusPane(m.focus.Prev())
	}

	if m.capturing() {
		if m.isInputPane() && key.Matches(msg, m.keymap.Leave) {
			return m, m.focusPane(viewmodel.PaneTransactions)
		}
		return m.updateFocused(msg)
	}

	if m.showHelp {
		if key.Matches(msg, m.keymap.Help) || key.Matches(msg, m.keymap.Leave) {
			m.showHelp = false
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, m.keymap.ClearScreen):
		return m, tea.ClearScreen
	case key.Matches(msg, m.keymap.Rescan):
		return m, m.rescan()
	case key.Matches(msg, m.keymap.RefreshAll):
		return m, m.refreshAll()
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case viewmodel.PaneChat:
		m.chat, cmd = m.chat.Update(msg)
	case viewmodel.PaneChart:
		m.chart, cmd = m.chart.Update(msg)
	case viewmodel.PaneTransactions:
		m.list, cmd = m.list.Update(msg)
	case viewmodel.PaneSubscriptions:
		m.subs, cmd = m.subs.Update(msg)
	case viewmodel.PaneForecast:
		m.forecast, cmd = m.forecast.Update(msg)
	}
	return m, cmd
}

// isInputPane reports whether the focused pane is a text entry pane.
func (m Model) isInputPane() bool {
	switch m.focus {
	case viewmodel.PaneChat, viewmodel.PaneChart, viewmodel.PaneForecast:
		return true
	default:
		return false
	}
}

// capturing reports whether the focused pane consumes typed text.
func (m Model) capturing() bool {
	return m.isInputPane() || (m.focus == viewmodel.PaneTransactions && m.list.Capturing())
}

// focusPane moves the focus and returns the cursor command of the new pane.
func (m *Model) focusPane(p viewmodel.Pane) tea.Cmd {
	m.chat.Blur()
	m.chart.Blur()
	m.list.Blur()
	m.forecast.Blur()

	m.focus = p
	switch p {
	case viewmodel.PaneChat:
		return m.chat.Focus()
	case viewmodel.PaneChart:
		return m.chart.Focus()
	case viewmodel.PaneForecast:
		return m.forecast.Focus()
	case viewmodel.PaneTransactions:
		m.list.Focus()
	}
	return nil
}

// sync pushes the current dashboard state into the components.
func (m *Model) sync() {
	m.snapshot = m.dash.State().Snapshot()

	conv := m.dash.Conversation()
	m.chat.SetConversation(conv.Messages(), conv.Awaiting())
	m.stats.SetFeed(m.snapshot.Stats)
	m.chart.SetSnapshot(m.snapshot)
	m.list.SetSnapshot(m.snapshot)
	m.subs.SetFeed(m.snapshot.Subscriptions)
	m.forecast.SetFeed(m.snapshot.Forecast)
}

// Focus returns the focused pane.
func (m Model) Focus() viewmodel.Pane {
	return m.focus
}

// Snapshot returns the dashboard state the view was last built from.
func (m Model) Snapshot() dashboard.Snapshot {
	return m.snapshot
}
