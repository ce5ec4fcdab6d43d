package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/tui/themes"
	"github.com/Veraticus/optifi/internal/tui/viewmodel"
)

// TransactionListModel manages the transactions pane.
type TransactionListModel struct {
	theme       themes.Theme
	view        viewmodel.TransactionListView
	searchInput textinput.Model
	table       table.Model
	mode        ListMode
	width       int
	height      int
}

// ListMode represents the current mode of the list.
type ListMode int

// List modes.
const (
	ModeNormal ListMode = iota
	ModeSearch
)

// NewTransactionList creates an empty transaction list.
func NewTransactionList(theme themes.Theme) TransactionListModel {
	t := table.New(
		table.WithColumns(transactionColumns(80)),
		table.WithFocused(false),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	searchInput := textinput.New()
	searchInput.Placeholder = "Search transactions..."
	searchInput.Prompt = "/ "
	searchInput.CharLimit = 50

	return TransactionListModel{
		theme:       theme,
		table:       t,
		searchInput: searchInput,
		mode:        ModeNormal,
		width:       80,
		height:      24,
	}
}

// Update handles messages.
func (m TransactionListModel) Update(msg tea.Msg) (TransactionListModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.mode == ModeSearch {
		return m, m.handleSearchMode(keyMsg)
	}

	if cmd := m.handleNormalMode(keyMsg); cmd != nil {
		return m, cmd
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// handleNormalMode handles key presses in normal mode.
func (m *TransactionListModel) handleNormalMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		m.mode = ModeSearch
		m.searchInput.SetValue(m.view.Search)
		m.searchInput.CursorEnd()
		focus := m.searchInput.Focus()
		// Search only narrows the all tab.
		if m.view.Tab != dashboard.TabAll {
			return tea.Batch(focus, emit(TabSelectedMsg{Tab: dashboard.TabAll}))
		}
		return focus

	case "1":
		return emit(TabSelectedMsg{Tab: dashboard.TabAll})

	case "2":
		return emit(TabSelectedMsg{Tab: dashboard.TabUnusual})

	case "enter":
		if row, ok := m.SelectedRow(); ok && row.Flagged {
			return emit(ExplanationToggledMsg{ID: row.ID})
		}
	}

	return nil
}

// handleSearchMode handles key presses in search mode.
func (m *TransactionListModel) handleSearchMode(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
		m.searchInput.Blur()
		return emit(SearchChangedMsg{Query: strings.TrimSpace(m.searchInput.Value())})

	case "esc":
		m.mode = ModeNormal
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		return emit(SearchChangedMsg{Query: ""})
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return cmd
}

// SetSnapshot rebuilds the rows from the dashboard state.
func (m *TransactionListModel) SetSnapshot(snap dashboard.Snapshot) {
	m.view = viewmodel.NewTransactionListView(snap)
	m.table.SetRows(m.buildTableRows())
	if m.table.Cursor() >= len(m.view.Rows) {
		m.table.SetCursor(max(0, len(m.view.Rows)-1))
	}
}

// SelectedRow returns the row under the cursor.
func (m TransactionListModel) SelectedRow() (viewmodel.TransactionRow, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Rows) {
		return viewmodel.TransactionRow{}, false
	}
	return m.view.Rows[i], true
}

// Capturing reports whether the list is consuming typed text.
func (m TransactionListModel) Capturing() bool {
	return m.mode == ModeSearch
}

// Focus lets the table take navigation keys.
func (m *TransactionListModel) Focus() {
	m.table.Focus()
}

// Blur stops the table from taking keys and abandons an unapplied search.
func (m *TransactionListModel) Blur() {
	m.table.Blur()
	if m.mode == ModeSearch {
		m.mode = ModeNormal
		m.searchInput.Blur()
	}
}

// View renders the transaction list.
func (m TransactionListModel) View() string {
	sections := []string{m.renderTabs()}

	if m.mode == ModeSearch {
		sections = append(sections, m.searchInput.View())
	} else if m.view.Search != "" && m.view.Tab == dashboard.TabAll {
		sections = append(sections, m.theme.Subtitle.Render(fmt.Sprintf("Search: %q  (/ to edit, esc clears)", m.view.Search)))
	}

	switch {
	case m.view.IsEmpty() && m.view.Loading:
		sections = append(sections, m.theme.StatusPending.Render("Loading..."))
	case m.view.IsEmpty() && m.view.Tab == dashboard.TabUnusual:
		sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.Muted).Render("Nothing unusual."))
	case m.view.IsEmpty():
		sections = append(sections, lipgloss.NewStyle().Foreground(m.theme.Muted).Render(viewmodel.EmptyTransactions))
	default:
		sections = append(sections, m.table.View())
	}

	if explanation := m.renderExplanations(); explanation != "" {
		sections = append(sections, explanation)
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m TransactionListModel) renderTabs() string {
	tabs := []struct {
		label string
		tab   dashboard.Tab
	}{
		{label: "[1] All", tab: dashboard.TabAll},
		{label: fmt.Sprintf("[2] Unusual (%d)", m.view.Anomalies), tab: dashboard.TabUnusual},
	}

	rendered := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.tab == m.view.Tab {
			rendered = append(rendered, m.theme.Selected.Padding(0, 1).Render(t.label))
			continue
		}
		rendered = append(rendered, lipgloss.NewStyle().Foreground(m.theme.Muted).Padding(0, 1).Render(t.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderExplanations lists the flag reasons the user revealed.
func (m TransactionListModel) renderExplanations() string {
	var lines []string
	for _, row := range m.view.Rows {
		if !row.Flagged || !row.Revealed || row.Explanation == "" {
			continue
		}
		line := fmt.Sprintf("! %s: %s", row.Description, row.Explanation)
		lines = append(lines, m.theme.Anomaly.Render(ansi.Truncate(line, m.width, "…")))
	}
	return strings.Join(lines, "\n")
}

// buildTableRows builds rows for the table.
func (m TransactionListModel) buildTableRows() []table.Row {
	rows := make([]table.Row, 0, len(m.view.Rows))
	for _, r := range m.view.Rows {
		flag := ""
		if r.Flagged {
			flag = "!"
			if r.Severity != "" {
				flag += " " + r.Severity
			}
		}
		rows = append(rows, table.Row{r.Date, r.Description, r.Category, r.Amount, flag})
	}
	return rows
}

// Resize updates the component size.
func (m *TransactionListModel) Resize(width, height int) {
	m.width = width
	m.height = height

	// Tabs, search line, column header with its border, and one explanation line.
	m.table.SetHeight(max(1, height-5))
	m.table.SetColumns(transactionColumns(width))
	m.searchInput.Width = max(10, width-3)
}

// transactionColumns sizes the columns for width.
func transactionColumns(width int) []table.Column {
	available := max(48, width-6)
	return []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Description", Width: max(12, int(float64(available)*0.4))},
		{Title: "Category", Width: max(10, int(float64(available)*0.2))},
		{Title: "Amount", Width: 11},
		{Title: "Flag", Width: 8},
	}
}
