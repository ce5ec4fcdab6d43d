package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	NextPane key.Binding
	PrevPane key.Binding
	Leave    key.Binding

	// Transactions
	Submit      key.Binding
	Search      key.Binding
	TabAll      key.Binding
	TabUnusual  key.Binding
	Explanation key.Binding

	// Feeds
	Rescan     key.Binding
	RefreshAll key.Binding

	// Application
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("Shift+Tab", "previous pane"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "leave input"),
		),

		// Transactions
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		TabAll: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "all transactions"),
		),
		TabUnusual: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "unusual only"),
		),
		Explanation: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "why flagged"),
		),

		// Feeds
		Rescan: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rescan subscriptions"),
		),
		RefreshAll: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh all"),
		),

		// Application
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "force quit"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "clear screen"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane, k.Leave, k.Submit},
		{k.Search, k.TabAll, k.TabUnusual, k.Explanation},
		{k.Rescan, k.RefreshAll},
		{k.Help, k.Quit, k.ForceQuit, k.ClearScreen},
	}
}
