package tui

// activatedMsg reports that the initial fetches finished.
type activatedMsg struct {
	err error
}

// feedDoneMsg reports that a dashboard action finished. Its outcome is already in the
// dashboard state; err is only used for the status line.
type feedDoneMsg struct {
	err  error
	feed string
}
