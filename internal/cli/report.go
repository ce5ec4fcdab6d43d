package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Veraticus/optifi/internal/chart"
	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	"github.com/Veraticus/optifi/internal/tui/viewmodel"
)

func toneStyle(t viewmodel.Tone) lipgloss.Style {
	switch t {
	case viewmodel.ToneGood:
		return SuccessStyle
	case viewmodel.ToneWarning:
		return WarningStyle
	case viewmodel.ToneBad:
		return ErrorStyle
	default:
		return lipgloss.NewStyle()
	}
}

// RenderStats lists the statistic cards, one per line.
func RenderStats(feed dashboard.Feed[model.Stats]) string {
	if !feed.HasData {
		return FormatError("Statistics unavailable: " + common.UserMessage(feed.Err, "connection failed"))
	}

	cards := viewmodel.NewStatsView(feed.Data).Cards()
	labelWidth := 0
	for _, c := range cards {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}

	lines := make([]string, 0, len(cards))
	for _, c := range cards {
		line := fmt.Sprintf("  %-*s  %s", labelWidth, c.Label, toneStyle(c.Tone).Bold(true).Render(c.Value))
		if c.Note != "" {
			line += " " + SubtleStyle.Render(c.Note)
		}
		lines = append(lines, line)
	}
	return RenderBox(ChartIcon+" Overview", strings.Join(lines, "\n"))
}

// RenderTransactions draws the rows of the selected tab as a table, at most limit rows.
// A limit of zero or less shows every row.
func RenderTransactions(snap dashboard.Snapshot, limit int) string {
	view := viewmodel.NewTransactionListView(snap)
	if view.IsEmpty() {
		if snap.Transactions.Err != nil && !snap.Transactions.HasData {
			return FormatError("Transactions unavailable")
		}
		return SubtleStyle.Render(viewmodel.EmptyTransactions)
	}

	rows := view.Rows
	hidden := 0
	if limit > 0 && len(rows) > limit {
		hidden = len(rows) - limit
		rows = rows[:limit]
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers("Date", "Description", "Category", "Amount", "")
	for _, r := range rows {
		flag := ""
		if r.Flagged {
			flag = "!"
		}
		t.Row(r.Date, r.Description, r.Category, r.Amount, flag)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		style := lipgloss.NewStyle().Padding(0, 1)
		switch {
		case row == table.HeaderRow:
			return style.Bold(true).Foreground(PrimaryColor)
		case col == 3 && row >= 0 && row < len(rows) && rows[row].Deposit:
			return style.Foreground(SuccessColor)
		case col == 4:
			return style.Foreground(ErrorColor)
		}
		return style
	})

	out := t.String()
	if hidden > 0 {
		out += "\n" + SubtleStyle.Render(fmt.Sprintf("… %d more", hidden))
	}
	var explanations []string
	for _, r := range rows {
		if r.Flagged && r.Explanation != "" {
			explanations = append(explanations, WarningStyle.Render("! "+r.Description+": "+r.Explanation))
		}
	}
	if len(explanations) > 0 && view.Tab == dashboard.TabUnusual {
		out += "\n" + strings.Join(explanations, "\n")
	}
	return out
}

// RenderSubscriptions lists the recurring charges of the last scan.
func RenderSubscriptions(feed dashboard.Feed[[]model.Subscription]) string {
	switch {
	case feed.Err != nil && common.IsFeedFailure(feed.Err):
		return FormatError("Subscription scan failed")
	case feed.Err != nil:
		return FormatWarning(common.UserMessage(feed.Err, "Subscription scan failed"))
	case len(feed.Data) == 0:
		return SubtleStyle.Render("No recurring charges found.")
	}

	lines := []string{BoldStyle.Render(fmt.Sprintf("%s %d recurring, $%s total", RepeatIcon, len(feed.Data), model.SumSubscriptions(feed.Data).StringFixed(2)))}
	for _, s := range feed.Data {
		marker := SuccessStyle.Render("●")
		if !s.IsConfirmed() {
			marker = WarningStyle.Render("◐")
		}
		amount := "$" + s.Amount.StringFixed(2)
		if s.Frequency != "" {
			amount += "/" + s.Frequency
		}
		line := fmt.Sprintf("  %s %s  %s", marker, s.Name, amount)
		if s.Note != "" {
			line += "  " + SubtleStyle.Render(s.Note)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// RenderForecast colors the forecast narrative by status.
func RenderForecast(res model.ForecastResult) string {
	switch {
	case !res.Available:
		return FormatWarning(res.Message)
	case res.Status == model.ForecastOnTrack:
		return FormatSuccess(res.Message)
	case res.Status == model.ForecastAtRisk:
		return WarningStyle.Render(res.Message)
	default:
		return res.Message
	}
}

// RenderReply formats one conversation message.
func RenderReply(msg model.Message) string {
	if msg.Role == model.RoleUser {
		return PromptStyle.Render("You: ") + msg.Content
	}
	return PromptStyle.Render(RobotIcon+" Optimus: ") + CoachStyle.Render(msg.Content)
}

// RenderVisualization draws the visualization slot, or nothing when it is empty.
func RenderVisualization(snap dashboard.Snapshot, width int) string {
	r, ok := snap.Rendering()
	if !ok {
		return ""
	}
	return chart.Draw(r, width)
}
