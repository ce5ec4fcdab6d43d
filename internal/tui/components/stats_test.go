package components

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/dashboard"
	"github.com/Veraticus/optifi/internal/model"
	tuitest "github.com/Veraticus/optifi/internal/tui/testing"
	"github.com/Veraticus/optifi/internal/tui/themes"
)

var errUnreachable = fmt.Errorf("%w: connection refused", common.ErrTransport)

var sampleStats = model.Stats{
	Saved:             1520.4,
	TotalSpent:        4210,
	AvgMonthly:        1403,
	AvgDaily:          46,
	SavingsRate:       26.5,
	MoMChange:         3.1,
	TotalMonthlyFixed: 62,
	BurnRate:          112,
}

func TestStatsPanel_Loading(t *testing.T) {
	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.BeginStats()

	m := NewStatsPanelModel(themes.Default)
	m.SetFeed(s.Snapshot().Stats)

	assert.Contains(t, tuitest.StripANSI(m.View()), "Loading statistics...")
}

func TestStatsPanel_FailedBeforeFirstLoad(t *testing.T) {
	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.ResolveStats(s.BeginStats(), model.Stats{}, errUnreachable)

	m := NewStatsPanelModel(themes.Default)
	m.SetFeed(s.Snapshot().Stats)

	assert.Contains(t, tuitest.StripANSI(m.View()), "Statistics unavailable")
}

func TestStatsPanel_Full(t *testing.T) {
	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.ResolveStats(s.BeginStats(), sampleStats, nil)

	m := NewStatsPanelModel(themes.Default)
	m.Resize(160)
	m.SetFeed(s.Snapshot().Stats)

	view := tuitest.StripANSI(m.View())
	for _, want := range []string{"Net Saved", "+$1,520", "Total Spent", "$4,210", "MoM Change", "+3.1%", "Burn Rate", "112%", "Savings rate"} {
		assert.Contains(t, view, want)
	}
	assert.NotContains(t, view, "(stale)")

	s.ResolveStats(s.BeginStats(), model.Stats{}, errUnreachable)
	m.SetFeed(s.Snapshot().Stats)

	view = tuitest.StripANSI(m.View())
	assert.Contains(t, view, "+$1,520", "a failed refresh keeps the last values")
	assert.Contains(t, view, "(stale)")
}

func TestStatsPanel_Compact(t *testing.T) {
	s := dashboard.NewState(dashboard.LastResolvedWins)
	s.ResolveStats(s.BeginStats(), sampleStats, nil)

	m := NewStatsPanelModel(themes.Default)
	m.Resize(400)
	m.SetCompact(true)
	m.SetFeed(s.Snapshot().Stats)

	view := tuitest.StripANSI(m.View())
	assert.Contains(t, view, "Net Saved: +$1,520 | Total Spent: $4,210")
	assert.Contains(t, view, "Burn Rate: 112%")
}
