package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
)

func TestColorAt(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		index int
	}{
		{name: "first", index: 0, want: "#0088FE"},
		{name: "last", index: 19, want: "#34495E"},
		{name: "wraps", index: 20, want: "#0088FE"},
		{name: "wraps twice", index: 41, want: "#00C49F"},
		{name: "negative", index: -1, want: "#34495E"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ColorAt(tt.index))
		})
	}
}

func TestInterpret_ErrorShortCircuits(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartPie,
		Title:     "ignored",
		DataKey:   "amount",
		Error:     "No data for that period.",
	}

	r := Interpret(spec)

	require.IsType(t, Failed{}, r)
	assert.Equal(t, KindFailed, r.Kind())
	assert.Equal(t, "No data for that period.", r.(Failed).Message)
}

func TestInterpret_Unsupported(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: "scatter",
		Title:     "Points",
		DataKey:   "v",
		Data:      []model.Row{{"v": 1.0}},
	}

	r := Interpret(spec)

	require.IsType(t, Unsupported{}, r)
	u := r.(Unsupported)
	assert.Equal(t, model.ChartType("scatter"), u.ChartType)
	assert.Equal(t, "Points", u.Title)
	assert.Contains(t, u.Advisory(), "scatter")
}

func TestInterpret_Pie(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartPie,
		Title:     "Spending",
		Summary:   "Where it went.",
		DataKey:   "amount",
		Data: []model.Row{
			{"name": "Food", "amount": 30.0},
			{"name": "Rent", "amount": 70.0},
		},
	}

	r := Interpret(spec)

	require.IsType(t, PieChart{}, r)
	pie := r.(PieChart)
	assert.Equal(t, "Spending", pie.Title)
	assert.Equal(t, "Where it went.", pie.Summary)
	assert.InDelta(t, 100.0, pie.Total, 1e-9)
	require.Len(t, pie.Segments, 2)

	assert.Equal(t, "Food", pie.Segments[0].Label)
	assert.Equal(t, 30, pie.Segments[0].Percent)
	assert.Equal(t, Palette[0], pie.Segments[0].Color)
	assert.Equal(t, "Rent", pie.Segments[1].Label)
	assert.Equal(t, 70, pie.Segments[1].Percent)
	assert.Equal(t, Palette[1], pie.Segments[1].Color)

	var shares float64
	for _, s := range pie.Segments {
		shares += s.Share
	}
	assert.InDelta(t, 1.0, shares, 1e-9)
}

func TestInterpret_PieZeroTotal(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartPie,
		DataKey:   "amount",
		Data:      []model.Row{{"name": "A", "amount": 0.0}, {"name": "B", "amount": 0.0}},
	}

	pie, ok := Interpret(spec).(PieChart)
	require.True(t, ok)
	for _, s := range pie.Segments {
		assert.Zero(t, s.Share)
		assert.Zero(t, s.Percent)
	}
}

func TestInterpret_PieColorsCycle(t *testing.T) {
	data := make([]model.Row, 22)
	for i := range data {
		data[i] = model.Row{"name": "c", "amount": 1.0}
	}
	pie, ok := Interpret(model.ChartSpec{ChartType: model.ChartPie, DataKey: "amount", Data: data}).(PieChart)
	require.True(t, ok)

	assert.Equal(t, pie.Segments[0].Color, pie.Segments[20].Color)
	assert.Equal(t, pie.Segments[1].Color, pie.Segments[21].Color)
}

func TestInterpret_BarLabels(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartBar,
		DataKey:   "total",
		XAxisKey:  "day",
		Data: []model.Row{
			{"day": "2024-03-05", "total": 12.5},
			{"day": "Weekend", "total": 40.0},
			{"day": 7.0, "total": 3.0},
		},
	}

	r := Interpret(spec)

	require.IsType(t, BarChart{}, r)
	bars := r.(BarChart).Bars
	require.Len(t, bars, 3)
	assert.Equal(t, "3/5", bars[0].Label)
	assert.Equal(t, "Weekend", bars[1].Label)
	assert.Equal(t, "7", bars[2].Label)
	assert.InDelta(t, 40.0, bars[1].Value, 1e-9)
	assert.Equal(t, Palette[2], bars[2].Color)
}

func TestInterpret_LineAnomalyMarkers(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartLine,
		DataKey:   "spend",
		XAxisKey:  "month",
		Data: []model.Row{
			{"month": "2024-01-01", "spend": 900.0},
			{"month": "2024-02-01", "spend": 2400.0, "is_anomaly": true},
			{"month": "Q2", "spend": 850.0, "is_anomaly": false},
		},
	}

	r := Interpret(spec)

	require.IsType(t, LineChart{}, r)
	points := r.(LineChart).Points
	require.Len(t, points, 3)

	assert.Equal(t, "Jan 24", points[0].Label)
	assert.False(t, points[0].Anomaly)
	assert.Equal(t, StandardMarker, points[0].Marker)

	assert.Equal(t, "Feb 24", points[1].Label)
	assert.True(t, points[1].Anomaly)
	assert.Equal(t, AnomalyMarker, points[1].Marker)
	assert.InDelta(t, 6.0, points[1].Marker.Radius, 1e-9)
	assert.Equal(t, "#FF0000", points[1].Marker.Stroke)

	assert.Equal(t, "Q2", points[2].Label)
	assert.Equal(t, StandardMarker, points[2].Marker)
}

func TestInterpret_Invalid(t *testing.T) {
	tests := []struct {
		name string
		spec model.ChartSpec
	}{
		{
			name: "pie without data key",
			spec: model.ChartSpec{ChartType: model.ChartPie, Data: []model.Row{{"name": "A", "amount": 1.0}}},
		},
		{
			name: "pie row missing value",
			spec: model.ChartSpec{ChartType: model.ChartPie, DataKey: "amount", Data: []model.Row{{"name": "A"}}},
		},
		{
			name: "bar without axis key",
			spec: model.ChartSpec{ChartType: model.ChartBar, DataKey: "amount", Data: []model.Row{{"amount": 1.0}}},
		},
		{
			name: "bar row missing axis",
			spec: model.ChartSpec{
				ChartType: model.ChartBar, DataKey: "amount", XAxisKey: "day",
				Data: []model.Row{{"day": "2024-01-01", "amount": 1.0}, {"amount": 2.0}},
			},
		},
		{
			name: "line non-numeric value",
			spec: model.ChartSpec{
				ChartType: model.ChartLine, DataKey: "amount", XAxisKey: "month",
				Data: []model.Row{{"month": "2024-01", "amount": "lots"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Interpret(tt.spec)
			require.IsType(t, Invalid{}, r)
			inv := r.(Invalid)
			assert.ErrorIs(t, inv.Err, common.ErrInvalidSpec)
			assert.Contains(t, inv.Advisory(), "Cannot display this chart")
		})
	}
}

func TestInterpret_NumericStrings(t *testing.T) {
	spec := model.ChartSpec{
		ChartType: model.ChartPie,
		DataKey:   "amount",
		Data:      []model.Row{{"name": "A", "amount": "25.5"}},
	}

	pie, ok := Interpret(spec).(PieChart)
	require.True(t, ok)
	assert.InDelta(t, 25.5, pie.Total, 1e-9)
	assert.Equal(t, 100, pie.Segments[0].Percent)
}

func TestInterpret_EmptyData(t *testing.T) {
	pie, ok := Interpret(model.ChartSpec{ChartType: model.ChartPie, DataKey: "amount"}).(PieChart)
	require.True(t, ok)
	assert.Empty(t, pie.Segments)
	assert.Zero(t, pie.Total)
}

func TestTruthy(t *testing.T) {
	assert.True(t, truthy(true))
	assert.True(t, truthy(1.0))
	assert.True(t, truthy("yes"))
	assert.False(t, truthy(nil))
	assert.False(t, truthy(false))
	assert.False(t, truthy(0.0))
	assert.False(t, truthy(""))
}
