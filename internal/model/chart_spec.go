package model

// ChartType names the kind of chart a spec asks for.
type ChartType string

// Chart kinds the interpreter understands.
const (
	ChartPie  ChartType = "pie"
	ChartBar  ChartType = "bar"
	ChartLine ChartType = "line"
)

// Row is one record of chart data. Keys are chosen by the spec author.
type Row map[string]any

// ChartSpec is a declarative chart description authored by the backend or the synthesizer.
// A spec with Error set carries no chart.
type ChartSpec struct {
	ChartType ChartType `json:"chartType,omitempty"`
	Title     string    `json:"title,omitempty"`
	Summary   string    `json:"summary,omitempty"`
	DataKey   string    `json:"dataKey,omitempty"`
	XAxisKey  string    `json:"xAxisKey,omitempty"`
	Error     string    `json:"error,omitempty"`
	Data      []Row     `json:"data,omitempty"`
}

// IsError reports whether the spec is an error descriptor.
func (s ChartSpec) IsError() bool {
	return s.Error != ""
}

// IsEmpty reports whether the spec carries neither a chart nor an error.
func (s ChartSpec) IsEmpty() bool {
	return s.ChartType == "" && s.Error == "" && len(s.Data) == 0 &&
		s.Title == "" && s.Summary == "" && s.DataKey == "" && s.XAxisKey == ""
}
