// Package chart turns declarative chart specs into resolved renderings.
//
// Interpret is total: every spec maps to exactly one Rendering variant, and specs the
// interpreter cannot draw come back as Unsupported, Invalid or Failed instead of an error.
package chart

import (
	"fmt"
	"math"

	"github.com/Veraticus/optifi/internal/common"
	"github.com/Veraticus/optifi/internal/model"
)

// Kind identifies a Rendering variant.
type Kind string

// Rendering kinds.
const (
	KindPie         Kind = "pie"
	KindBar         Kind = "bar"
	KindLine        Kind = "line"
	KindUnsupported Kind = "unsupported"
	KindInvalid     Kind = "invalid"
	KindFailed      Kind = "failed"
)

// anomalyField marks a line chart row for the anomaly marker.
const anomalyField = "is_anomaly"

// nameField is the label field of pie rows.
const nameField = "name"

// Rendering is a resolved chart. The set of implementations is closed.
type Rendering interface {
	Kind() Kind
	rendering()
}

// Header carries the text shown around a chart.
type Header struct {
	Title   string
	Summary string
}

// Marker describes how a line chart point is drawn.
type Marker struct {
	Fill        string
	Stroke      string
	Radius      float64
	StrokeWidth float64
}

// Point markers for line charts.
var (
	StandardMarker = Marker{Radius: 3, Fill: LineColor}
	AnomalyMarker  = Marker{Radius: 6, Fill: "#FFFFFF", Stroke: "#FF0000", StrokeWidth: 2}
)

// Segment is one slice of a pie chart.
type Segment struct {
	Label   string
	Color   string
	Value   float64
	Share   float64
	Percent int
}

// PieChart partitions a total into proportional segments.
type PieChart struct {
	Header
	Segments []Segment
	Total    float64
}

// Bar is one bar of a bar chart.
type Bar struct {
	Label string
	Color string
	Value float64
}

// BarChart has one bar per record along the category axis.
type BarChart struct {
	Header
	Bars []Bar
}

// Point is one point of a line chart.
type Point struct {
	Label   string
	Marker  Marker
	Value   float64
	Anomaly bool
}

// LineChart keeps the input order of its records.
type LineChart struct {
	Header
	Points []Point
}

// Unsupported is returned for chart kinds the interpreter does not know.
type Unsupported struct {
	Header
	ChartType model.ChartType
}

// Invalid is returned when a supported spec breaks its data contract.
type Invalid struct {
	Err error
	Header
}

// Failed is returned for specs that are error descriptors.
type Failed struct {
	Message string
}

// Kind implementations.
func (PieChart) Kind() Kind    { return KindPie }
func (BarChart) Kind() Kind    { return KindBar }
func (LineChart) Kind() Kind   { return KindLine }
func (Unsupported) Kind() Kind { return KindUnsupported }
func (Invalid) Kind() Kind     { return KindInvalid }
func (Failed) Kind() Kind      { return KindFailed }

func (PieChart) rendering()    {}
func (BarChart) rendering()    {}
func (LineChart) rendering()   {}
func (Unsupported) rendering() {}
func (Invalid) rendering()     {}
func (Failed) rendering()      {}

// Advisory is the plain message shown in place of the chart.
func (u Unsupported) Advisory() string {
	if u.ChartType == "" {
		return "Unsupported chart type."
	}
	return fmt.Sprintf("Unsupported chart type: %s", u.ChartType)
}

// Advisory is the plain message shown in place of the chart.
func (i Invalid) Advisory() string {
	return fmt.Sprintf("Cannot display this chart: %v", i.Err)
}

// Interpret resolves spec into a Rendering. It never panics and never returns nil.
func Interpret(spec model.ChartSpec) Rendering {
	if spec.IsError() {
		return Failed{Message: spec.Error}
	}

	header := Header{Title: spec.Title, Summary: spec.Summary}

	switch spec.ChartType {
	case model.ChartPie:
		if err := Validate(spec); err != nil {
			return Invalid{Header: header, Err: err}
		}
		return interpretPie(header, spec)

	case model.ChartBar:
		if err := validateWithAxis(spec); err != nil {
			return Invalid{Header: header, Err: err}
		}
		return interpretBar(header, spec)

	case model.ChartLine:
		if err := validateWithAxis(spec); err != nil {
			return Invalid{Header: header, Err: err}
		}
		return interpretLine(header, spec)

	default:
		return Unsupported{Header: header, ChartType: spec.ChartType}
	}
}

// Validate checks that every row carries a numeric DataKey and, when set, the XAxisKey.
func Validate(spec model.ChartSpec) error {
	if spec.DataKey == "" {
		return fmt.Errorf("%w: dataKey is required", common.ErrInvalidSpec)
	}
	for i, row := range spec.Data {
		v, ok := row[spec.DataKey]
		if !ok {
			return fmt.Errorf("%w: row %d is missing %q", common.ErrInvalidSpec, i, spec.DataKey)
		}
		if _, ok := numericValue(v); !ok {
			return fmt.Errorf("%w: row %d has non-numeric %q", common.ErrInvalidSpec, i, spec.DataKey)
		}
		if spec.XAxisKey != "" {
			if _, ok := row[spec.XAxisKey]; !ok {
				return fmt.Errorf("%w: row %d is missing %q", common.ErrInvalidSpec, i, spec.XAxisKey)
			}
		}
	}
	return nil
}

func validateWithAxis(spec model.ChartSpec) error {
	if spec.XAxisKey == "" {
		return fmt.Errorf("%w: %s chart requires xAxisKey", common.ErrInvalidSpec, spec.ChartType)
	}
	return Validate(spec)
}

func interpretPie(header Header, spec model.ChartSpec) PieChart {
	values := make([]float64, len(spec.Data))
	var total float64
	for i, row := range spec.Data {
		values[i], _ = numericValue(row[spec.DataKey])
		total += values[i]
	}

	segments := make([]Segment, len(spec.Data))
	for i, row := range spec.Data {
		var share float64
		if total != 0 {
			share = values[i] / total
		}
		segments[i] = Segment{
			Label:   pieLabel(row, spec.XAxisKey, i),
			Color:   ColorAt(i),
			Value:   values[i],
			Share:   share,
			Percent: int(math.Round(share * 100)),
		}
	}

	return PieChart{Header: header, Segments: segments, Total: total}
}

func pieLabel(row model.Row, axisKey string, i int) string {
	if v, ok := row[nameField]; ok {
		return labelString(v)
	}
	if axisKey != "" {
		if v, ok := row[axisKey]; ok {
			return labelString(v)
		}
	}
	return fmt.Sprintf("#%d", i+1)
}

func interpretBar(header Header, spec model.ChartSpec) BarChart {
	bars := make([]Bar, len(spec.Data))
	for i, row := range spec.Data {
		value, _ := numericValue(row[spec.DataKey])
		bars[i] = Bar{
			Label: dayLabel(row[spec.XAxisKey]),
			Color: ColorAt(i),
			Value: value,
		}
	}
	return BarChart{Header: header, Bars: bars}
}

func interpretLine(header Header, spec model.ChartSpec) LineChart {
	points := make([]Point, len(spec.Data))
	for i, row := range spec.Data {
		value, _ := numericValue(row[spec.DataKey])
		anomaly := truthy(row[anomalyField])
		marker := StandardMarker
		if anomaly {
			marker = AnomalyMarker
		}
		points[i] = Point{
			Label:   monthLabel(row[spec.XAxisKey]),
			Marker:  marker,
			Value:   value,
			Anomaly: anomaly,
		}
	}
	return LineChart{Header: header, Points: points}
}
