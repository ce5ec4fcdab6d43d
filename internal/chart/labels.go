package chart

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"Jan 2006",
	"January 2006",
}

// parseDate recognizes the calendar date shapes the backend emits. Only strings are dates.
func parseDate(v any) (time.Time, bool) {
	s, ok := v.(string)
	if !ok {
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dayLabel shows a date as month/day and anything else verbatim.
func dayLabel(v any) string {
	if t, ok := parseDate(v); ok {
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	}
	return labelString(v)
}

// monthLabel shows a date as abbreviated month and two-digit year and anything else verbatim.
func monthLabel(v any) string {
	if t, ok := parseDate(v); ok {
		return t.Format("Jan 06")
	}
	return labelString(v)
}
