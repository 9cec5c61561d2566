package game

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// DefaultLocation is the timezone assumed for timestamps that carry no
// offset. Most games kick off in US Eastern time.
var DefaultLocation = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(fmt.Sprintf("loading timezone %s: %v", name, err))
	}
	return loc
}

// zoned layouts carry an offset; time.Parse accepts fractional seconds in
// the input even when the layout omits them.
var zonedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
}

// naive layouts are interpreted in DefaultLocation.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseStartDate parses an upstream ISO-8601 kickoff timestamp.
// Supports "2025-08-30T16:00:00.000Z", "2025-08-30T12:00:00-04:00",
// "2025-08-30T19:30" and "2025-08-30".
func ParseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, DefaultLocation); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
