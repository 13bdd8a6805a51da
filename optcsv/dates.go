package optcsv

import (
	"fmt"
	"strings"
	"time"
)

// Layouts tried in order. Forms without an explicit offset are taken as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp reads one timestamp cell. Date-only values mean midnight,
// lowercase separators are accepted, and the result is always normalized
// to UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
