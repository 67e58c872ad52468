package internal

import (
	"strings"
	"time"
)

// flexibleLayouts covers the textual date shapes the extractors encounter:
// ISO 8601 with and without zone, EXIF colons, compact runs, bare months and
// years. Ordered most specific first.
var flexibleLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006:01:02 15:04:05Z07:00",
	"2006:01:02 15:04:05",
	"2006/01/02 15:04:05",
	"20060102T150405Z0700",
	"20060102T150405",
	"20060102150405",
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"2006-01",
	"2006",
}

// parseFlexibleTime parses a permissive set of textual date formats. Values
// without a zone are assumed UTC; the result is always local.
func parseFlexibleTime(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range flexibleLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			continue
		}
		return t.Local(), true
	}
	return time.Time{}, false
}
