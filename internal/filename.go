package internal

import (
	"regexp"
	"time"
)

// filenamePatterns are tried in order; first parseable match wins. The layout
// string uses Go's reference time.
var filenamePatterns = []struct {
	regex  *regexp.Regexp
	layout string
}{
	// Full second-resolution run: AirBrush_20210823224920_1.jpg
	{regexp.MustCompile(`(20\d{12})`), "20060102150405"},
	// Separated timestamp: IMG_20250619_123456.jpg, 20221024-202545-730.mp4
	{regexp.MustCompile(`(\d{8})[_-](\d{6})`), "20060102150405"},
	// ISO date: 2025-06-19_photo.jpg
	{regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`), "2006-01-02"},
	// Compact date, last resort: 20250619_photo.jpg
	{regexp.MustCompile(`(20\d{6})`), "20060102"},
}

// timestampFromFilename infers a capture date from date-bearing filename
// conventions (cameras, phones, messaging exports). Values carry no zone and
// are treated as UTC like every other embedded date.
func timestampFromFilename(name string) (time.Time, bool) {
	for _, p := range filenamePatterns {
		matches := p.regex.FindStringSubmatch(name)
		if matches == nil {
			continue
		}
		digits := matches[1]
		if len(matches) > 2 {
			digits += matches[2]
		}
		t, err := time.Parse(p.layout, digits)
		if err != nil {
			continue
		}
		return t.Local(), true
	}
	return time.Time{}, false
}
