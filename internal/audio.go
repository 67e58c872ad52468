package internal

import (
	"fmt"
	"os"
	"time"

	"github.com/dhowden/tag"
)

// audioDateKeys is the frame/field priority across ID3v2.4, ID3v2.3, Vorbis
// and MP4 tag containers.
var audioDateKeys = []string{
	"TDRC", "TDOR", "TORY", "TDRL",
	"DATE", "Year", "YEAR", "year",
	"TYER", "\xa9day",
}

// extractAudioTimestamp scans the file's tag container for a release or
// recording date. Tag read failures degrade to unknown.
func extractAudioTimestamp(path string) (time.Time, TimestampSource) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, SourceUnknown
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return time.Time{}, SourceUnknown
	}

	raw := m.Raw()
	for _, key := range audioDateKeys {
		value, ok := raw[key]
		if !ok {
			continue
		}
		text := normalizeTagValue(value)
		if text == "" {
			continue
		}
		if t, ok := parseFlexibleTime(text); ok {
			return t, SourceMetadata
		}
	}

	// Some containers only expose a bare year through the typed accessor.
	if year := m.Year(); year > 0 {
		return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Local(), SourceMetadata
	}
	return time.Time{}, SourceUnknown
}

// normalizeTagValue flattens the value shapes tag containers produce: plain
// strings, byte strings, string slices and frame objects carrying text.
func normalizeTagValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	case *tag.Comm:
		return v.Text
	case fmt.Stringer:
		return v.String()
	default:
		return ""
	}
}
