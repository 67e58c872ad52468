package internal

import (
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

var registerParsersOnce sync.Once

// InitImageSupport registers the maker-note parsers for vendor EXIF blocks.
// Call it once before extracting; safe to call repeatedly.
func InitImageSupport() {
	registerParsersOnce.Do(func() {
		exif.RegisterParsers(mknote.All...)
	})
}

// exifDateFields is the tag priority for the capture instant.
var exifDateFields = []exif.FieldName{
	exif.DateTimeOriginal,
	exif.DateTimeDigitized,
	exif.DateTime,
}

// extractExifTimestamp reads the embedded EXIF block of an image. EXIF dates
// carry no zone; they are treated as UTC and converted to local time.
func extractExifTimestamp(path string) (time.Time, string, string, TimestampSource) {
	f, err := os.Open(path)
	if err != nil {
		return time.Time{}, "", "", SourceUnknown
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return time.Time{}, "", "", SourceUnknown
	}

	make := exifString(x, exif.Make)
	model := exifString(x, exif.Model)

	for _, field := range exifDateFields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		raw, err := tag.StringVal()
		if err != nil {
			continue
		}
		t, err := time.Parse("2006:01:02 15:04:05", strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		return t.UTC().Local(), make, model, SourceMetadata
	}
	return time.Time{}, make, model, SourceUnknown
}

func exifString(x *exif.Exif, field exif.FieldName) string {
	tag, err := x.Get(field)
	if err != nil {
		return ""
	}
	val, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(val)
}
