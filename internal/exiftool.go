package internal

import (
	"strings"
	"time"

	exiftool "github.com/barasher/go-exiftool"
)

// exiftoolBackend reads image metadata through the exiftool binary. It covers
// RAW and HEIC variants the in-process EXIF decoder cannot parse. A missing
// binary just disables the backend; extraction falls through to goexif.
type exiftoolBackend struct {
	et *exiftool.Exiftool
}

func newExiftoolBackend() *exiftoolBackend {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return &exiftoolBackend{}
	}
	return &exiftoolBackend{et: et}
}

func (b *exiftoolBackend) close() {
	if b.et != nil {
		b.et.Close()
	}
}

var exiftoolDateKeys = []string{"DateTimeOriginal", "CreateDate", "ModifyDate"}

func (b *exiftoolBackend) read(path string) (time.Time, string, string, bool) {
	if b.et == nil {
		return time.Time{}, "", "", false
	}
	metas := b.et.ExtractMetadata(path)
	if len(metas) == 0 || metas[0].Err != nil {
		return time.Time{}, "", "", false
	}
	meta := metas[0]

	make, _ := meta.GetString("Make")
	model, _ := meta.GetString("Model")
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)

	for _, key := range exiftoolDateKeys {
		raw, err := meta.GetString(key)
		if err != nil {
			continue
		}
		if t, ok := parseFlexibleTime(raw); ok {
			return t, make, model, true
		}
	}
	return time.Time{}, "", "", false
}
