package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampSource records where a captured-at value came from, most
// trustworthy first.
type TimestampSource string

const (
	SourceMetadata         TimestampSource = "metadata"
	SourceFileCreation     TimestampSource = "file_creation"
	SourceFileModification TimestampSource = "file_modification"
	SourceUnknown          TimestampSource = "unknown"
)

// MediaMetadata is the immutable per-file record produced by extraction.
// CapturedAt is always populated; the filesystem timestamp is the guaranteed
// fallback when no embedded metadata yields a date.
type MediaMetadata struct {
	SourcePath      string
	Type            MediaType
	Category        MediaCategory
	CapturedAt      time.Time
	CameraMake      string
	CameraModel     string
	OriginalName    string
	TimestampSource TimestampSource
}

// Stem returns the filename without its extension.
func (m *MediaMetadata) Stem() string {
	name := filepath.Base(m.SourcePath)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Suffix returns the lowercased extension including the dot.
func (m *MediaMetadata) Suffix() string {
	return strings.ToLower(filepath.Ext(m.SourcePath))
}

// HasReliableTimestamp reports whether the captured-at instant can be trusted
// for date-based routing.
func (m *MediaMetadata) HasReliableTimestamp() bool {
	return m.TimestampSource == SourceMetadata || m.TimestampSource == SourceFileCreation
}

// Extractor resolves metadata for individual files. The video prober and the
// optional exiftool backend are injectable so tests never spawn processes.
type Extractor struct {
	prober   Prober
	exiftool *exiftoolBackend
}

// NewExtractor builds an extractor using the local ffprobe binary for video
// containers. When useExiftool is set, image metadata is read through the
// exiftool binary instead of the in-process EXIF decoder.
func NewExtractor(useExiftool bool) *Extractor {
	e := &Extractor{prober: &ffprobeProber{}}
	if useExiftool {
		e.exiftool = newExiftoolBackend()
	}
	return e
}

// Close releases the exiftool process, if one was started.
func (e *Extractor) Close() {
	if e.exiftool != nil {
		e.exiftool.close()
	}
}

// Extract builds the metadata record for one file. Per-format read failures
// degrade to the filesystem timestamp; the only error surfaced is a failing
// stat on the path itself.
func (e *Extractor) Extract(path string) (*MediaMetadata, error) {
	mediaType := DetectMediaType(path)

	var capturedAt time.Time
	var make, model string
	source := SourceUnknown

	switch mediaType {
	case MediaTypeImage:
		capturedAt, make, model, source = e.extractImage(path)
	case MediaTypeVideo:
		capturedAt, source = e.extractVideo(path)
	case MediaTypeAudio:
		capturedAt, source = extractAudioTimestamp(path)
	case MediaTypeDocument:
		capturedAt, source = extractDocumentTimestamp(path)
	}

	if capturedAt.IsZero() {
		if t, ok := timestampFromFilename(filepath.Base(path)); ok {
			capturedAt, source = t, SourceMetadata
		}
	}

	if capturedAt.IsZero() {
		t, s, err := filesystemTimestamp(path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}
		capturedAt, source = t, s
	}

	return &MediaMetadata{
		SourcePath:      path,
		Type:            mediaType,
		Category:        ResolveCategory(mediaType),
		CapturedAt:      capturedAt,
		CameraMake:      make,
		CameraModel:     model,
		OriginalName:    filepath.Base(path),
		TimestampSource: source,
	}, nil
}

func (e *Extractor) extractImage(path string) (time.Time, string, string, TimestampSource) {
	if e.exiftool != nil {
		if t, make, model, ok := e.exiftool.read(path); ok {
			return t, make, model, SourceMetadata
		}
	}
	return extractExifTimestamp(path)
}

func (e *Extractor) extractVideo(path string) (time.Time, TimestampSource) {
	tags, err := e.prober.Probe(path)
	if err != nil || tags == nil {
		return time.Time{}, SourceUnknown
	}
	if t, ok := tags.CreationTime(); ok {
		return t, SourceMetadata
	}
	return time.Time{}, SourceUnknown
}

// filesystemTimestamp is the terminal fallback: birth time where the platform
// exposes it, otherwise modification time (or change time when mtime is zero).
func filesystemTimestamp(path string) (time.Time, TimestampSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, SourceUnknown, err
	}
	if bt := birthTime(info); !bt.IsZero() {
		return bt.Local(), SourceFileCreation, nil
	}
	mt := info.ModTime()
	if mt.IsZero() {
		if ct := changeTime(info); !ct.IsZero() {
			mt = ct
		}
	}
	return mt.Local(), SourceFileModification, nil
}
