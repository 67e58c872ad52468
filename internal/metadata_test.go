package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

type stubProber struct {
	tags *ProbeTags
	err  error
}

func (s stubProber) Probe(string) (*ProbeTags, error) {
	return s.tags, s.err
}

func TestExtractFallsBackToFilesystemTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.xyz")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	extractor := NewExtractor(false)
	defer extractor.Close()

	meta, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.CapturedAt.IsZero() {
		t.Error("captured_at must always be populated")
	}
	if meta.TimestampSource == SourceMetadata {
		t.Errorf("source = %v; file without embedded metadata must not claim metadata", meta.TimestampSource)
	}
	if meta.TimestampSource != SourceFileCreation && meta.TimestampSource != SourceFileModification {
		t.Errorf("source = %v, want a filesystem source", meta.TimestampSource)
	}
	if meta.Type != MediaTypeOther || meta.Category != CategoryOther {
		t.Errorf("type/category = %v/%v, want other/other", meta.Type, meta.Category)
	}
	if meta.OriginalName != "archive.xyz" {
		t.Errorf("original name = %q", meta.OriginalName)
	}
}

func TestExtractCorruptAudioDegradesToFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "track.mp3")
	if err := os.WriteFile(path, []byte("not real mpeg audio"), 0644); err != nil {
		t.Fatal(err)
	}

	extractor := NewExtractor(false)
	defer extractor.Close()

	meta, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.Category != CategoryMusic {
		t.Errorf("category = %v, want music", meta.Category)
	}
	if meta.HasReliableTimestamp() && meta.TimestampSource != SourceFileCreation {
		t.Errorf("corrupt audio produced reliable source %v", meta.TimestampSource)
	}
}

func TestExtractUsesFilenameDateBeforeFilesystem(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "IMG_20240102_030405.bin")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	extractor := NewExtractor(false)
	defer extractor.Close()

	meta, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.TimestampSource != SourceMetadata {
		t.Fatalf("source = %v, want metadata from filename", meta.TimestampSource)
	}
	want := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !meta.CapturedAt.UTC().Equal(want) {
		t.Errorf("captured_at = %v, want %v", meta.CapturedAt.UTC(), want)
	}
	if !meta.HasReliableTimestamp() {
		t.Error("filename-derived dates are reliable")
	}
}

func TestExtractVideoThroughProber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	extractor := &Extractor{prober: stubProber{tags: &ProbeTags{
		Format: ProbeSection{Tags: map[string]string{"creation_time": "2023-09-10T16:15:34Z"}},
	}}}

	meta, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.TimestampSource != SourceMetadata {
		t.Fatalf("source = %v, want metadata", meta.TimestampSource)
	}
	want := time.Date(2023, 9, 10, 16, 15, 34, 0, time.UTC)
	if !meta.CapturedAt.UTC().Equal(want) {
		t.Errorf("captured_at = %v, want %v", meta.CapturedAt.UTC(), want)
	}
}

func TestExtractVideoProberFailureIsSoft(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mkv")
	if err := os.WriteFile(path, []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	extractor := &Extractor{prober: stubProber{err: errors.New("ffprobe: executable file not found")}}

	meta, err := extractor.Extract(path)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if meta.TimestampSource == SourceMetadata {
		t.Errorf("prober failure must not yield a metadata source")
	}
	if meta.CapturedAt.IsZero() {
		t.Error("captured_at must still be populated from the filesystem")
	}
}

func TestExtractMissingFileSurfacesError(t *testing.T) {
	extractor := NewExtractor(false)
	defer extractor.Close()

	if _, err := extractor.Extract(filepath.Join(t.TempDir(), "gone.xyz")); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}

func TestHasReliableTimestamp(t *testing.T) {
	cases := []struct {
		source TimestampSource
		want   bool
	}{
		{SourceMetadata, true},
		{SourceFileCreation, true},
		{SourceFileModification, false},
		{SourceUnknown, false},
	}
	for _, tc := range cases {
		meta := &MediaMetadata{TimestampSource: tc.source}
		if got := meta.HasReliableTimestamp(); got != tc.want {
			t.Errorf("HasReliableTimestamp(%v) = %v, want %v", tc.source, got, tc.want)
		}
	}
}

func TestMetadataStemAndSuffix(t *testing.T) {
	meta := &MediaMetadata{SourcePath: "/tmp/dir/Photo One.JPG"}
	if got := meta.Stem(); got != "Photo One" {
		t.Errorf("Stem() = %q", got)
	}
	if got := meta.Suffix(); got != ".jpg" {
		t.Errorf("Suffix() = %q", got)
	}
}

func TestNormalizeTagValue(t *testing.T) {
	cases := []struct {
		in   interface{}
		want string
	}{
		{"2004", "2004"},
		{[]byte("2004-06-01"), "2004-06-01"},
		{[]string{"2004", "2005"}, "2004"},
		{[]string{}, ""},
		{42, ""},
		{nil, ""},
	}
	for _, tc := range cases {
		if got := normalizeTagValue(tc.in); got != tc.want {
			t.Errorf("normalizeTagValue(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
