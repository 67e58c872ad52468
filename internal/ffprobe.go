package internal

import (
	"encoding/json"
	"os/exec"
	"time"
)

// Prober reads container-level tags from a media file. The production
// implementation shells out to ffprobe; tests substitute a stub.
type Prober interface {
	Probe(path string) (*ProbeTags, error)
}

// ProbeTags is the subset of ffprobe's JSON output the organizer cares about.
type ProbeTags struct {
	Format  ProbeSection   `json:"format"`
	Streams []ProbeSection `json:"streams"`
}

// ProbeSection holds the tag map of one container or stream entry.
type ProbeSection struct {
	Tags map[string]string `json:"tags"`
}

// probeDateKeys is the tag priority when scanning format and stream tags.
var probeDateKeys = []string{
	"creation_time",
	"com.apple.quicktime.creationdate",
	"date",
	"create_date",
	"creation_date",
}

// CreationTime scans the format tags first, then each stream's tags, and
// returns the first value the flexible parser accepts.
func (p *ProbeTags) CreationTime() (time.Time, bool) {
	if t, ok := scanTags(p.Format.Tags); ok {
		return t, true
	}
	for _, stream := range p.Streams {
		if t, ok := scanTags(stream.Tags); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

func scanTags(tags map[string]string) (time.Time, bool) {
	for _, key := range probeDateKeys {
		if raw, ok := tags[key]; ok {
			if t, ok := parseFlexibleTime(raw); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

type ffprobeProber struct{}

// Probe invokes the local ffprobe binary requesting JSON format and stream
// tags. Utility-not-found and non-zero exits are soft failures.
func (ffprobeProber) Probe(path string) (*ProbeTags, error) {
	cmd := exec.Command(
		"ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_entries", "format_tags:stream_tags",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	var tags ProbeTags
	if err := json.Unmarshal(out, &tags); err != nil {
		return nil, err
	}
	return &tags, nil
}
