package internal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Action is the filesystem operation applied to each organized file.
type Action string

const (
	ActionMove Action = "move"
	ActionCopy Action = "copy"
	ActionLink Action = "link"
)

// ParseAction validates a user-supplied action name.
func ParseAction(value string) (Action, error) {
	switch Action(strings.ToLower(value)) {
	case ActionMove:
		return ActionMove, nil
	case ActionCopy:
		return ActionCopy, nil
	case ActionLink:
		return ActionLink, nil
	default:
		return "", fmt.Errorf("unknown action %q (expected move, copy or link)", value)
	}
}

// Status values for per-file outcomes.
const (
	StatusMoved   = "moved"
	StatusCopied  = "copied"
	StatusLinked  = "linked"
	StatusDryRun  = "dry-run"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// FileResult records the outcome for a single processed file.
type FileResult struct {
	Source      string
	Destination string
	Status      string
	Message     string
	Category    MediaCategory
	Size        int64
}

// OrganizeSummary accumulates results over one run, in processing order.
type OrganizeSummary struct {
	Results []FileResult
}

func (s *OrganizeSummary) Add(result FileResult) {
	s.Results = append(s.Results, result)
}

func (s *OrganizeSummary) Total() int {
	return len(s.Results)
}

// Count returns the number of results with the given status.
func (s *OrganizeSummary) Count(status string) int {
	n := 0
	for _, r := range s.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// StatusCounts returns result counts keyed by status.
func (s *OrganizeSummary) StatusCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range s.Results {
		counts[r.Status]++
	}
	return counts
}

// CategoryCounts returns result counts keyed by category label.
func (s *OrganizeSummary) CategoryCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range s.Results {
		if r.Category != "" {
			counts[r.Category.Label()]++
		}
	}
	return counts
}

// TotalBytes sums the sizes of all processed files.
func (s *OrganizeSummary) TotalBytes() int64 {
	var total int64
	for _, r := range s.Results {
		total += r.Size
	}
	return total
}

// Organizer routes files into the destination tree one at a time. A file's
// failure never aborts the batch; it is recorded as a failed result.
type Organizer struct {
	cfg       *Config
	template  string
	extract   func(string) (*MediaMetadata, error)
	extractor *Extractor
	log       *Logger
	report    *ReportWriter
}

// NewOrganizer resolves and validates the template once, before any file is
// touched, so a broken template fails the run instead of every file.
func NewOrganizer(cfg *Config, profiles map[string]TemplateProfile, logger *Logger) (*Organizer, error) {
	template := cfg.ResolveTemplate(profiles)
	if err := ValidateTemplate(template, cfg.Extra); err != nil {
		return nil, err
	}
	extractor := NewExtractor(cfg.UseExifTool)
	return &Organizer{
		cfg:       cfg,
		template:  template,
		extract:   extractor.Extract,
		extractor: extractor,
		log:       logger,
	}, nil
}

// SetReport attaches a JSONL report writer for the run.
func (o *Organizer) SetReport(report *ReportWriter) {
	o.report = report
}

// Close releases extractor resources.
func (o *Organizer) Close() {
	if o.extractor != nil {
		o.extractor.Close()
	}
}

// Organize processes the files sequentially and returns the run summary.
func (o *Organizer) Organize(files []string) *OrganizeSummary {
	summary := &OrganizeSummary{}
	if o.report != nil {
		o.report.LogRunStart(o.cfg.Source, o.cfg.Destination, len(files))
	}
	for _, path := range files {
		result := o.processFile(path)
		summary.Add(result)
		if o.report != nil {
			o.report.LogResult(result)
		}
	}
	if o.report != nil {
		o.report.LogRunEnd(summary)
	}
	return summary
}

func (o *Organizer) processFile(path string) FileResult {
	meta, err := o.extract(path)
	if err != nil {
		o.log.Logf("error: %s: %v", path, err)
		return FileResult{
			Source:      path,
			Destination: path,
			Status:      StatusFailed,
			Message:     classifyError(err).describe(err),
		}
	}

	destination, err := o.resolveDestination(meta)
	if err != nil {
		o.log.Logf("error: %s: %v", path, err)
		return FileResult{
			Source:      path,
			Destination: path,
			Status:      StatusFailed,
			Message:     classifyError(err).describe(err),
			Category:    meta.Category,
		}
	}

	return o.applyAction(meta, destination)
}

// resolveDestination renders the directory for the file and picks a
// non-colliding filename inside it. Files without a reliable timestamp are
// bucketed under <category>/unknown_date instead of a misleading date path.
func (o *Organizer) resolveDestination(meta *MediaMetadata) (string, error) {
	var relative string
	if meta.HasReliableTimestamp() {
		rendered, err := RenderTemplate(meta, o.template, o.cfg.Extra)
		if err != nil {
			return "", err
		}
		relative = rendered
	} else {
		relative = filepath.Join(meta.Category.FolderName(), "unknown_date")
		o.log.Debugf("no reliable capture date for %s; routing to %s", meta.SourcePath, relative)
	}

	dir := filepath.Join(o.cfg.Destination, relative)
	if !o.cfg.DryRun {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return ResolveCollision(dir, meta.OriginalName), nil
}

// ResolveCollision returns dir/filename if free, otherwise probes
// dir/stem_n.ext for n = 1, 2, ... until an unused path is found. The
// check-then-create window is accepted; runs are single-process. Any stat
// failure (missing, unreadable, over-long name) ends the probe at that
// candidate; the action surfaces the real error.
func ResolveCollision(dir, filename string) string {
	candidate := filepath.Join(dir, filename)
	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for n := 1; ; n++ {
		if _, err := os.Stat(candidate); err != nil {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stem, n, ext))
	}
}

func (o *Organizer) applyAction(meta *MediaMetadata, destination string) FileResult {
	result := FileResult{
		Source:      meta.SourcePath,
		Destination: destination,
		Category:    meta.Category,
	}
	if info, err := os.Stat(meta.SourcePath); err == nil {
		result.Size = info.Size()
	}

	if o.cfg.DryRun {
		result.Status = StatusDryRun
		result.Message = "dry-run: no filesystem changes"
		o.log.Logf("[dry-run] %s -> %s", meta.SourcePath, destination)
		return result
	}

	var err error
	switch o.cfg.Action {
	case ActionMove:
		err = moveFile(meta.SourcePath, destination)
		result.Status = StatusMoved
	case ActionCopy:
		err = copyFilePreserving(meta.SourcePath, destination)
		result.Status = StatusCopied
	case ActionLink:
		err = linkFile(meta.SourcePath, destination)
		result.Status = StatusLinked
	default:
		err = fmt.Errorf("unknown action %q", o.cfg.Action)
	}

	if err != nil {
		result.Status = StatusFailed
		result.Message = classifyError(err).describe(err)
		o.log.Logf("error: %s: %v", meta.SourcePath, err)
		return result
	}

	o.log.Logf("%s -> %s (%s)", meta.SourcePath, destination, result.Status)
	return result
}

// moveFile renames when possible and falls back to copy-and-remove across
// filesystems.
func moveFile(src, dest string) error {
	err := os.Rename(src, dest)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}
	if err := copyFilePreserving(src, dest); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFilePreserving copies through a temp file carrying the source's
// permissions and timestamps; the rename into place is the final step, so a
// failure never leaves a partial destination behind.
func copyFilePreserving(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, info.Mode()); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chtimes(tmp, info.ModTime(), info.ModTime()); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// linkFile prefers a symbolic link and falls back to a hard link on
// platforms or filesystems that refuse symlinks.
func linkFile(src, dest string) error {
	if err := os.Symlink(src, dest); err == nil {
		return nil
	}
	return os.Link(src, dest)
}
