package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// ReportWriter emits one JSON line per run event so other tooling can consume
// the outcome of a run without scraping console output.
type ReportWriter struct {
	f *os.File
}

type reportEvent struct {
	Event string `json:"event"`
	Ts    string `json:"ts"`

	Src      string `json:"src,omitempty"`
	Dest     string `json:"dest,omitempty"`
	Status   string `json:"status,omitempty"`
	Category string `json:"category,omitempty"`
	Size     int64  `json:"size,omitempty"`
	Message  string `json:"message,omitempty"`

	Source      string `json:"source,omitempty"`
	Destination string `json:"destination,omitempty"`
	TotalFiles  int    `json:"total_files,omitempty"`

	Counts map[string]int `json:"counts,omitempty"`
}

func NewReportWriter(path string) (*ReportWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}
	return &ReportWriter{f: f}, nil
}

func (w *ReportWriter) LogRunStart(source, destination string, totalFiles int) error {
	return w.writeEvent(reportEvent{
		Event:       "run_start",
		Ts:          time.Now().UTC().Format(time.RFC3339),
		Source:      source,
		Destination: destination,
		TotalFiles:  totalFiles,
	})
}

func (w *ReportWriter) LogResult(result FileResult) error {
	event := reportEvent{
		Event:   "result",
		Ts:      time.Now().UTC().Format(time.RFC3339),
		Src:     result.Source,
		Dest:    result.Destination,
		Status:  result.Status,
		Size:    result.Size,
		Message: result.Message,
	}
	if result.Category != "" {
		event.Category = string(result.Category)
	}
	return w.writeEvent(event)
}

func (w *ReportWriter) LogRunEnd(summary *OrganizeSummary) error {
	return w.writeEvent(reportEvent{
		Event:      "run_end",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		TotalFiles: summary.Total(),
		Counts:     summary.StatusCounts(),
	})
}

func (w *ReportWriter) Close() error {
	return w.f.Close()
}

func (w *ReportWriter) writeEvent(event reportEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := w.f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to report: %w", err)
	}
	return w.f.Sync()
}
