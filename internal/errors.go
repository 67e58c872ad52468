package internal

import (
	"fmt"
	"strings"
)

// ErrorCategory buckets per-file failures for the report and run log.
type ErrorCategory string

const (
	ErrorCategoryIO       ErrorCategory = "io_error"       // permissions, disk space, vanished files
	ErrorCategoryTemplate ErrorCategory = "template_error" // placeholder validation
	ErrorCategoryUnknown  ErrorCategory = "unknown_error"
)

// classifyError buckets an error by its message, the same way the underlying
// syscall errors surface cross-platform.
func classifyError(err error) ErrorCategory {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "no space left"),
		strings.Contains(msg, "read-only file system"),
		strings.Contains(msg, "cross-device"),
		strings.Contains(msg, "no such file"),
		strings.Contains(msg, "too many open files"):
		return ErrorCategoryIO
	case strings.Contains(msg, "placeholder"):
		return ErrorCategoryTemplate
	default:
		return ErrorCategoryUnknown
	}
}

// describe renders the failure message recorded on a FileResult.
func (c ErrorCategory) describe(err error) string {
	return fmt.Sprintf("[%s] %v", c, err)
}
