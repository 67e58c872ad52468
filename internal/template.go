package internal

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// Month name tables are 1-indexed; index 0 is unused.
var monthNames = []string{
	"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var monthNamesShort = []string{
	"", "ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// DefaultTemplates maps profile names to their template strings.
var DefaultTemplates = map[string]string{
	"default":               "{year}/{month:02d}",
	"year_month_day":        "{year}/{month:02d}/{day:02d}",
	"camera":                "{camera_make}/{camera_model}/{year}/{month:02d}",
	"year_month_name":       "{year}/{month_name}",
	"year_month_name_short": "{year}/{month_name_short}",
	"category":              "{category}/{year}/{month:02d}",
}

var placeholderRe = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(:[^}]*)?\}`)

// paddedIntSpec matches the supported format specifiers, e.g. ":02d".
var paddedIntSpec = regexp.MustCompile(`^:(0?)(\d+)d$`)

var slugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// ValidateTemplate checks that every placeholder in the template is either a
// recognized field or one of the extra keys. It reports all unknown names at
// once, deduplicated and sorted.
func ValidateTemplate(template string, extra map[string]string) error {
	allowed := map[string]bool{
		"year": true, "month": true, "day": true,
		"hour": true, "minute": true, "second": true,
		"stem": true, "ext": true,
		"camera_make": true, "camera_model": true,
		"category": true, "month_name": true, "month_name_short": true,
	}
	for key := range extra {
		allowed[key] = true
	}

	seen := map[string]bool{}
	var unknown []string
	for _, match := range placeholderRe.FindAllStringSubmatch(template, -1) {
		name := match[1]
		if !allowed[name] && !seen[name] {
			seen[name] = true
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("template contains unknown placeholders: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// RenderTemplate expands the template against the metadata and extra fields
// and returns the result as a relative directory path. Extra keys extend the
// allowed set but never shadow the built-in fields.
func RenderTemplate(meta *MediaMetadata, template string, extra map[string]string) (string, error) {
	if err := ValidateTemplate(template, extra); err != nil {
		return "", err
	}

	dt := meta.CapturedAt
	ints := map[string]int{
		"year":   dt.Year(),
		"month":  int(dt.Month()),
		"day":    dt.Day(),
		"hour":   dt.Hour(),
		"minute": dt.Minute(),
		"second": dt.Second(),
	}
	strs := map[string]string{
		"stem":             meta.Stem(),
		"ext":              strings.TrimPrefix(meta.Suffix(), "."),
		"camera_make":      slugOrUnknown(meta.CameraMake),
		"camera_model":     slugOrUnknown(meta.CameraModel),
		"category":         meta.Category.FolderName(),
		"month_name":       monthNames[dt.Month()],
		"month_name_short": monthNamesShort[dt.Month()],
	}
	for key, value := range extra {
		if _, isInt := ints[key]; isInt {
			continue
		}
		if _, isStr := strs[key]; isStr {
			continue
		}
		strs[key] = value
	}

	rendered := placeholderRe.ReplaceAllStringFunc(template, func(m string) string {
		parts := placeholderRe.FindStringSubmatch(m)
		name, spec := parts[1], parts[2]
		if n, ok := ints[name]; ok {
			return formatInt(n, spec)
		}
		return strs[name]
	})
	return filepath.FromSlash(rendered), nil
}

// formatInt applies a ":0Nd" width specifier; anything else renders the bare
// value.
func formatInt(n int, spec string) string {
	if m := paddedIntSpec.FindStringSubmatch(spec); m != nil {
		return fmt.Sprintf("%"+m[1]+m[2]+"d", n)
	}
	return fmt.Sprintf("%d", n)
}

// slugOrUnknown lowercases the value and collapses non-alphanumeric runs to
// single hyphens; absent values render as "unknown".
func slugOrUnknown(value string) string {
	s := strings.ToLower(strings.TrimSpace(value))
	s = slugRuns.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unknown"
	}
	return s
}
