package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ScanOptions controls the directory walk feeding the organizer.
type ScanOptions struct {
	Recursive      bool
	FollowSymlinks bool
	IncludeExt     map[string]bool
	ExcludeExt     map[string]bool
}

// ScanMediaFiles walks the source and returns candidate file paths in walk
// order. A missing source is the one fatal error of a run; there is nothing
// to iterate.
func ScanMediaFiles(source string, opts ScanOptions) ([]string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source directory does not exist: %s", source)
	}
	if !info.IsDir() {
		return []string{source}, nil
	}

	var files []string
	err = filepath.Walk(source, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if !opts.Recursive && path != source {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode()&os.ModeSymlink != 0 && !opts.FollowSymlinks {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(info.Name()))
		if len(opts.IncludeExt) > 0 && !opts.IncludeExt[ext] {
			return nil
		}
		if opts.ExcludeExt[ext] {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning files: %w", err)
	}
	return files, nil
}

// normalizeExtensions lowercases extensions and ensures a leading dot.
func normalizeExtensions(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}
