// Package walker discovers analyzable source files under a project root.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/iter"

	"codescope/internal/lang"
)

// prunedDirs are never descended into regardless of exclude patterns.
var prunedDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
}

// Options control project discovery.
type Options struct {
	// Exclude holds doublestar glob patterns matched against the
	// slash-separated path relative to the root.
	Exclude []string
	// MaxFileSize skips files larger than this many bytes. Zero means
	// no limit.
	MaxFileSize int64
}

// Walk returns the sorted absolute paths of all source files in a
// recognized language under root, honoring the exclude patterns and the
// size limit.
func Walk(root string, opts Options) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", root, err)
	}

	var candidates []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != absRoot && prunedDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if lang.Detect(path) == lang.Unknown {
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		if excluded(filepath.ToSlash(rel), opts.Exclude) {
			return nil
		}
		candidates = append(candidates, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", absRoot, err)
	}

	// Stat the candidates concurrently for the size filter.
	keep := iter.Map(candidates, func(p *string) string {
		info, err := os.Stat(*p)
		if err != nil {
			return ""
		}
		if opts.MaxFileSize > 0 && info.Size() > opts.MaxFileSize {
			return ""
		}
		return *p
	})

	var files []string
	for _, p := range keep {
		if p != "" {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
