// Package index maintains the structural cache: one record per analyzed
// file plus the derived relationship, symbol, and call-graph indices. The
// package assumes a single logical owner; nothing here is synchronized.
package index

import (
	"time"

	"codescope/internal/analyzer"
)

// FileRecord is the cached analysis of one file, keyed by normalized path.
// A record is fresh as long as the file's modification time on disk is not
// newer than ModTime; anything newer triggers a full reparse and a full
// re-derivation of the file's contributions to every index.
type FileRecord struct {
	Path     string         `json:"path"`
	Language string         `json:"language"`
	Hash     string         `json:"hash"`
	ModTime  time.Time      `json:"mod_time"`
	Size     int64          `json:"size"`
	Content  string         `json:"-"`
	Lines    []string       `json:"-"`
	Facts    analyzer.Facts `json:"facts"`
}
