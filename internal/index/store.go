package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"

	"codescope/internal/analyzer"
	"codescope/internal/lang"
)

// recordOverheadBytes approximates the per-record bookkeeping cost used by
// the cache size estimate.
const recordOverheadBytes = 512

// Store is the file record cache. Freshness is mtime based: a cached record
// is returned untouched when the file on disk is not newer than the record.
type Store struct {
	records map[string]*FileRecord
}

// NewStore creates an empty record store.
func NewStore() *Store {
	return &Store{records: make(map[string]*FileRecord)}
}

// Normalize returns the canonical cache key for a path: absolute and cleaned.
func Normalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// Get returns the record for path. A cached record is returned as-is when it
// is fresh and force is false; this costs one stat and no content read.
// Otherwise the file is read, hashed, and re-extracted, replacing any prior
// record. The returned bool reports whether a (re)parse happened, so the
// caller knows to re-derive the indices.
func (s *Store) Get(path string, force bool) (*FileRecord, bool, error) {
	key := Normalize(path)

	info, err := os.Stat(key)
	if err != nil {
		return nil, false, fmt.Errorf("stat %s: %w", key, err)
	}

	if !force {
		if rec, ok := s.records[key]; ok && !info.ModTime().After(rec.ModTime) {
			return rec, false, nil
		}
	}

	content, err := os.ReadFile(key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	tag := lang.Detect(key)
	text := string(content)
	lines := strings.Split(text, "\n")

	rec := &FileRecord{
		Path:     key,
		Language: tag,
		Hash:     fmt.Sprintf("%016x", xxhash.Sum64(content)),
		ModTime:  info.ModTime(),
		Size:     info.Size(),
		Content:  text,
		Lines:    lines,
		Facts:    analyzer.Extract(key, lines, tag),
	}
	s.records[key] = rec
	return rec, true, nil
}

// Lookup returns the cached record without any freshness check or I/O.
func (s *Store) Lookup(path string) (*FileRecord, bool) {
	rec, ok := s.records[Normalize(path)]
	return rec, ok
}

// Evict removes exactly one record.
func (s *Store) Evict(path string) {
	delete(s.records, Normalize(path))
}

// EvictAll clears the store.
func (s *Store) EvictAll() {
	s.records = make(map[string]*FileRecord)
}

// Len reports the number of cached records.
func (s *Store) Len() int {
	return len(s.records)
}

// ApproxSizeBytes estimates the memory held by cached content.
func (s *Store) ApproxSizeBytes() int64 {
	var total int64
	for _, rec := range s.records {
		total += int64(len(rec.Content)) + recordOverheadBytes
	}
	return total
}
