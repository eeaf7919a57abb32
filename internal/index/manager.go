package index

import (
	"sort"

	"go.uber.org/zap"

	"codescope/internal/analyzer"
)

// Stats summarizes what the cache currently holds.
type Stats struct {
	FilesAnalyzed      int   `json:"files_analyzed"`
	TotalSymbols       int   `json:"total_symbols"`
	TotalRelationships int   `json:"total_relationships"`
	CacheSizeBytes     int64 `json:"cache_size_bytes"`
}

// Manager is the public face of the structural cache. It sequences language
// detection, extraction, record storage, and derived-index maintenance, and
// answers the query API. Construct one per process and pass it by reference;
// there is no global instance.
//
// Manager assumes a single logical owner. Overlapping reparses of the same
// path are not synchronized: last writer wins, which wastes work but does
// not corrupt the indices.
type Manager struct {
	store *Store
	rels  *RelationshipIndex
	syms  *SymbolTable
	calls *CallGraph
	log   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger injects a logger; the default is a no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// NewManager creates a Manager with empty cache and indices.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		store: NewStore(),
		rels:  NewRelationshipIndex(),
		syms:  NewSymbolTable(),
		calls: NewCallGraph(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Analyze returns the structural record for path, reading and extracting
// only when the cached record is stale or force is set. Every (re)parse
// re-derives the file's contributions to all three indices; cache hits
// touch nothing. I/O failures are returned unmodified.
func (m *Manager) Analyze(path string, force bool) (*FileRecord, error) {
	rec, reparsed, err := m.store.Get(path, force)
	if err != nil {
		return nil, err
	}
	if reparsed {
		m.rels.Rebuild(rec.Path, rec.Facts)
		m.syms.Rebuild(rec.Path, rec.Facts)
		m.calls.Rebuild(rec.Path, rec.Facts)
		m.log.Debug("file analyzed",
			zap.String("path", rec.Path),
			zap.String("language", rec.Language),
			zap.String("hash", rec.Hash),
			zap.Int("classes", len(rec.Facts.Classes)),
			zap.Int("functions", len(rec.Facts.Functions)))
	}
	return rec, nil
}

// RelationshipsOf returns the edges the file contributed.
func (m *Manager) RelationshipsOf(path string) []Edge {
	return m.rels.EdgesFrom(Normalize(path))
}

// DependentsOf returns the analyzed files with any edge pointing at path.
func (m *Manager) DependentsOf(path string) []string {
	return m.rels.DependentsOf(Normalize(path))
}

// CallsTo returns every recorded call site whose callee contains sub.
func (m *Manager) CallsTo(sub string) []analyzer.CallSite {
	return m.calls.CallsTo(sub)
}

// CallsFrom returns the call sites attributed to className.methodName (or a
// top-level function when className is empty), searching every analyzed
// file for the declaration. See CallGraph.CallsFrom for the range rules.
func (m *Manager) CallsFrom(className, methodName string) []analyzer.CallSite {
	paths := make([]string, 0, len(m.store.records))
	for path := range m.store.records {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		rec := m.store.records[path]
		if sites, found := m.calls.CallsFrom(className, methodName, path, rec.Facts); found {
			return sites
		}
	}
	return nil
}

// AllSymbols returns a defensive copy of the symbol table.
func (m *Manager) AllSymbols() map[string]Entity {
	return m.syms.All()
}

// FindSymbol returns every symbol whose qualified key contains sub.
func (m *Manager) FindSymbol(sub string) []Symbol {
	return m.syms.FindByName(sub)
}

// Evict removes one file's record plus every derived entry keyed to it.
func (m *Manager) Evict(path string) {
	key := Normalize(path)
	m.store.Evict(key)
	m.rels.Evict(key)
	m.syms.Evict(key)
	m.calls.Evict(key)
	m.log.Debug("file evicted", zap.String("path", key))
}

// EvictAll clears the cache and every derived index.
func (m *Manager) EvictAll() {
	m.store.EvictAll()
	m.rels.EvictAll()
	m.syms.EvictAll()
	m.calls.EvictAll()
	m.log.Debug("cache cleared")
}

// Stats reports cache-wide counters.
func (m *Manager) Stats() Stats {
	return Stats{
		FilesAnalyzed:      m.store.Len(),
		TotalSymbols:       m.syms.Len(),
		TotalRelationships: m.rels.Total(),
		CacheSizeBytes:     m.store.ApproxSizeBytes(),
	}
}
