package index

import (
	"sort"

	"codescope/internal/analyzer"
)

// Relationship edge kinds.
const (
	EdgeImport     = "import"
	EdgeExtends    = "extends"
	EdgeImplements = "implements"
	EdgeUses       = "uses"
	EdgeCalls      = "calls"
)

// Edge is a directed relationship produced by one file's analysis. From is
// either the file path or a `path:EntityName` composite key.
type Edge struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

// RelationshipIndex holds the edges each analyzed file contributed, keyed by
// the owning file. Re-deriving a file replaces its edge list wholesale, so
// no stale edges survive a reparse.
type RelationshipIndex struct {
	byFile map[string][]Edge
}

// NewRelationshipIndex creates an empty index.
func NewRelationshipIndex() *RelationshipIndex {
	return &RelationshipIndex{byFile: make(map[string][]Edge)}
}

// Rebuild recomputes the edges owned by path from its structural facts.
func (x *RelationshipIndex) Rebuild(path string, facts analyzer.Facts) {
	var edges []Edge
	for _, dep := range facts.Dependencies {
		edges = append(edges, Edge{From: path, To: dep, Kind: EdgeImport})
	}
	for _, cls := range facts.Classes {
		if cls.Extends != "" {
			edges = append(edges, Edge{From: path + ":" + cls.Name, To: cls.Extends, Kind: EdgeExtends})
		}
		for _, iface := range cls.Implements {
			edges = append(edges, Edge{From: path + ":" + cls.Name, To: iface, Kind: EdgeImplements})
		}
	}
	x.byFile[path] = edges
}

// EdgesFrom returns a copy of the edges owned by path.
func (x *RelationshipIndex) EdgesFrom(path string) []Edge {
	edges := x.byFile[path]
	if len(edges) == 0 {
		return nil
	}
	out := make([]Edge, len(edges))
	copy(out, edges)
	return out
}

// DependentsOf returns the owning files that have any edge pointing at
// target, deduplicated and sorted. This scans every file's edge list; edge
// volume is expected to be small, so no reverse index is maintained.
func (x *RelationshipIndex) DependentsOf(target string) []string {
	seen := make(map[string]bool)
	for owner, edges := range x.byFile {
		for _, e := range edges {
			if e.To == target {
				seen[owner] = true
				break
			}
		}
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for owner := range seen {
		out = append(out, owner)
	}
	sort.Strings(out)
	return out
}

// Evict drops the edges owned by path.
func (x *RelationshipIndex) Evict(path string) {
	delete(x.byFile, path)
}

// EvictAll drops everything.
func (x *RelationshipIndex) EvictAll() {
	x.byFile = make(map[string][]Edge)
}

// Total counts all edges across all files.
func (x *RelationshipIndex) Total() int {
	n := 0
	for _, edges := range x.byFile {
		n += len(edges)
	}
	return n
}
