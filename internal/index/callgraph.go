package index

import (
	"sort"
	"strings"

	"codescope/internal/analyzer"
)

// CallGraph holds the naive call sites each file produced. Re-derivation
// replaces a file's list wholesale.
type CallGraph struct {
	byFile map[string][]analyzer.CallSite
}

// NewCallGraph creates an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{byFile: make(map[string][]analyzer.CallSite)}
}

// Rebuild replaces the call sites owned by path.
func (g *CallGraph) Rebuild(path string, facts analyzer.Facts) {
	g.byFile[path] = facts.Calls
}

// CallsTo returns every call site whose callee contains sub, across all
// analyzed files, in path order.
func (g *CallGraph) CallsTo(sub string) []analyzer.CallSite {
	paths := make([]string, 0, len(g.byFile))
	for path := range g.byFile {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var out []analyzer.CallSite
	for _, path := range paths {
		for _, c := range g.byFile[path] {
			if strings.Contains(c.To, sub) {
				out = append(out, c)
			}
		}
	}
	return out
}

// CallsFrom attributes the file's call sites to the named method (or, with
// an empty class name, the named top-level function) and returns the sites
// inside its declaration range, with From rewritten to Class::method or the
// bare function name.
//
// The range is an approximation: the lower bound is the entity's declaration
// line, the upper bound is the smallest declaration line of any class,
// function, or method in the same file strictly greater than it (end of file
// when none). Nested or out-of-order definitions are misattributed; callers
// tolerate that noise.
// The bool reports whether the declaration exists in this file at all; a
// found entity with no call sites in range returns (nil, true).
func (g *CallGraph) CallsFrom(className, methodName, path string, facts analyzer.Facts) ([]analyzer.CallSite, bool) {
	lower := declLine(className, methodName, facts)
	if lower == 0 {
		return nil, false
	}

	upper := nextDeclAfter(lower, facts)

	label := methodName
	if className != "" {
		label = className + "::" + methodName
	}

	var out []analyzer.CallSite
	for _, c := range g.byFile[path] {
		if c.Line >= lower && c.Line < upper {
			c.From = label
			out = append(out, c)
		}
	}
	return out, true
}

// Evict drops the call sites owned by path.
func (g *CallGraph) Evict(path string) {
	delete(g.byFile, path)
}

// EvictAll drops everything.
func (g *CallGraph) EvictAll() {
	g.byFile = make(map[string][]analyzer.CallSite)
}

// declLine finds the declaration line for the attribution target, or 0.
func declLine(className, methodName string, facts analyzer.Facts) int {
	if className != "" {
		for _, m := range facts.Methods {
			if m.Class == className && m.Name == methodName {
				return m.Line
			}
		}
		return 0
	}
	for _, fn := range facts.Functions {
		if fn.Name == methodName {
			return fn.Line
		}
	}
	return 0
}

// nextDeclAfter returns the minimum declaration line among all classes,
// functions, and methods strictly greater than line, or MaxInt-like open end.
func nextDeclAfter(line int, facts analyzer.Facts) int {
	upper := int(^uint(0) >> 1)
	consider := func(l int) {
		if l > line && l < upper {
			upper = l
		}
	}
	for _, c := range facts.Classes {
		consider(c.Line)
	}
	for _, fn := range facts.Functions {
		consider(fn.Line)
	}
	for _, m := range facts.Methods {
		consider(m.Line)
	}
	return upper
}
