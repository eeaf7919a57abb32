package index

import (
	"sort"
	"strings"

	"codescope/internal/analyzer"
)

// Entity is the closed set of things a symbol key can point at. The concrete
// types are ClassEntity, FunctionEntity, and MethodEntity; consumers switch
// exhaustively instead of sniffing fields.
type Entity interface {
	EntityName() string
	DeclLine() int
	sealed()
}

// ClassEntity wraps a class declaration.
type ClassEntity struct{ analyzer.Class }

func (e ClassEntity) EntityName() string { return e.Name }
func (e ClassEntity) DeclLine() int      { return e.Line }
func (ClassEntity) sealed()              {}

// FunctionEntity wraps a top-level function.
type FunctionEntity struct{ analyzer.Function }

func (e FunctionEntity) EntityName() string { return e.Name }
func (e FunctionEntity) DeclLine() int      { return e.Line }
func (FunctionEntity) sealed()              {}

// MethodEntity wraps a class method.
type MethodEntity struct{ analyzer.Method }

func (e MethodEntity) EntityName() string { return e.Name }
func (e MethodEntity) DeclLine() int      { return e.Line }
func (MethodEntity) sealed()              {}

// Symbol pairs a qualified key with the entity it resolves to.
type Symbol struct {
	Key    string `json:"key"`
	Entity Entity `json:"entity"`
}

// SymbolTable is the global map from qualified keys to entities. Keys are
// `path:class:Name`, `path:function:Name`, or `path:Class.method`; the path
// prefix lets eviction target exactly one file's keys.
type SymbolTable struct {
	entries map[string]Entity
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{entries: make(map[string]Entity)}
}

// Rebuild replaces exactly the keys contributed by path.
func (t *SymbolTable) Rebuild(path string, facts analyzer.Facts) {
	t.Evict(path)
	for _, c := range facts.Classes {
		t.entries[path+":class:"+c.Name] = ClassEntity{c}
	}
	for _, fn := range facts.Functions {
		t.entries[path+":function:"+fn.Name] = FunctionEntity{fn}
	}
	for _, m := range facts.Methods {
		t.entries[path+":"+m.Class+"."+m.Name] = MethodEntity{m}
	}
}

// FindByName returns every symbol whose key contains sub, sorted by key.
// Substring matching is deliberate: a short query can hit several unrelated
// symbols, and callers are expected to disambiguate.
func (t *SymbolTable) FindByName(sub string) []Symbol {
	var out []Symbol
	for key, entity := range t.entries {
		if strings.Contains(key, sub) {
			out = append(out, Symbol{Key: key, Entity: entity})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// FindMethod locates a method entity by class and name in any analyzed file.
// With an empty class name it falls back to a top-level function entity.
func (t *SymbolTable) FindMethod(class, name string) (Entity, bool) {
	var suffix string
	if class != "" {
		suffix = ":" + class + "." + name
	} else {
		suffix = ":function:" + name
	}

	keys := make([]string, 0, len(t.entries))
	for key := range t.entries {
		if strings.HasSuffix(key, suffix) {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, false
	}
	sort.Strings(keys)
	return t.entries[keys[0]], true
}

// All returns a defensive copy of the whole table.
func (t *SymbolTable) All() map[string]Entity {
	out := make(map[string]Entity, len(t.entries))
	for k, v := range t.entries {
		out[k] = v
	}
	return out
}

// Evict removes the keys contributed by path.
func (t *SymbolTable) Evict(path string) {
	prefix := path + ":"
	for key := range t.entries {
		if strings.HasPrefix(key, prefix) {
			delete(t.entries, key)
		}
	}
}

// EvictAll clears the table.
func (t *SymbolTable) EvictAll() {
	t.entries = make(map[string]Entity)
}

// Len reports the number of entries.
func (t *SymbolTable) Len() int {
	return len(t.entries)
}
