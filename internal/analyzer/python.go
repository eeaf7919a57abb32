package analyzer

import (
	"regexp"
	"strings"
)

var (
	pyImportRe = regexp.MustCompile(`^import\s+([\w.]+(?:\s*,\s*[\w.]+)*)`)
	pyFromRe   = regexp.MustCompile(`^from\s+([\w.]+)\s+import\s+`)
	pyClassRe  = regexp.MustCompile(`^(\s*)class\s+(\w+)(?:\(([^)]*)\))?\s*:`)
	pyDefRe    = regexp.MustCompile(`^(\s*)(async\s+)?def\s+(\w+)\s*\(([^)]*)\)`)
	pyVarRe    = regexp.MustCompile(`^(\w+)\s*=`)
)

// pythonAnalyzer classifies def statements by indentation: a def nested
// deeper than the most recent class declaration is a method of that class,
// anything else is a top-level function. Only one level of nesting is
// modeled; inner classes and closures are attributed to the nearest class.
type pythonAnalyzer struct{}

func (pythonAnalyzer) Language() string { return "python" }

func (a pythonAnalyzer) Extract(path string, lines []string) Facts {
	var f Facts

	classIdx := -1 // index into f.Classes of the class whose body we are in
	classIndent := 0

	for i, line := range lines {
		if m := pyImportRe.FindStringSubmatch(line); m != nil {
			for _, name := range strings.Split(m[1], ",") {
				f.Imports = append(f.Imports, strings.TrimSpace(name))
			}
			continue
		}
		if m := pyFromRe.FindStringSubmatch(line); m != nil {
			f.Imports = append(f.Imports, m[1])
			continue
		}

		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			cls := Class{Name: m[2], Line: i + 1}
			if bases := splitNames(m[3]); len(bases) > 0 {
				cls.Extends = bases[0]
				cls.Implements = bases[1:]
			}
			f.Classes = append(f.Classes, cls)
			classIdx = len(f.Classes) - 1
			classIndent = len(m[1])
			continue
		}

		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			indent := len(m[1])
			name := m[3]
			params := ParseParams(m[4])
			async := m[2] != ""

			if classIdx >= 0 && indent > classIndent {
				cls := &f.Classes[classIdx]
				cls.Methods = append(cls.Methods, name)
				f.Methods = append(f.Methods, Method{
					Class:      cls.Name,
					Name:       name,
					Line:       i + 1,
					Params:     params,
					Visibility: "public",
					Async:      async,
				})
			} else {
				// A def at or above the class indent also closes its body.
				classIdx = -1
				f.Functions = append(f.Functions, Function{
					Name:   name,
					Line:   i + 1,
					Params: params,
					Async:  async,
				})
			}
			continue
		}

		if m := pyVarRe.FindStringSubmatch(line); m != nil {
			f.Variables = append(f.Variables, Variable{Name: m[1], Line: i + 1, Scope: "module"})
		}
	}
	return f
}
