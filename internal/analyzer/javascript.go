package analyzer

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	jsImportRe = regexp.MustCompile(`^\s*import\s+(?:[\w{}\s,*$]+\s+from\s+)?['"]([^'"]+)['"]`)
	jsExportRe = regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:abstract\s+)?(?:async\s+)?(?:class|function|const|let|var|interface|enum)\s+([A-Za-z_$][\w$]*)`)
	jsClassRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([\w$.]+))?(?:\s+implements\s+([\w$.,\s]+))?`)
	jsFuncRe   = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(([^)]*)\)`)
	jsArrowRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?\(([^)]*)\)[^=]*=>`)
	jsVarRe    = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)`)

	jsMethodRe = regexp.MustCompile(`^\s*(?:(public|private|protected)\s+)?(?:(static)\s+)?(?:(async)\s+)?(?:get\s+|set\s+)?\*?\s*(#?[A-Za-z_$][\w$]*)\s*\(([^)]*)\)\s*(?::\s*[^{]+)?\{`)
	jsPropRe   = regexp.MustCompile(`^\s*(?:(?:public|private|protected|readonly|static)\s+)*(#?[A-Za-z_$][\w$]*)\??\s*[:=][^=>]`)
)

// jsAnalyzer covers both JavaScript and TypeScript: the TypeScript-only
// syntax (visibility modifiers, type annotations) is optional in every
// pattern, so plain JavaScript matches too.
type jsAnalyzer struct{ tag string }

func (a jsAnalyzer) Language() string { return a.tag }

func (a jsAnalyzer) Extract(path string, lines []string) Facts {
	var f Facts
	dir := filepath.Dir(path)
	depth := 0

	for i, line := range lines {
		atTopLevel := depth == 0
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if m := jsImportRe.FindStringSubmatch(line); m != nil {
			src := m[1]
			f.Imports = append(f.Imports, src)
			if strings.HasPrefix(src, "./") || strings.HasPrefix(src, "../") {
				f.Dependencies = append(f.Dependencies, filepath.Clean(filepath.Join(dir, src)))
			}
			continue
		}

		if m := jsExportRe.FindStringSubmatch(line); m != nil {
			f.Exports = append(f.Exports, m[1])
		}

		if !atTopLevel {
			continue
		}

		if m := jsClassRe.FindStringSubmatch(line); m != nil {
			cls := Class{Name: m[1], Line: i + 1, Extends: m[2]}
			if m[3] != "" {
				cls.Implements = splitNames(m[3])
			}
			a.scanClassBody(&f, &cls, lines, i)
			f.Classes = append(f.Classes, cls)
			continue
		}

		if m := jsFuncRe.FindStringSubmatch(line); m != nil {
			f.Functions = append(f.Functions, Function{
				Name:   m[2],
				Line:   i + 1,
				Params: ParseParams(m[3]),
				Async:  m[1] != "",
			})
			continue
		}

		if m := jsArrowRe.FindStringSubmatch(line); m != nil {
			f.Functions = append(f.Functions, Function{
				Name:   m[1],
				Line:   i + 1,
				Params: ParseParams(m[3]),
				Async:  m[2] != "",
			})
			continue
		}

		if m := jsVarRe.FindStringSubmatch(line); m != nil {
			f.Variables = append(f.Variables, Variable{Name: m[1], Line: i + 1, Scope: "module"})
		}
	}
	return f
}

// scanClassBody walks the class body by counting braces from the declaration
// line and records methods and properties declared directly in the body.
// Braces inside string or comment literals are counted too; that is a known
// false-positive source inherited from the heuristic approach.
func (a jsAnalyzer) scanClassBody(f *Facts, cls *Class, lines []string, start int) {
	depth := 0
	entered := false

	for j := start; j < len(lines); j++ {
		line := lines[j]

		if entered && depth == 1 && j > start {
			if m := jsMethodRe.FindStringSubmatch(line); m != nil && !controlKeywords[m[4]] {
				name := m[4]
				visibility := m[1]
				if visibility == "" {
					visibility = "public"
					if strings.HasPrefix(name, "#") {
						visibility = "private"
					}
				}
				cls.Methods = append(cls.Methods, name)
				f.Methods = append(f.Methods, Method{
					Class:      cls.Name,
					Name:       name,
					Line:       j + 1,
					Params:     ParseParams(m[5]),
					Visibility: visibility,
					Static:     m[2] != "",
					Async:      m[3] != "",
				})
			} else if m := jsPropRe.FindStringSubmatch(line); m != nil {
				cls.Properties = append(cls.Properties, m[1])
			}
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth > 0 {
			entered = true
		}
		if entered && depth <= 0 {
			return
		}
	}
}

// splitNames splits a comma-separated identifier list, dropping empties.
func splitNames(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}
