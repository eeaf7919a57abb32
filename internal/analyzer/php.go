package analyzer

import (
	"regexp"
	"strings"
)

var (
	phpNamespaceRe = regexp.MustCompile(`^\s*namespace\s+([\w\\]+)\s*;`)
	phpUseRe       = regexp.MustCompile(`^\s*use\s+([\w\\]+)(?:\s+as\s+\w+)?\s*;`)
	phpClassRe     = regexp.MustCompile(`^\s*(?:abstract\s+|final\s+)?class\s+(\w+)(?:\s+extends\s+([\w\\]+))?(?:\s+implements\s+([\w\\,\s]+))?`)
	phpMethodRe    = regexp.MustCompile(`^\s*(public|private|protected)\s+(?:(static)\s+)?function\s+&?(\w+)\s*\(([^)]*)\)`)
	phpFuncRe      = regexp.MustCompile(`^\s*function\s+&?(\w+)\s*\(([^)]*)\)`)
	phpPropRe      = regexp.MustCompile(`^\s*(?:public|private|protected)\s+(?:static\s+)?\$(\w+)`)
	phpVarRe       = regexp.MustCompile(`^\s*\$(\w+)\s*=`)
)

// phpAnalyzer extracts structure from PHP sources. Methods are recognized
// only through the fixed `visibility [static] function name(params)` shape;
// visibility-less class functions are not treated as methods.
type phpAnalyzer struct{}

func (phpAnalyzer) Language() string { return "php" }

func (a phpAnalyzer) Extract(path string, lines []string) Facts {
	var f Facts
	depth := 0

	for i, line := range lines {
		atTopLevel := depth == 0
		depth += strings.Count(line, "{") - strings.Count(line, "}")

		if m := phpNamespaceRe.FindStringSubmatch(line); m != nil {
			f.Namespace = m[1]
			continue
		}
		if m := phpUseRe.FindStringSubmatch(line); m != nil {
			f.Imports = append(f.Imports, m[1])
			continue
		}
		if !atTopLevel {
			continue
		}
		if m := phpClassRe.FindStringSubmatch(line); m != nil {
			cls := Class{Name: m[1], Line: i + 1, Extends: m[2]}
			if m[3] != "" {
				cls.Implements = splitNames(m[3])
			}
			a.scanClassBody(&f, &cls, lines, i)
			f.Classes = append(f.Classes, cls)
			f.Exports = append(f.Exports, cls.Name)
			continue
		}
		if m := phpFuncRe.FindStringSubmatch(line); m != nil {
			f.Functions = append(f.Functions, Function{
				Name:   m[1],
				Line:   i + 1,
				Params: ParseParams(m[2]),
			})
			f.Exports = append(f.Exports, m[1])
			continue
		}
		if m := phpVarRe.FindStringSubmatch(line); m != nil {
			f.Variables = append(f.Variables, Variable{Name: m[1], Line: i + 1, Scope: "global"})
		}
	}
	return f
}

// scanClassBody walks the class body by brace counting and records
// visibility-prefixed methods and properties.
func (a phpAnalyzer) scanClassBody(f *Facts, cls *Class, lines []string, start int) {
	depth := 0
	entered := false

	for j := start; j < len(lines); j++ {
		line := lines[j]

		if entered && depth == 1 && j > start {
			if m := phpMethodRe.FindStringSubmatch(line); m != nil {
				cls.Methods = append(cls.Methods, m[3])
				f.Methods = append(f.Methods, Method{
					Class:      cls.Name,
					Name:       m[3],
					Line:       j + 1,
					Params:     ParseParams(m[4]),
					Visibility: m[1],
					Static:     m[2] != "",
				})
			} else if m := phpPropRe.FindStringSubmatch(line); m != nil {
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
