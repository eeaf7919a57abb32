package analyzer

import (
	"regexp"
	"strings"
)

var (
	// receiver.method( style calls.
	methodCallRe = regexp.MustCompile(`([A-Za-z_$][\w$]*)\.([A-Za-z_$][\w$]*)\s*\(`)
	// bare identifier( calls; the leading group rejects member access so the
	// method part of receiver.method( is not double counted.
	funcCallRe = regexp.MustCompile(`(?:^|[^.\w$])([A-Za-z_$][\w$]*)\s*\(`)
)

// controlKeywords are excluded from function-style call matches.
var controlKeywords = map[string]bool{
	"if":     true,
	"for":    true,
	"while":  true,
	"switch": true,
	"catch":  true,
}

// scanCalls finds naive call sites on every line. Matches are not
// deduplicated; a line with several calls yields several sites. From is the
// containing file path until call-range attribution rewrites it.
func scanCalls(path string, lines []string) []CallSite {
	var calls []CallSite
	for i, line := range lines {
		for _, m := range methodCallRe.FindAllStringSubmatchIndex(line, -1) {
			receiver := line[m[2]:m[3]]
			method := line[m[4]:m[5]]
			calls = append(calls, CallSite{
				From: path,
				To:   receiver + "." + method,
				Line: i + 1,
				Args: argsAfter(line, m[1]),
			})
		}
		for _, m := range funcCallRe.FindAllStringSubmatchIndex(line, -1) {
			name := line[m[2]:m[3]]
			if controlKeywords[name] || isDeclaration(line, m[2]) {
				continue
			}
			calls = append(calls, CallSite{
				From: path,
				To:   name,
				Line: i + 1,
				Args: argsAfter(line, m[1]),
			})
		}
	}
	return calls
}

// isDeclaration reports whether the identifier starting at pos is preceded
// by a declaration keyword, so `function foo(` and `def foo(` do not count
// as calls to foo.
func isDeclaration(line string, pos int) bool {
	before := strings.TrimRight(line[:pos], " \t")
	return strings.HasSuffix(before, "function") || strings.HasSuffix(before, "def")
}

// argsAfter returns the text between the opening paren ending at pos and the
// next closing paren on the same line, or "" when the call spans lines.
func argsAfter(line string, pos int) string {
	rest := line[pos:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
