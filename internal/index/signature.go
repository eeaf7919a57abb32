package index

import (
	"fmt"
	"strings"

	"codescope/internal/analyzer"
)

// SignatureReport is the soft-failure result of a signature comparison.
// Lookup misses populate Issues instead of raising errors.
type SignatureReport struct {
	Match             bool     `json:"match"`
	ExpectedSignature string   `json:"expected_signature,omitempty"`
	Issues            []string `json:"issues,omitempty"`
}

// CompareSignatures checks the calls made from callingFile against the
// declared signature of calledClass.methodName (or a top-level function when
// calledClass is empty). It never fails hard: an unanalyzed calling file or
// an unknown target produces Match=false with an explanatory issue list.
// A calling file with no calls to the target matches vacuously.
func (m *Manager) CompareSignatures(callingFile, calledClass, methodName string) SignatureReport {
	rec, ok := m.store.Lookup(callingFile)
	if !ok {
		return SignatureReport{
			Issues: []string{fmt.Sprintf("file %s has not been analyzed", callingFile)},
		}
	}

	entity, ok := m.syms.FindMethod(calledClass, methodName)
	if !ok {
		target := methodName
		if calledClass != "" {
			target = calledClass + "." + methodName
		}
		return SignatureReport{
			Issues: []string{fmt.Sprintf("method %s not found in any analyzed file", target)},
		}
	}

	params := entityParams(entity)
	expected := formatSignature(calledClass, methodName, params)
	required, total := arity(params)

	var issues []string
	for _, c := range rec.Facts.Calls {
		if c.To != methodName && !strings.HasSuffix(c.To, "."+methodName) {
			continue
		}
		argc := countArgs(c.Args)
		switch {
		case argc < required:
			issues = append(issues, fmt.Sprintf(
				"line %d: %d argument(s) passed, %s expects at least %d", c.Line, argc, expected, required))
		case argc > total:
			issues = append(issues, fmt.Sprintf(
				"line %d: %d argument(s) passed, %s expects at most %d", c.Line, argc, expected, total))
		}
	}

	return SignatureReport{
		Match:             len(issues) == 0,
		ExpectedSignature: expected,
		Issues:            issues,
	}
}

// entityParams extracts the parameter list from the closed entity set.
func entityParams(e Entity) []analyzer.Param {
	switch v := e.(type) {
	case MethodEntity:
		return v.Params
	case FunctionEntity:
		return v.Params
	case ClassEntity:
		return nil
	default:
		return nil
	}
}

// formatSignature renders Class.method(p1, p2) for report messages.
func formatSignature(class, name string, params []analyzer.Param) string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
		if p.Optional {
			names[i] += "?"
		}
	}
	qualified := name
	if class != "" {
		qualified = class + "." + name
	}
	return qualified + "(" + strings.Join(names, ", ") + ")"
}

// arity returns the required and total parameter counts.
func arity(params []analyzer.Param) (required, total int) {
	total = len(params)
	for _, p := range params {
		if !p.Optional {
			required++
		}
	}
	return required, total
}

// countArgs counts comma-separated arguments in captured call text. Calls
// spanning lines capture no text and count as zero, which can produce a
// spurious too-few-arguments issue; accepted as heuristic noise.
func countArgs(args string) int {
	args = strings.TrimSpace(args)
	if args == "" {
		return 0
	}
	return strings.Count(args, ",") + 1
}
