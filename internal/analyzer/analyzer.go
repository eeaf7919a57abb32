package analyzer

// LanguageAnalyzer extracts structural facts from one file's line array.
// Implementations must not fail: lines that match no pattern are skipped.
type LanguageAnalyzer interface {
	Language() string
	Extract(path string, lines []string) Facts
}

// ForLanguage returns the analyzer variant for a language tag. Languages
// without a dedicated variant get a null analyzer that extracts nothing.
func ForLanguage(tag string) LanguageAnalyzer {
	switch tag {
	case "javascript", "typescript":
		return jsAnalyzer{tag: tag}
	case "php":
		return phpAnalyzer{}
	case "python":
		return pythonAnalyzer{}
	default:
		return nullAnalyzer{tag: tag}
	}
}

// Extract runs the language variant for tag over lines, then adds the naive
// call-site scan shared by the supported languages. Languages without a
// dedicated variant yield empty facts.
func Extract(path string, lines []string, tag string) Facts {
	a := ForLanguage(tag)
	if _, ok := a.(nullAnalyzer); ok {
		return Facts{}
	}
	facts := a.Extract(path, lines)
	facts.Calls = scanCalls(path, lines)
	return facts
}

// nullAnalyzer handles languages with no extraction rules.
type nullAnalyzer struct{ tag string }

func (a nullAnalyzer) Language() string { return a.tag }

func (nullAnalyzer) Extract(string, []string) Facts { return Facts{} }
