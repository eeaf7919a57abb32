// Package lang maps file extensions to language tags used by the
// structural analyzer. Detection is purely extension based.
package lang

import (
	"path/filepath"
	"strings"
)

// Unknown is returned for extensions with no registered language.
const Unknown = "unknown"

// byExtension maps lower-cased extensions (without the dot) to language tags.
var byExtension = map[string]string{
	"js":    "javascript",
	"jsx":   "javascript",
	"mjs":   "javascript",
	"ts":    "typescript",
	"tsx":   "typescript",
	"php":   "php",
	"py":    "python",
	"java":  "java",
	"cs":    "csharp",
	"cpp":   "cpp",
	"cc":    "cpp",
	"c":     "c",
	"rb":    "ruby",
	"go":    "go",
	"rs":    "rust",
	"swift": "swift",
	"kt":    "kotlin",
}

// Detect returns the language tag for a file path based on its extension.
// Unrecognized extensions return Unknown.
func Detect(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if tag, ok := byExtension[ext]; ok {
		return tag
	}
	return Unknown
}
