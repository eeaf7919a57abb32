// Package chunk bounds large text payloads to a model's context budget.
// Budgets are given in tokens and converted with a fixed chars-per-token
// heuristic; splitting prefers the section boundaries used when several
// files are joined into one payload, and degrades to line packing and
// finally plain character slicing.
package chunk

import "strings"

// charsPerToken is the heuristic ratio between characters and tokens.
const charsPerToken = 4

// SectionSeparator delimits file sections inside an aggregated payload.
var SectionSeparator = strings.Repeat("=", 80)

// JoinSections builds one payload from several sections, delimited by
// SectionSeparator lines, in the shape Split knows how to break apart.
func JoinSections(sections []string) string {
	return strings.Join(sections, "\n"+SectionSeparator+"\n")
}

// Split breaks payload into chunks of at most maxTokens×4 characters.
//
// A payload under budget comes back as a single chunk. Payloads containing
// SectionSeparator are packed greedily a whole section at a time; a section
// that alone exceeds the budget is split by lines, and a single oversized
// line is sliced at the character budget. Payloads without the separator go
// straight to character slicing. Every returned chunk is non-empty after
// trimming, and concatenating the chunks reconstructs the payload's content
// modulo separators and boundary whitespace. Split never fails.
func Split(payload string, maxTokens int) []string {
	budget := maxTokens * charsPerToken
	if budget <= 0 {
		budget = charsPerToken
	}
	if len(payload) <= budget {
		return []string{payload}
	}
	if strings.Contains(payload, SectionSeparator) {
		return packSections(strings.Split(payload, SectionSeparator), budget)
	}
	return slice(payload, budget)
}

// packSections greedily packs whole sections into chunks under budget.
func packSections(sections []string, budget int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	for _, section := range sections {
		if strings.TrimSpace(section) == "" {
			continue
		}

		// A single section over budget gets its own line-level split.
		if len(section) > budget {
			flush()
			chunks = append(chunks, packLines(section, budget)...)
			continue
		}

		needed := len(section)
		if current.Len() > 0 {
			needed += len(SectionSeparator) + 2
		}
		if current.Len() > 0 && current.Len()+needed > budget {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n" + SectionSeparator + "\n")
		}
		current.WriteString(section)
	}
	flush()
	return chunks
}

// packLines packs a section's lines into chunks, hard-slicing any line that
// alone exceeds the budget.
func packLines(section string, budget int) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if trimmed := strings.TrimSpace(current.String()); trimmed != "" {
			chunks = append(chunks, trimmed)
		}
		current.Reset()
	}

	for _, line := range strings.Split(section, "\n") {
		if len(line) > budget {
			flush()
			chunks = append(chunks, slice(line, budget)...)
			continue
		}
		if current.Len() > 0 && current.Len()+1+len(line) > budget {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	flush()
	return chunks
}

// slice cuts text into fixed-size pieces at the character budget.
func slice(text string, budget int) []string {
	var chunks []string
	for start := 0; start < len(text); start += budget {
		end := start + budget
		if end > len(text) {
			end = len(text)
		}
		if piece := strings.TrimSpace(text[start:end]); piece != "" {
			chunks = append(chunks, piece)
		}
	}
	return chunks
}
