package analyzer

import (
	"regexp"
	"strings"
)

// paramRe matches a single parameter in the form `name[?][: type][= default]`.
// A leading `$` (PHP) or `...` (rest parameter) is tolerated.
var paramRe = regexp.MustCompile(`^(?:\.{3})?\$?([A-Za-z_][\w]*)(\?)?(?:\s*:\s*([^=]+?))?(?:\s*=\s*(.+))?$`)

// ParseParams splits a raw parameter string on commas and parses each piece.
// The comma split is naive: default values containing commas will be split
// apart, and destructured parameters are skipped. Shared by all language
// variants.
func ParseParams(raw string) []Param {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var params []Param
	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		m := paramRe.FindStringSubmatch(piece)
		if m == nil {
			continue
		}
		p := Param{
			Name:    m[1],
			Type:    strings.TrimSpace(m[3]),
			Default: strings.TrimSpace(m[4]),
		}
		p.Optional = m[2] == "?" || p.Default != ""
		params = append(params, p)
	}
	return params
}
