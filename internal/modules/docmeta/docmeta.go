// Package docmeta derives display metadata (version and date tokens) from
// document filenames. It is used for citations only and never guesses: a
// filename without a recognizable token yields an empty field.
package docmeta

import "regexp"

// Meta holds the tokens recovered from a filename. Empty string means the
// token is absent, not unknown-defaulted.
type Meta struct {
	Version string `json:"version,omitempty"`
	Date    string `json:"date,omitempty"`
}

// Version patterns in priority order; the first match wins.
var versionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)rev(\d+)`),    // Rev03
	regexp.MustCompile(`(?i)v(\d+\.\d+)`), // v2.1
	regexp.MustCompile(`(?i)v(\d+)`),      // v2
}

// Date patterns in priority order; the first match wins.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),       // 2026-01-15
	regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),       // 15/01/2026
	regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`), // 15.1.2026
}

// Extract parses version and date tokens out of a document name.
func Extract(name string) Meta {
	var m Meta
	for _, p := range versionPatterns {
		if sub := p.FindStringSubmatch(name); sub != nil {
			m.Version = sub[1]
			break
		}
	}
	for _, p := range datePatterns {
		if d := p.FindString(name); d != "" {
			m.Date = d
			break
		}
	}
	return m
}

// Citation renders "name (vX.Y) - date" for answer sources, omitting absent
// parts.
func Citation(name string) string {
	m := Extract(name)
	out := name
	if m.Version != "" {
		out += " (v" + m.Version + ")"
	}
	if m.Date != "" {
		out += " - " + m.Date
	}
	return out
}
