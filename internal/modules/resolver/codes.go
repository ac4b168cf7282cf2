package resolver

import (
	"regexp"
	"sort"
	"strings"
)

// codeGrammars lists the document code shapes recognized inside queries and
// answers, most specific first. Specificity only settles overlaps: a span
// claimed by one grammar is dead to the rest, so the generic shape never
// re-emits a fragment of a more specific code.
var codeGrammars = []*regexp.Regexp{
	regexp.MustCompile(`(?i)GAM-SIG-PR-\d+`),
	regexp.MustCompile(`(?i)DESPA-PG-\d+`),
	regexp.MustCompile(`(?i)G_\d{3}_\d{4}`),
	regexp.MustCompile(`(?i)[A-Z]+-[A-Z]+-\d+`),
}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

type codeSpan struct {
	start, end int
}

// ExtractCodes returns every structured document code found in the text, in
// order of appearance, deduplicated case-insensitively.
func ExtractCodes(text string) []string {
	var spans []codeSpan
	for _, grammar := range codeGrammars {
		for _, m := range grammar.FindAllStringIndex(text, -1) {
			if overlaps(spans, m[0], m[1]) {
				continue
			}
			spans = append(spans, codeSpan{m[0], m[1]})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var codes []string
	seen := make(map[string]struct{})
	for _, s := range spans {
		code := text[s.start:s.end]
		key := strings.ToLower(code)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func overlaps(spans []codeSpan, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
