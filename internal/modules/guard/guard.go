// Package guard inspects generated answers for references to documents other
// than the one the resolver committed to. The model is instructed to stay
// inside a single document; this is the post-generation enforcement of that
// instruction.
package guard

import (
	"regexp"
	"strings"

	"github.com/gamdel/core/internal/modules/resolver"
)

// Refusal is the fixed text substituted for a flagged answer, and the phrase
// the model is instructed to use when the document has no answer.
const Refusal = "No encontré esta información en el documento."

// refusalSignal covers "no encontré"/"no encontramos" variants. An answer
// that is already a refusal cannot hallucinate sources.
const refusalSignal = "no encontr"

var filenamePattern = regexp.MustCompile(`(?i)[\p{L}\p{N}_\-.]+\.pdf`)

// Check reports whether answer references a document code or filename that
// appears in neither the selected document's name nor its text.
func Check(answer, docName, docText string) bool {
	if strings.Contains(strings.ToLower(answer), refusalSignal) {
		return false
	}
	refs := resolver.ExtractCodes(answer)
	refs = append(refs, filenamePattern.FindAllString(answer, -1)...)
	for _, ref := range refs {
		if !strings.Contains(docName, ref) && !strings.Contains(docText, ref) {
			return true
		}
	}
	return false
}

// Sanitize returns the answer unchanged when it passes Check, the fixed
// refusal otherwise. The boolean reports whether a substitution happened.
func Sanitize(answer, docName, docText string) (string, bool) {
	if Check(answer, docName, docText) {
		return Refusal, true
	}
	return answer, false
}
