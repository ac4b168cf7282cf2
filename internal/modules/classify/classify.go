// Package classify routes an incoming question to one of three intents:
// a synthesized document table, a system/corpus statistics answer, or an
// ordinary content question for the resolver. Rules are declarative and
// ordered; the first matching rule wins.
package classify

import "strings"

// Intent is the routing decision for a question.
type Intent int

const (
	// IntentContent routes the question through the search cascade and the
	// generative answerer.
	IntentContent Intent = iota
	// IntentTable asks for a synthesized table of the uploaded documents.
	IntentTable
	// IntentMeta asks about the system or corpus itself (counts, history).
	IntentMeta
)

func (i Intent) String() string {
	switch i {
	case IntentTable:
		return "table"
	case IntentMeta:
		return "meta"
	default:
		return "content"
	}
}

// actionWords signal a request to produce something from the corpus.
var actionWords = []string{
	"prepara", "genera", "crea", "haz", "haga", "hacer",
	"cuadro", "tabla", "lista", "reporte", "resumen",
	"generate", "prepare", "create", "list", "report",
}

// documentWords signal the request is about the uploaded documents.
var documentWords = []string{
	"documento", "documentos", "archivo", "archivos",
	"subido", "cargado", "pdf",
	"document", "documents", "file", "files", "upload", "uploaded",
}

// metaWords signal a question about the system rather than document content.
var metaWords = []string{
	"cuántos documentos", "cuantos documentos",
	"cuántas preguntas", "cuantas preguntas",
	"última pregunta", "ultima pregunta",
	"historial", "estadísticas", "estadisticas",
	"tamaño total", "tamaño de",
	"información del sistema", "informacion del sistema",
	"cuántas páginas", "cuantas paginas",
	"how many documents", "how many pages", "history", "statistics",
}

// contentActionWords override a meta classification: "generate a report of
// documents" is a structured content request, not a statistics dump.
var contentActionWords = []string{
	"prepara", "genera", "crea", "haz", "haga", "hacer",
	"cuadro", "tabla", "lista", "resumen", "reporte",
	"indicando", "mostrando", "que incluya",
	"generate", "prepare", "create", "list", "report",
}

// rule maps a predicate to an intent. Rules run in order; priority is
// explicit here instead of being buried in control flow.
type rule struct {
	intent Intent
	match  func(q string) bool
}

var rules = []rule{
	{IntentTable, func(q string) bool {
		return containsAny(q, actionWords) && containsAny(q, documentWords)
	}},
	{IntentMeta, func(q string) bool {
		return containsAny(q, metaWords) && !containsAny(q, contentActionWords)
	}},
}

// Classify decides the intent of a question. The three intents are mutually
// exclusive; anything not matched by a rule is a content question.
func Classify(question string) Intent {
	q := strings.ToLower(question)
	for _, r := range rules {
		if r.match(q) {
			return r.intent
		}
	}
	return IntentContent
}

func containsAny(q string, words []string) bool {
	for _, w := range words {
		if strings.Contains(q, w) {
			return true
		}
	}
	return false
}
