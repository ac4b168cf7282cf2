package similarity

// Uploaded corpora are mostly Spanish with English boilerplate, so both
// stop-word sets apply.
var stopwords = buildStopwords(
	// English
	"a", "an", "the", "and", "or", "but", "if", "then", "else", "for", "to",
	"of", "in", "on", "at", "by", "with", "as", "is", "are", "was", "were",
	"be", "been", "being", "it", "this", "that", "these", "those", "from",
	"up", "down", "over", "under", "than", "so", "such", "into", "about",
	"between", "through", "during", "before", "after", "above", "below",
	"out", "off", "own", "same", "too", "very", "can", "will", "just", "not",
	// Spanish
	"el", "la", "los", "las", "un", "una", "unos", "unas", "y", "o", "u",
	"de", "del", "al", "en", "por", "para", "con", "sin", "sobre", "entre",
	"que", "se", "su", "sus", "es", "son", "fue", "ser", "como", "más",
	"este", "esta", "estos", "estas", "ese", "esa", "lo", "le", "les",
	"no", "ni", "ya", "si", "cuando", "donde", "cada", "todo", "toda",
)

func buildStopwords(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
