package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxVocabulary caps the vector space dimension. Terms beyond the cap
// (ranked by corpus frequency) are ignored.
const MaxVocabulary = 500

var tokenPattern = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Scored pairs a document name with its cosine similarity to a query.
type Scored struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// Index is an immutable TF-IDF vector space over one tenant's documents.
// Build returns a fresh Index; callers publish it by pointer swap so that
// readers always observe a consistent snapshot.
type Index struct {
	vocabulary map[string]int
	idf        []float64
	names      []string
	vectors    [][]float64
}

// Build constructs an index over the given documents. It returns nil when
// there are no documents or the corpus yields no usable terms; a nil Index
// answers every query with no results.
func Build(docs map[string]string) *Index {
	if len(docs) == 0 {
		return nil
	}

	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	tokenized := make([][]string, len(names))
	df := make(map[string]int)
	total := make(map[string]int)
	for i, name := range names {
		tokens := tokenize(docs[name])
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			total[tok]++
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil
	}

	// Bounded vocabulary: keep the most frequent terms, alphabetical on ties,
	// then index terms alphabetically for a stable dimension order.
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxVocabulary {
		terms = terms[:MaxVocabulary]
	}
	sort.Strings(terms)

	ix := &Index{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		names:      names,
		vectors:    make([][]float64, len(names)),
	}
	n := float64(len(names))
	for i, term := range terms {
		ix.vocabulary[term] = i
		// Smoothed IDF
		ix.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	for i := range names {
		ix.vectors[i] = ix.embed(tokenized[i])
	}
	return ix
}

// Query projects text into the index's vector space and returns every
// document ranked by cosine similarity, descending, name ascending on ties.
// A query with no in-vocabulary terms scores zero against every document;
// callers must treat zero as "no signal", not as a weak match.
func (ix *Index) Query(text string) []Scored {
	if ix == nil {
		return nil
	}
	qv := ix.embed(tokenize(text))
	out := make([]Scored, len(ix.names))
	for i, name := range ix.names {
		out[i] = Scored{Name: name, Score: dot(qv, ix.vectors[i])}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Len returns the number of indexed documents.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.names)
}

// embed computes an L2-normalized TF-IDF vector. Out-of-vocabulary tokens
// contribute nothing.
func (ix *Index) embed(tokens []string) []float64 {
	vec := make([]float64, len(ix.idf))
	tf := make(map[int]int)
	known := 0
	for _, tok := range tokens {
		if idx, ok := ix.vocabulary[tok]; ok {
			tf[idx]++
			known++
		}
	}
	if known == 0 {
		return vec
	}
	for idx, count := range tf {
		vec[idx] = float64(count) / float64(known) * ix.idf[idx]
	}
	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
