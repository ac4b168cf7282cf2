// Package resolver picks the single document a query is about. Strategies
// run from most precise (an exact document code) to least precise (TF-IDF
// similarity) and the first one that yields a candidate wins.
package resolver

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gamdel/core/internal/modules/similarity"
	"go.uber.org/zap"
)

// DefaultMinScore is the similarity cutoff for the vector stage. Below it the
// cascade reports no match instead of returning an arbitrary document.
const DefaultMinScore = 0.1

var (
	// ErrNoDocuments means the tenant has nothing loaded; no stage runs.
	ErrNoDocuments = errors.New("no documents loaded for tenant")
	// ErrNoMatch means every stage ran and none produced a candidate.
	ErrNoMatch = errors.New("no relevant document found")
)

// Resolver resolves queries against a document set snapshot.
type Resolver struct {
	minScore float64
	log      *zap.Logger
}

func New(minScore float64, log *zap.Logger) *Resolver {
	if minScore < 0 {
		minScore = DefaultMinScore
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{minScore: minScore, log: log}
}

// Resolve returns the name of the most relevant document. names and index
// must come from the same store snapshot. It never guesses: when no stage
// produces a candidate the caller gets ErrNoMatch.
func (r *Resolver) Resolve(query string, names []string, index *similarity.Index) (string, error) {
	if len(names) == 0 {
		return "", ErrNoDocuments
	}
	ordered := make([]string, len(names))
	copy(ordered, names)
	sort.Strings(ordered)

	if name, ok := r.byCode(query, ordered); ok {
		r.log.Debug("resolved by document code", zap.String("doc", name))
		return name, nil
	}
	if name, ok := r.byFilename(query, ordered); ok {
		r.log.Debug("resolved by filename", zap.String("doc", name))
		return name, nil
	}
	if name, ok := r.byKeywords(query, ordered); ok {
		r.log.Debug("resolved by name keywords", zap.String("doc", name))
		return name, nil
	}
	if name, ok := r.bySimilarity(query, index); ok {
		r.log.Debug("resolved by content similarity", zap.String("doc", name))
		return name, nil
	}
	return "", ErrNoMatch
}

// byCode scans the query for structured document codes and matches them
// against document names, case-insensitively. Codes are tried in extraction
// order, documents in sorted-name order.
func (r *Resolver) byCode(query string, ordered []string) (string, bool) {
	for _, code := range ExtractCodes(query) {
		lower := strings.ToLower(code)
		for _, name := range ordered {
			if strings.Contains(strings.ToLower(name), lower) {
				return name, true
			}
		}
	}
	return "", false
}

// byFilename matches containment in either direction: the whole query inside
// a document name, or the name (or its extensionless stem) inside the query.
func (r *Resolver) byFilename(query string, ordered []string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, name := range ordered {
		lower := strings.ToLower(name)
		stem := strings.TrimSuffix(lower, filepath.Ext(lower))
		if strings.Contains(lower, q) || strings.Contains(q, lower) ||
			(stem != "" && strings.Contains(q, stem)) {
			return name, true
		}
	}
	return "", false
}

// byKeywords ranks documents sharing at least two word tokens with the query,
// by shared-token count descending then name ascending.
func (r *Resolver) byKeywords(query string, ordered []string) (string, bool) {
	qWords := wordSet(query)
	if len(qWords) < 2 {
		return "", false
	}
	best, bestShared := "", 0
	for _, name := range ordered {
		shared := 0
		for w := range wordSet(name) {
			if _, ok := qWords[w]; ok {
				shared++
			}
		}
		if shared >= 2 && shared > bestShared {
			best, bestShared = name, shared
		}
	}
	return best, best != ""
}

func (r *Resolver) bySimilarity(query string, index *similarity.Index) (string, bool) {
	ranked := index.Query(query)
	if len(ranked) == 0 || ranked[0].Score <= r.minScore {
		return "", false
	}
	return ranked[0].Name, true
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(s), -1) {
		set[w] = struct{}{}
	}
	return set
}
