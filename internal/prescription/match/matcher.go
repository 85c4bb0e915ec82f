package match

import (
	"context"
	"strings"

	"github.com/agext/levenshtein"
	"github.com/pharmagenie/pharmagenie-backend/internal/prescription/domain"
	"github.com/pharmagenie/pharmagenie-backend/pkg/errors"
)

// DefaultThreshold is the similarity ratio (0-100) a match must strictly
// exceed to count
const DefaultThreshold = 80.0

// Catalog provides the canonical medicine names, in a stable iteration
// order. Implemented by the catalog repository.
type Catalog interface {
	MedicineNames(ctx context.Context) ([]string, error)
}

// Matcher fuzzy-matches extracted medicine names against the catalog
// using a normalized Levenshtein similarity ratio.
//
// Matching is linear over the catalog per item; fine for small catalogs.
// Callers needing scale should pre-index by a phonetic or blocking key.
type Matcher struct {
	catalog   Catalog
	threshold float64
	params    *levenshtein.Params
}

// NewMatcher creates a matcher. A non-positive threshold falls back to
// DefaultThreshold.
func NewMatcher(catalog Catalog, threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{
		catalog:   catalog,
		threshold: threshold,
		params:    levenshtein.NewParams(),
	}
}

// Ratio returns the case-insensitive similarity between two names on a
// 0-100 scale.
func (m *Matcher) Ratio(a, b string) float64 {
	return levenshtein.Similarity(strings.ToLower(a), strings.ToLower(b), m.params) * 100
}

// MatchOne matches a single extracted name against the catalog names.
// The best-scoring catalog entry wins; ties resolve to the first entry in
// catalog iteration order. The item is matched only when the best ratio
// strictly exceeds the threshold.
func (m *Matcher) MatchOne(name string, catalogNames []string) domain.MatchResult {
	result := domain.MatchResult{Extracted: name}

	var best string
	var bestRatio float64
	for _, canonical := range catalogNames {
		ratio := m.Ratio(name, canonical)
		if ratio > bestRatio {
			bestRatio = ratio
			best = canonical
		}
	}

	result.Ratio = bestRatio
	if bestRatio > m.threshold {
		result.Canonical = best
		result.Matched = true
	}
	return result
}

// Match matches every extracted medicine and splits the outcome into
// matched canonical names and unmatched extracted names.
func (m *Matcher) Match(ctx context.Context, medicines []domain.ExtractedMedicine) (matched []string, unmatched []string, err error) {
	names, err := m.catalog.MedicineNames(ctx)
	if err != nil {
		return nil, nil, errors.Unavailable("medicine catalog", err)
	}

	matched = []string{}
	unmatched = []string{}
	for _, med := range medicines {
		res := m.MatchOne(med.Name, names)
		if res.Matched {
			matched = append(matched, res.Canonical)
		} else {
			unmatched = append(unmatched, med.Name)
		}
	}
	return matched, unmatched, nil
}
