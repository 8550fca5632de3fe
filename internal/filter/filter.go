// Package filter narrows an in-memory result set with user-selected
// predicates. Predicates are conjunctive and never mutate the input.
package filter

import "github.com/leadforge/prospector-cli/internal/model"

// Predicates are the user-facing result filters. MaxRating is deliberately a
// ceiling, not a floor: the tool surfaces underperforming businesses. Nil
// fields are inactive.
type Predicates struct {
	MaxRating     *float64 `json:"max_rating,omitempty"`
	NoWebsiteOnly bool     `json:"no_website_only,omitempty"`
	MinScore      *float64 `json:"min_score,omitempty"`
}

// Active reports whether any predicate is set.
func (p Predicates) Active() bool {
	return p.MaxRating != nil || p.NoWebsiteOnly || p.MinScore != nil
}

// Apply returns the results passing every active predicate. MinScore reads
// the transient heuristic score from scores, keyed by source id; results
// without a score entry fail an active MinScore predicate. Unrated
// businesses pass MaxRating, since an unknown rating is not a high one.
func Apply(results []model.SearchResult, scores map[string]float64, p Predicates) []model.SearchResult {
	if !p.Active() {
		return results
	}

	kept := make([]model.SearchResult, 0, len(results))
	for _, r := range results {
		if p.MaxRating != nil && r.Business.Rating != nil && *r.Business.Rating > *p.MaxRating {
			continue
		}
		if p.NoWebsiteOnly && r.Business.Website != nil {
			continue
		}
		if p.MinScore != nil {
			score, ok := scores[r.SourceID]
			if !ok || score < *p.MinScore {
				continue
			}
		}
		kept = append(kept, r)
	}
	return kept
}
