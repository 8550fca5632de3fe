// Package scorer implements the local qualification heuristic. It is the
// offline fallback for the AI deep analysis: a deterministic, side-effect-free
// estimate of how promising a business is for a web agency, scored on 0-10.
package scorer

import (
	"strings"

	"github.com/leadforge/prospector-cli/internal/model"
)

// Suggested offers, in priority order.
const (
	OfferWebsite    = "Création Site Web"
	OfferReputation = "Gestion e-réputation"
	OfferSEO        = "Optimisation SEO"
)

const (
	baseScore      = 5
	maxScore       = 10
	targetScoreMin = 7

	lowRatingCeiling = 4.0
)

// Score rates a business on the 0-10 heuristic scale. Signals: a missing
// website (+3), a poor rating (+2), no rating at all (+1). The summary lists
// the triggered signals; a business with none reads "Profil standard".
func Score(b model.Business) model.Insight {
	score := float64(baseScore)
	var reasons []string

	if b.Website == nil {
		score += 3
		reasons = append(reasons, "Pas de site web")
	}
	if b.Rating != nil && *b.Rating < lowRatingCeiling {
		score += 2
		reasons = append(reasons, "Note inférieure à 4")
	}
	if b.Rating == nil {
		score++
		reasons = append(reasons, "Aucune note publique")
	}
	if score > maxScore {
		score = maxScore
	}

	summary := "Profil standard"
	if len(reasons) > 0 {
		summary = strings.Join(reasons, ", ")
	}

	return model.Insight{
		Score:          score,
		Summary:        summary,
		SuggestedOffer: suggestOffer(b),
		IsTarget:       score >= targetScoreMin,
		Scale:          model.ScaleHeuristic,
	}
}

func suggestOffer(b model.Business) string {
	switch {
	case b.Website == nil:
		return OfferWebsite
	case b.Rating != nil && *b.Rating < lowRatingCeiling:
		return OfferReputation
	default:
		return OfferSEO
	}
}
