// Package analyze runs the AI deep analysis of a single business: a
// schema-constrained verdict on the 0-100 scale. Failures are returned as
// errors, never as a zero-score insight — a quota outage must stay
// distinguishable from a genuinely poor prospect.
package analyze

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadforge/prospector-cli/internal/ai"
	"github.com/leadforge/prospector-cli/internal/model"
)

// Analyzer produces deep-analysis insights.
type Analyzer struct {
	gen ai.Generator
}

// New creates an Analyzer on the given provider.
func New(gen ai.Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

var insightSchema = &ai.Schema{
	Type: "object",
	Properties: map[string]*ai.Schema{
		"score":            {Type: "number", Description: "0 à 100, 100 = prospect idéal"},
		"analysis_summary": {Type: "string", Description: "Résumé de l'analyse en 2 phrases"},
		"suggested_offer":  {Type: "string", Description: "Approche commerciale ou offre à proposer"},
		"is_target":        {Type: "boolean"},
	},
	Required: []string{"score", "analysis_summary", "suggested_offer", "is_target"},
}

// Analyze rates the business on the canonical 0-100 scale.
func (a *Analyzer) Analyze(ctx context.Context, b model.Business) (*model.Insight, error) {
	resp, err := a.gen.Generate(ctx, ai.Request{
		Prompt: buildPrompt(b),
		Schema: insightSchema,
	})
	if err != nil {
		return nil, err
	}
	resp.Usage.LogCost(resp.Model, "analyze")

	text := cleanJSON(resp.Text)
	if text == "" {
		return nil, eris.New("analyze: empty response")
	}

	var parsed struct {
		Score          *float64 `json:"score"`
		Summary        *string  `json:"analysis_summary"`
		SuggestedOffer *string  `json:"suggested_offer"`
		IsTarget       *bool    `json:"is_target"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, eris.Wrap(err, "analyze: parse response")
	}
	if parsed.Score == nil || parsed.Summary == nil || parsed.SuggestedOffer == nil || parsed.IsTarget == nil {
		return nil, eris.New("analyze: response missing required fields")
	}
	if *parsed.Score < 0 || *parsed.Score > 100 {
		return nil, eris.Errorf("analyze: score %v outside 0-100", *parsed.Score)
	}

	return &model.Insight{
		Score:          *parsed.Score,
		Summary:        *parsed.Summary,
		SuggestedOffer: *parsed.SuggestedOffer,
		IsTarget:       *parsed.IsTarget,
		Scale:          model.ScaleAnalysis,
	}, nil
}

func buildPrompt(b model.Business) string {
	website := "Non renseigné"
	if b.Website != nil {
		website = *b.Website
	}
	rating := "N/A"
	if b.Rating != nil {
		rating = fmt.Sprintf("%.1f", *b.Rating)
	}
	address := "N/A"
	if b.Address != nil {
		address = *b.Address
	}

	return fmt.Sprintf(`Agis comme un expert en développement commercial et stratégie digitale.
Analyse cette entreprise :
Nom : %s
Site Web : %s
Note : %s
Adresse : %s

Tâche :
1. Détermine si c'est une bonne cible pour une agence de marketing digital / développement web.
2. Donne un score de 0 à 100 (100 = prospect idéal).
3. Rédige un résumé de l'analyse en 2 phrases.
4. Suggère une approche commerciale ("Icebreaker") ou une offre spécifique.

Réponds en JSON uniquement.`, b.Name, website, rating, address)
}

// cleanJSON strips code fences in case the provider ignored the schema
// directive and wrapped its JSON anyway.
func cleanJSON(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}
