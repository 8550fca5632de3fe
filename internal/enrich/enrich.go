// Package enrich discovers a public contact email for a business through the
// AI provider's web search. Schema-constrained output is requested when the
// provider supports it; otherwise the reply is scanned for the first
// email-shaped token. One attempt per request, no retry: a transient failure
// reads the same as "no public email exists".
package enrich

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/leadforge/prospector-cli/internal/ai"
	"github.com/leadforge/prospector-cli/internal/model"
)

var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Finder locates contact emails.
type Finder struct {
	gen ai.Generator
}

// NewFinder creates a Finder on the given provider.
func NewFinder(gen ai.Generator) *Finder {
	return &Finder{gen: gen}
}

var emailSchema = &ai.Schema{
	Type: "object",
	Properties: map[string]*ai.Schema{
		"email": {
			Type:        "string",
			Description: "Adresse email publique de contact, ou la chaîne \"null\" si introuvable",
		},
	},
	Required: []string{"email"},
}

// FindEmail returns the discovered email and whether one was found. The
// error is non-nil only for provider failures; "nothing found" is (_, false,
// nil).
func (f *Finder) FindEmail(ctx context.Context, b model.Business) (string, bool, error) {
	req := ai.Request{
		Prompt:    buildPrompt(b),
		WebSearch: f.gen.Supports(ai.CapabilityWebSearch),
	}
	// Tool use and schema-constrained output are mutually exclusive on
	// Gemini models; with the search tool on, the reply is parsed by regex.
	if !req.WebSearch && f.gen.Supports(ai.CapabilityJSONSchema) {
		req.Schema = emailSchema
	}

	resp, err := f.gen.Generate(ctx, req)
	if err != nil {
		return "", false, err
	}
	resp.Usage.LogCost(resp.Model, "enrich")

	email, ok := ExtractEmail(resp.Text)
	if !ok {
		zap.L().Debug("enrich: no email found",
			zap.String("business", b.Name),
		)
	}
	return email, ok, nil
}

func buildPrompt(b model.Business) string {
	var sb strings.Builder
	sb.WriteString("Cherche sur le web l'adresse email publique de contact de cette entreprise :\n")
	sb.WriteString("Nom : " + b.Name + "\n")
	if b.Website != nil {
		sb.WriteString("Site web : " + *b.Website + "\n")
	}
	if b.Address != nil {
		sb.WriteString("Adresse : " + *b.Address + "\n")
	}
	sb.WriteString("\nRéponds uniquement avec l'adresse email trouvée, ou le mot null si tu n'en trouves aucune.")
	return sb.String()
}

var nullWord = regexp.MustCompile(`(?i)(^|[^a-z])null([^a-z]|$)`)

// ExtractEmail scans free text for the first email-shaped token. The
// provider was asked to answer "null" when nothing was found, so a literal
// null anywhere means "not found" even if prose around it looks email-like.
func ExtractEmail(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || nullWord.MatchString(trimmed) {
		return "", false
	}

	match := emailPattern.FindString(trimmed)
	if match == "" {
		return "", false
	}
	return match, true
}
