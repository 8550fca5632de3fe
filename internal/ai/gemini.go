package ai

import (
	"context"

	"google.golang.org/genai"

	"github.com/leadforge/prospector-cli/pkg/gemini"
)

// GeminiGenerator adapts the Gemini client to the Generator interface.
// Gemini is the only provider with maps grounding, so it is the default.
type GeminiGenerator struct {
	client        gemini.Client
	model         string
	analysisModel string
}

// NewGeminiGenerator wraps a Gemini client. analysisModel handles the
// schema-constrained deep-analysis calls; model handles everything else.
func NewGeminiGenerator(client gemini.Client, model, analysisModel string) *GeminiGenerator {
	if analysisModel == "" {
		analysisModel = model
	}
	return &GeminiGenerator{client: client, model: model, analysisModel: analysisModel}
}

func (g *GeminiGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	model := g.model
	if req.Schema != nil {
		model = g.analysisModel
	}

	resp, err := g.client.GenerateText(ctx, gemini.GenerateRequest{
		Model:          model,
		Prompt:         req.Prompt,
		System:         req.System,
		Temperature:    req.Temperature,
		MaxTokens:      req.MaxTokens,
		ResponseSchema: toGenaiSchema(req.Schema),
		MapsGrounding:  req.Grounding,
		WebSearch:      req.WebSearch,
	})
	if err != nil {
		return nil, err
	}

	usage := Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}
	return &Response{Text: resp.Text, Model: model, Usage: usage}, nil
}

func (g *GeminiGenerator) Supports(c Capability) bool {
	switch c {
	case CapabilityMapsGrounding, CapabilityWebSearch, CapabilityJSONSchema:
		return true
	}
	return false
}

func toGenaiSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        toGenaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
		Items:       toGenaiSchema(s.Items),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenaiSchema(prop)
		}
	}
	return out
}

func toGenaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	}
	return genai.TypeUnspecified
}
