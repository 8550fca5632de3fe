package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/leadforge/prospector-cli/pkg/claude"
)

// ClaudeGenerator adapts the Anthropic client to the Generator interface.
// Claude has no maps-grounding tool and no server-side schema enforcement,
// so schemas are folded into the prompt and searches rely on the Places
// backfill for coordinates.
type ClaudeGenerator struct {
	client claude.Client
	model  string
}

// NewClaudeGenerator wraps an Anthropic client.
func NewClaudeGenerator(client claude.Client, model string) *ClaudeGenerator {
	return &ClaudeGenerator{client: client, model: model}
}

const defaultMaxTokens = 4096

func (g *ClaudeGenerator) Generate(ctx context.Context, req Request) (*Response, error) {
	prompt := req.Prompt
	if req.Schema != nil {
		schemaJSON, err := json.Marshal(req.Schema)
		if err == nil {
			prompt = fmt.Sprintf(
				"%s\n\nRéponds UNIQUEMENT avec un JSON valide conforme à ce schéma, sans Markdown ni texte autour :\n%s",
				prompt, schemaJSON,
			)
		}
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	resp, err := g.client.CreateMessage(ctx, claude.MessageRequest{
		Model:       g.model,
		MaxTokens:   maxTokens,
		System:      req.System,
		Prompt:      prompt,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	usage := Usage{
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
	}
	return &Response{Text: resp.Text, Model: resp.Model, Usage: usage}, nil
}

func (g *ClaudeGenerator) Supports(Capability) bool { return false }
