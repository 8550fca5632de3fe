// Package gemini wraps the Google GenAI SDK behind the small surface this
// tool needs: one-shot text generation with optional Google Maps grounding
// or schema-constrained JSON output. The two options are mutually exclusive
// on current Gemini models; callers pick one per request.
package gemini

import (
	"context"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"
)

// Client performs Gemini generation calls.
type Client interface {
	GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is a single generation call.
type GenerateRequest struct {
	Model       string
	Prompt      string
	System      string
	Temperature *float64
	MaxTokens   int64

	// ResponseSchema constrains output to JSON matching the schema.
	// Incompatible with the grounding and search tools.
	ResponseSchema *genai.Schema
	// MapsGrounding enables the Google Maps tool.
	MapsGrounding bool
	// WebSearch enables the Google Search tool.
	WebSearch bool
}

// GenerateResponse is the text and usage of a completed call.
type GenerateResponse struct {
	Text  string
	Usage TokenUsage
}

// TokenUsage tracks token consumption.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// sdkClient implements Client using google.golang.org/genai.
type sdkClient struct {
	client *genai.Client
}

// NewClient creates a Gemini client against the Gemini API backend.
func NewClient(ctx context.Context, apiKey string) (Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, eris.Wrap(err, "gemini: create client")
	}
	return &sdkClient{client: client}, nil
}

func (c *sdkClient) GenerateText(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if req.ResponseSchema != nil && (req.MapsGrounding || req.WebSearch) {
		return nil, eris.New("gemini: response schema and tool use are mutually exclusive")
	}

	config := &genai.GenerateContentConfig{}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature != nil {
		config.Temperature = genai.Ptr(float32(*req.Temperature))
	}
	if req.MaxTokens > 0 {
		config.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.ResponseSchema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = req.ResponseSchema
	}
	if req.MapsGrounding {
		config.Tools = append(config.Tools, &genai.Tool{GoogleMaps: &genai.GoogleMaps{}})
	}
	if req.WebSearch {
		config.Tools = append(config.Tools, &genai.Tool{GoogleSearch: &genai.GoogleSearch{}})
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), config)
	if err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	out := &GenerateResponse{Text: resp.Text()}
	if resp.UsageMetadata != nil {
		out.Usage = TokenUsage{
			InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}
