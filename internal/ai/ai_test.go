package ai

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/prospector-cli/internal/config"
	"github.com/leadforge/prospector-cli/pkg/claude"
)

func TestEstimateCost(t *testing.T) {
	u := Usage{InputTokens: 1_000_000, OutputTokens: 500_000}

	assert.InDelta(t, 0.30+1.25, u.EstimateCost("gemini-2.5-flash"), 1e-9)
	assert.Zero(t, u.EstimateCost("unknown-model"))
}

type countingGenerator struct {
	calls int
	caps  map[Capability]bool
}

func (c *countingGenerator) Generate(context.Context, Request) (*Response, error) {
	c.calls++
	return &Response{Text: "ok"}, nil
}

func (c *countingGenerator) Supports(capability Capability) bool { return c.caps[capability] }

func TestWithRateLimitPassthrough(t *testing.T) {
	inner := &countingGenerator{}
	assert.Same(t, Generator(inner), WithRateLimit(inner, 0, 3))
}

func TestWithRateLimitDelegates(t *testing.T) {
	inner := &countingGenerator{caps: map[Capability]bool{CapabilityWebSearch: true}}
	g := WithRateLimit(inner, 100, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	for i := 0; i < 3; i++ {
		_, err := g.Generate(ctx, Request{Prompt: "x"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, inner.calls)
	assert.True(t, g.Supports(CapabilityWebSearch))
	assert.False(t, g.Supports(CapabilityMapsGrounding))
}

func TestWithRateLimitHonorsContext(t *testing.T) {
	inner := &countingGenerator{}
	g := WithRateLimit(inner, 0.001, 1)

	ctx, cancel := context.WithCancel(context.Background())
	_, err := g.Generate(ctx, Request{}) // consumes the single burst token
	require.NoError(t, err)

	cancel()
	_, err = g.Generate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

type stubClaude struct {
	lastReq claude.MessageRequest
	resp    claude.MessageResponse
}

func (s *stubClaude) CreateMessage(_ context.Context, req claude.MessageRequest) (*claude.MessageResponse, error) {
	s.lastReq = req
	return &s.resp, nil
}

func TestClaudeGeneratorFoldsSchemaIntoPrompt(t *testing.T) {
	stub := &stubClaude{resp: claude.MessageResponse{Text: "{}", Model: "claude-haiku-4-5-20251001"}}
	g := NewClaudeGenerator(stub, "claude-haiku-4-5-20251001")

	_, err := g.Generate(context.Background(), Request{
		Prompt: "Analyse cette entreprise",
		Schema: &Schema{Type: "object", Properties: map[string]*Schema{"score": {Type: "number"}}},
	})
	require.NoError(t, err)

	assert.Contains(t, stub.lastReq.Prompt, "Analyse cette entreprise")
	assert.Contains(t, stub.lastReq.Prompt, `"score"`)
	assert.Equal(t, int64(defaultMaxTokens), stub.lastReq.MaxTokens)
}

func TestClaudeGeneratorSupportsNothing(t *testing.T) {
	g := NewClaudeGenerator(&stubClaude{}, "claude-haiku-4-5-20251001")

	assert.False(t, g.Supports(CapabilityMapsGrounding))
	assert.False(t, g.Supports(CapabilityWebSearch))
	assert.False(t, g.Supports(CapabilityJSONSchema))
}

func TestNewRequiresProviderKey(t *testing.T) {
	_, err := New(context.Background(), config.AIConfig{Provider: "gemini"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gemini_api_key")

	_, err = New(context.Background(), config.AIConfig{Provider: "anthropic"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic_api_key")

	_, err = New(context.Background(), config.AIConfig{Provider: "mistral"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral")
}
