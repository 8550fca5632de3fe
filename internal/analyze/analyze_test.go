package analyze

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/prospector-cli/internal/ai"
	"github.com/leadforge/prospector-cli/internal/model"
)

type stubGenerator struct {
	text string
	err  error
	last ai.Request
}

func (s *stubGenerator) Generate(_ context.Context, req ai.Request) (*ai.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Response{Text: s.text, Model: "stub"}, nil
}

func (s *stubGenerator) Supports(ai.Capability) bool { return true }

func TestAnalyze_ParsesInsight(t *testing.T) {
	gen := &stubGenerator{
		text: `{"score": 85, "analysis_summary": "Entreprise sans site web avec une note moyenne. Forte marge de progression digitale.", "suggested_offer": "Création Site Web", "is_target": true}`,
	}
	a := New(gen)

	in, err := a.Analyze(context.Background(), model.Business{Name: "Boulangerie Dupont"})
	require.NoError(t, err)
	assert.Equal(t, 85.0, in.Score)
	assert.Equal(t, model.ScaleAnalysis, in.Scale)
	assert.True(t, in.IsTarget)
	assert.NotNil(t, gen.last.Schema, "analysis requests schema-constrained output")
	assert.Contains(t, gen.last.Prompt, "Boulangerie Dupont")
}

func TestAnalyze_FenceWrappedJSON(t *testing.T) {
	gen := &stubGenerator{
		text: "```json\n{\"score\": 20, \"analysis_summary\": \"s\", \"suggested_offer\": \"o\", \"is_target\": false}\n```",
	}
	in, err := New(gen).Analyze(context.Background(), model.Business{Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, 20.0, in.Score)
	assert.False(t, in.IsTarget)
}

func TestAnalyze_ProviderErrorPropagates(t *testing.T) {
	gen := &stubGenerator{err: eris.New("quota exceeded")}
	in, err := New(gen).Analyze(context.Background(), model.Business{Name: "X"})

	require.Error(t, err)
	assert.Nil(t, in, "failure must not produce a zero-score insight")
}

func TestAnalyze_MalformedResponse(t *testing.T) {
	for _, text := range []string{"", "pas du JSON", `{"score": 50}`} {
		gen := &stubGenerator{text: text}
		in, err := New(gen).Analyze(context.Background(), model.Business{Name: "X"})
		require.Error(t, err, "text=%q", text)
		assert.Nil(t, in)
	}
}

func TestAnalyze_ScoreOutOfRange(t *testing.T) {
	gen := &stubGenerator{
		text: `{"score": 150, "analysis_summary": "s", "suggested_offer": "o", "is_target": true}`,
	}
	_, err := New(gen).Analyze(context.Background(), model.Business{Name: "X"})
	require.Error(t, err)
}

func TestAnalyze_PromptShowsUnknownFields(t *testing.T) {
	gen := &stubGenerator{
		text: `{"score": 50, "analysis_summary": "s", "suggested_offer": "o", "is_target": false}`,
	}
	_, err := New(gen).Analyze(context.Background(), model.Business{Name: "Sans Site"})
	require.NoError(t, err)
	assert.Contains(t, gen.last.Prompt, "Non renseigné")
	assert.Contains(t, gen.last.Prompt, "N/A")
}
