package enrich

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
	text     string
	err      error
	supports map[ai.Capability]bool
	last     ai.Request
}

func (s *stubGenerator) Generate(_ context.Context, req ai.Request) (*ai.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &ai.Response{Text: s.text, Model: "stub"}, nil
}

func (s *stubGenerator) Supports(c ai.Capability) bool { return s.supports[c] }

func TestExtractEmail(t *testing.T) {
	cases := []struct {
		name  string
		text  string
		want  string
		found bool
	}{
		{"plain", "contact@boulangerie-dupont.fr", "contact@boulangerie-dupont.fr", true},
		{"in prose", "L'adresse est contact@garage.example, trouvée sur leur site.", "contact@garage.example", true},
		{"schema json", `{"email": "info@cafe.example"}`, "info@cafe.example", true},
		{"literal null", "null", "", false},
		{"schema null", `{"email": "null"}`, "", false},
		{"null in prose", "Je n'ai rien trouvé : null", "", false},
		{"empty", "   ", "", false},
		{"no email", "Aucune adresse trouvée sur le site.", "", false},
		{"nullement is not null", "nullement@agence.example", "nullement@agence.example", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ExtractEmail(c.text)
			assert.Equal(t, c.found, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFindEmail_Found(t *testing.T) {
	gen := &stubGenerator{text: "contact@dupont.fr"}
	f := NewFinder(gen)

	email, ok, err := f.FindEmail(context.Background(), model.Business{Name: "Boulangerie Dupont"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "contact@dupont.fr", email)
	assert.Contains(t, gen.last.Prompt, "Boulangerie Dupont")
}

func TestFindEmail_SchemaRequestedWithoutWebSearch(t *testing.T) {
	gen := &stubGenerator{
		text: `{"email": "info@x.fr"}`,
		supports: map[ai.Capability]bool{
			ai.CapabilityJSONSchema: true,
		},
	}
	f := NewFinder(gen)

	_, _, err := f.FindEmail(context.Background(), model.Business{Name: "X"})
	require.NoError(t, err)
	assert.NotNil(t, gen.last.Schema)
	assert.False(t, gen.last.WebSearch)
}

func TestFindEmail_WebSearchSuppressesSchema(t *testing.T) {
	// Schema-constrained output and tool use don't combine on Gemini; the
	// search tool wins and the reply falls back to regex extraction.
	gen := &stubGenerator{
		text: "Email trouvé : contact@x.fr",
		supports: map[ai.Capability]bool{
			ai.CapabilityJSONSchema: true,
			ai.CapabilityWebSearch:  true,
		},
	}
	f := NewFinder(gen)

	email, ok, err := f.FindEmail(context.Background(), model.Business{Name: "X"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "contact@x.fr", email)
	assert.True(t, gen.last.WebSearch)
	assert.Nil(t, gen.last.Schema)
}

func TestFindEmail_RegexFallbackWithoutSchema(t *testing.T) {
	gen := &stubGenerator{text: "Voici : info@x.fr"}
	f := NewFinder(gen)

	email, ok, err := f.FindEmail(context.Background(), model.Business{Name: "X"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "info@x.fr", email)
	assert.Nil(t, gen.last.Schema)
	assert.False(t, gen.last.WebSearch)
}

func TestFindEmail_ProviderError(t *testing.T) {
	gen := &stubGenerator{err: eris.New("quota exceeded")}
	f := NewFinder(gen)

	_, ok, err := f.FindEmail(context.Background(), model.Business{Name: "X"})
	require.Error(t, err)
	assert.False(t, ok)
}
