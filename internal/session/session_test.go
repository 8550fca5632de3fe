package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/prospector-cli/internal/model"
)

func results(ids ...string) []model.SearchResult {
	out := make([]model.SearchResult, len(ids))
	for i, id := range ids {
		out[i] = model.SearchResult{SourceID: id, Business: model.Business{Name: "B-" + id}}
	}
	return out
}

func TestPublish_CurrentGeneration(t *testing.T) {
	m := NewManager()
	gen := m.Begin("boulangerie", "Lyon")

	require.True(t, m.Publish(gen, results("a", "b"), map[string]float64{"a": 8}))

	query, city, rs, scores := m.Current()
	assert.Equal(t, "boulangerie", query)
	assert.Equal(t, "Lyon", city)
	assert.Len(t, rs, 2)
	assert.Equal(t, 8.0, scores["a"])
}

func TestPublish_StaleGenerationDiscarded(t *testing.T) {
	m := NewManager()
	old := m.Begin("boulangerie", "Lyon")
	newer := m.Begin("garage", "Paris")

	require.True(t, m.Publish(newer, results("new"), nil))
	require.False(t, m.Publish(old, results("stale"), nil), "late stale response must not clobber the newer one")

	_, _, rs, _ := m.Current()
	require.Len(t, rs, 1)
	assert.Equal(t, "new", rs[0].SourceID)

	_, found := m.Get("stale")
	assert.False(t, found)
}

func TestGet(t *testing.T) {
	m := NewManager()
	gen := m.Begin("q", "c")
	m.Publish(gen, results("a"), nil)

	r, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "B-a", r.Business.Name)

	_, ok = m.Get("missing")
	assert.False(t, ok)
}

func TestSetEmail(t *testing.T) {
	m := NewManager()
	gen := m.Begin("q", "c")
	m.Publish(gen, results("a", "b"), nil)

	m.SetEmail("a", "contact@b-a.example")

	r, ok := m.Get("a")
	require.True(t, ok)
	require.NotNil(t, r.Business.Email)
	assert.Equal(t, "contact@b-a.example", *r.Business.Email)

	_, _, rs, _ := m.Current()
	require.NotNil(t, rs[0].Business.Email, "the listed copy carries the email too")
}

func TestEnrichInFlightSet(t *testing.T) {
	m := NewManager()

	require.True(t, m.StartEnrich("a"))
	assert.False(t, m.StartEnrich("a"), "duplicate concurrent enrichment is refused")
	assert.True(t, m.StartEnrich("b"), "distinct ids are independent")

	m.EndEnrich("a")
	assert.True(t, m.StartEnrich("a"), "finished enrichment can be re-invoked")
}
