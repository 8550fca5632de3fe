package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadforge/prospector-cli/internal/model"
)

func TestScore_NoWebsiteAlwaysSuggestsWebsite(t *testing.T) {
	cases := []model.Business{
		{Name: "Boulangerie Dupont"},
		{Name: "Garage Martin", Rating: model.Ptr(3.2)},
		{Name: "Café Central", Rating: model.Ptr(4.8)},
	}
	for _, b := range cases {
		in := Score(b)
		assert.Equal(t, OfferWebsite, in.SuggestedOffer, "business %q", b.Name)
	}
}

func TestScore_WebsiteNoRating(t *testing.T) {
	b := model.Business{
		Name:    "Cabinet Durand",
		Website: model.Ptr("https://durand.example"),
	}
	in := Score(b)

	assert.Equal(t, 6.0, in.Score, "base 5 + 1 for missing rating")
	assert.False(t, in.IsTarget)
	assert.Equal(t, OfferSEO, in.SuggestedOffer)
	assert.Equal(t, "Aucune note publique", in.Summary)
}

func TestScore_LowRatingWithWebsite(t *testing.T) {
	b := model.Business{
		Name:    "Restaurant Le Vieux Port",
		Website: model.Ptr("https://vieuxport.example"),
		Rating:  model.Ptr(3.1),
	}
	in := Score(b)

	assert.Equal(t, 7.0, in.Score)
	assert.True(t, in.IsTarget)
	assert.Equal(t, OfferReputation, in.SuggestedOffer)
}

func TestScore_StandardProfile(t *testing.T) {
	b := model.Business{
		Name:    "Hôtel des Arts",
		Website: model.Ptr("https://hoteldesarts.example"),
		Rating:  model.Ptr(4.6),
	}
	in := Score(b)

	assert.Equal(t, 5.0, in.Score)
	assert.Equal(t, "Profil standard", in.Summary)
	assert.Equal(t, OfferSEO, in.SuggestedOffer)
	assert.False(t, in.IsTarget)
}

func TestScore_ClampedToTen(t *testing.T) {
	// No website (+3) and low rating (+2) would land on 10 exactly.
	b := model.Business{Name: "Pizzeria Gino", Rating: model.Ptr(2.0)}
	in := Score(b)
	assert.Equal(t, 10.0, in.Score)
	assert.True(t, in.IsTarget)
}

func TestScore_BoundsForAllInputs(t *testing.T) {
	cases := []model.Business{
		{},
		{Name: "X"},
		{Name: "X", Rating: model.Ptr(0.0)},
		{Name: "X", Rating: model.Ptr(5.0), Website: model.Ptr("https://x")},
		{Name: "X", Rating: model.Ptr(3.99)},
		{Name: "X", Website: model.Ptr("https://x")},
	}
	for i, b := range cases {
		in := Score(b)
		assert.GreaterOrEqual(t, in.Score, 0.0, "case %d", i)
		assert.LessOrEqual(t, in.Score, 10.0, "case %d", i)
		assert.Equal(t, model.ScaleHeuristic, in.Scale, "case %d", i)
	}
}

func TestScore_Deterministic(t *testing.T) {
	b := model.Business{Name: "Fleuriste Rose", Rating: model.Ptr(3.5)}
	first := Score(b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Score(b))
	}
}
