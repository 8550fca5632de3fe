package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonical_RescalesHeuristic(t *testing.T) {
	in := Insight{Score: 7, Scale: ScaleHeuristic}
	out := in.Canonical()

	assert.Equal(t, 70.0, out.Score)
	assert.Equal(t, ScaleAnalysis, out.Scale)
}

func TestCanonical_AnalysisUnchanged(t *testing.T) {
	in := Insight{Score: 82, Scale: ScaleAnalysis, Summary: "bonne cible"}
	out := in.Canonical()

	assert.Equal(t, 82.0, out.Score)
	assert.Equal(t, "bonne cible", out.Summary)
}

func TestCanonical_ZeroScaleTreatedAsCanonical(t *testing.T) {
	in := Insight{Score: 40}
	assert.Equal(t, 40.0, in.Canonical().Score)
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusNew, StatusContacted, StatusSigned, StatusIgnored} {
		assert.True(t, s.Valid())
	}
	assert.False(t, Status("Archived").Valid())
	assert.False(t, Status("").Valid())
}

func TestParseStatus_CaseInsensitive(t *testing.T) {
	for in, want := range map[string]Status{
		"new":       StatusNew,
		"contacted": StatusContacted,
		"signed":    StatusSigned,
		"ignored":   StatusIgnored,
		"Contacted": StatusContacted,
		"SIGNED":    StatusSigned,
	} {
		got, ok := ParseStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := ParseStatus("archived")
	assert.False(t, ok)
	_, ok = ParseStatus("")
	assert.False(t, ok)
}
