package model

// Insight scales. Producers emit scores on different scales: the local
// heuristic on 0-10, the AI deep analysis on 0-100. The CRM stores the
// canonical 0-100 scale only; Canonical() performs the rescale.
const (
	ScaleHeuristic = 10
	ScaleAnalysis  = 100
)

// Insight is a qualification verdict for a business, produced either by the
// local heuristic or by the AI deep-analysis adapter.
type Insight struct {
	Score          float64 `json:"score"`
	Summary        string  `json:"analysis_summary"`
	SuggestedOffer string  `json:"suggested_offer"`
	IsTarget       bool    `json:"is_target"`

	// Scale is the maximum of the producer's score range. Zero is treated
	// as ScaleAnalysis so insights stored before this field existed keep
	// their value.
	Scale int `json:"scale,omitempty"`
}

// Canonical returns a copy rescaled to 0-100. Insights already on the
// canonical scale are returned unchanged.
func (in Insight) Canonical() Insight {
	scale := in.Scale
	if scale == 0 {
		scale = ScaleAnalysis
	}
	out := in
	out.Score = in.Score * ScaleAnalysis / float64(scale)
	out.Scale = ScaleAnalysis
	return out
}
