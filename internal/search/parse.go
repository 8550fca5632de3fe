package search

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/leadforge/prospector-cli/internal/model"
)

// wireBusiness is the object shape each strategy prompt requests. Pointer
// fields absorb the provider's habit of emitting null for unknown values.
type wireBusiness struct {
	Name      string   `json:"name"`
	Address   *string  `json:"address"`
	Rating    *float64 `json:"rating"`
	Website   *string  `json:"website"`
	Phone     *string  `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// cleanResponse strips the markdown code fences and trailing commas LLMs
// wrap JSON in, and isolates the outermost JSON array when the provider
// added prose around it.
func cleanResponse(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	// Some responses narrate before or after the array.
	if start := strings.Index(cleaned, "["); start > 0 {
		if end := strings.LastIndex(cleaned, "]"); end > start {
			cleaned = cleaned[start : end+1]
		}
	}

	return trailingComma.ReplaceAllString(cleaned, "$1")
}

// parseResults turns one raw strategy response into businesses. Entries
// without a name are dropped; empty strings are normalized to nil.
func parseResults(text string) ([]wireBusiness, error) {
	cleaned := cleanResponse(text)
	if cleaned == "" {
		return nil, eris.New("search: empty response")
	}

	var items []wireBusiness
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, eris.Wrap(err, "search: parse response")
	}

	kept := items[:0]
	for _, it := range items {
		it.Name = strings.TrimSpace(it.Name)
		if it.Name == "" {
			continue
		}
		it.Address = nonEmpty(it.Address)
		it.Website = nonEmpty(it.Website)
		it.Phone = nonEmpty(it.Phone)
		kept = append(kept, it)
	}
	return kept, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// toResult converts a parsed business into a SearchResult with the given
// session source id. Coordinates stay nil unless the provider supplied both;
// a hardcoded city-center fallback would only produce misleading markers.
func toResult(sourceID string, it wireBusiness) model.SearchResult {
	r := model.SearchResult{
		SourceID: sourceID,
		Business: model.Business{
			Name:    it.Name,
			Rating:  it.Rating,
			Address: it.Address,
			Website: it.Website,
			Phone:   it.Phone,
		},
	}
	if it.Latitude != nil && it.Longitude != nil {
		r.Location = &model.Location{Lat: *it.Latitude, Lng: *it.Longitude}
	}
	return r
}
