package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status tracks where a prospect sits in the outreach funnel. There is no
// enforced transition graph; any status may move to any other.
type Status string

const (
	StatusNew       Status = "New"
	StatusContacted Status = "Contacted"
	StatusSigned    Status = "Signed"
	StatusIgnored   Status = "Ignored"
)

var statuses = []Status{StatusNew, StatusContacted, StatusSigned, StatusIgnored}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusSigned, StatusIgnored:
		return true
	}
	return false
}

// ParseStatus maps user input onto a Status, ignoring case, so "contacted"
// and "Contacted" both resolve to StatusContacted.
func ParseStatus(s string) (Status, bool) {
	for _, known := range statuses {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Business holds everything we know about a candidate business. Optional
// fields are pointers: nil means "unknown", never empty-string.
type Business struct {
	Name            string   `json:"name"`
	Rating          *float64 `json:"rating,omitempty"`
	UserRatingCount *int     `json:"userRatingCount,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	Website         *string  `json:"website,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Email           *string  `json:"email,omitempty"`
	PlaceID         *string  `json:"placeId,omitempty"`
}

// SearchResult is an ephemeral, session-scoped candidate returned by a
// search. It is never persisted directly; saving one materializes a Prospect.
// Location is nil when no provider supplied coordinates.
type SearchResult struct {
	SourceID string    `json:"source_id"`
	Business Business  `json:"business_data"`
	Location *Location `json:"location,omitempty"`
}

// NewProspect materializes a search result into a CRM prospect. The insight,
// if any, is stored on the canonical scale regardless of which adapter
// produced it.
func NewProspect(r SearchResult, insight *Insight) Prospect {
	p := Prospect{
		ID:        uuid.New().String(),
		Business:  r.Business,
		Location:  r.Location,
		Status:    StatusNew,
		CreatedAt: time.Now().UTC(),
	}
	if insight != nil {
		canonical := insight.Canonical()
		p.Insight = &canonical
	}
	return p
}

// Prospect is a business persisted into the CRM tracking list.
type Prospect struct {
	ID        string    `json:"id"`
	Business  Business  `json:"business_data"`
	Location  *Location `json:"location,omitempty"`
	Insight   *Insight  `json:"ai_insight,omitempty"`
	Status    Status    `json:"user_status"`
	CreatedAt time.Time `json:"createdAt"`
}
