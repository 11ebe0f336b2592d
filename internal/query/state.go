package query

import (
	"time"

	"fomo-app/internal/models"
)

// FilterState is the full filter selection for one request. It replaces the
// app-wide mutable filter context of the old client: every call carries its
// own state, nothing is shared.
type FilterState struct {
	ViewerID    string                 `json:"viewer_id"`
	PublicMode  bool                   `json:"public_mode"`
	Online      *bool                  `json:"online,omitempty"`
	Query       string                 `json:"query,omitempty"`
	Tags        []string               `json:"tags,omitempty"`
	Period      Period                 `json:"period,omitempty"`
	OrganizerID string                 `json:"organizer_id,omitempty"`
	Responses   []models.ResponseValue `json:"responses,omitempty"`
	IncludePast bool                   `json:"include_past"`

	// Location is the viewer's time zone for calendar-day boundaries.
	// Defaults to time.Local.
	Location *time.Location `json:"-"`
}

func (s FilterState) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}
