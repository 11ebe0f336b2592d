package models

import (
	"time"

	"github.com/uptrace/bun"
)

// MaxEventTags caps the free-form tags stored per event.
const MaxEventTags = 10

type Event struct {
	bun.BaseModel `bun:"table:events"`

	ID          string    `bun:"id,pk" json:"id"`
	Title       string    `bun:"title,notnull" json:"title"`
	Description string    `bun:"description" json:"description"`
	StartDate   time.Time `bun:"start_date,notnull" json:"start_date"`
	EndDate     time.Time `bun:"end_date" json:"end_date"`
	VenueName   string    `bun:"venue_name" json:"venue_name"`
	VenueAddr   string    `bun:"venue_addr" json:"venue_addr"`
	Lat         float64   `bun:"lat" json:"lat"`
	Lng         float64   `bun:"lng" json:"lng"`
	OrganizerID string    `bun:"organizer_id,notnull" json:"organizer_id"`
	IsPublic    bool      `bun:"is_public" json:"is_public"`
	IsOnline    bool      `bun:"is_online" json:"is_online"`
	Tags        []string  `bun:"tags,array" json:"tags"`
	CoverURL    string    `bun:"cover_url" json:"cover_url"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time `bun:"updated_at" json:"updated_at"`
	DeletedAt   time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

// Deleted reports whether the event has been soft-deleted. Events are never
// physically removed.
func (e Event) Deleted() bool {
	return !e.DeletedAt.IsZero()
}
