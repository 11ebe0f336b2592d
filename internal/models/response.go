package models

import (
	"time"

	"github.com/uptrace/bun"
)

// ResponseValue is the closed set of responses a user can hold for an event.
type ResponseValue string

const (
	ResponseGoing         ResponseValue = "going"
	ResponseInterested    ResponseValue = "interested"
	ResponseMaybe         ResponseValue = "maybe"
	ResponseNotInterested ResponseValue = "not_interested"
	ResponseNotThere      ResponseValue = "not_there"
	ResponseCleared       ResponseValue = "cleared"
	ResponseSeen          ResponseValue = "seen"
	ResponseInvited       ResponseValue = "invited"
	// ResponseNone is the zero value: no response recorded yet.
	ResponseNone ResponseValue = ""
)

// NormalizeResponse maps legacy spellings still present in old history rows
// onto the current enum. "participe" was the original value for going.
func NormalizeResponse(raw string) ResponseValue {
	switch raw {
	case "participe":
		return ResponseGoing
	case "":
		return ResponseNone
	default:
		return ResponseValue(raw)
	}
}

// Valid reports whether v is one of the accepted response values.
func (v ResponseValue) Valid() bool {
	switch v {
	case ResponseGoing, ResponseInterested, ResponseMaybe,
		ResponseNotInterested, ResponseNotThere, ResponseCleared,
		ResponseSeen, ResponseInvited, ResponseNone:
		return true
	}
	return false
}

// IsUnanswered reports whether v counts as "no answer yet" for filtering.
// An invited-but-unanswered event sits in the same bucket as a truly
// unanswered one.
func (v ResponseValue) IsUnanswered() bool {
	return v == ResponseNone || v == ResponseInvited || v == ResponseSeen
}

// ResponseEntry is one immutable row of the response history log. Rows are
// only ever inserted; a response change appends a new row carrying both the
// prior and the new value.
type ResponseEntry struct {
	bun.BaseModel `bun:"table:response_history"`

	ID              string        `bun:"id,pk" json:"id"`
	UserID          string        `bun:"user_id,notnull" json:"user_id"`
	EventID         string        `bun:"event_id,notnull" json:"event_id"`
	InvitedByUserID string        `bun:"invited_by_user_id,nullzero" json:"invited_by_user_id,omitempty"`
	InitialResponse ResponseValue `bun:"initial_response" json:"initial_response"`
	FinalResponse   ResponseValue `bun:"final_response,notnull" json:"final_response"`
	CreatedAt       time.Time     `bun:"created_at,notnull" json:"created_at"`
}
