package query

import (
	"strings"

	"fomo-app/internal/models"
)

// TagAll is the sentinel tag value that matches every event.
const TagAll = "all"

// MatchPublic partitions the event set: for any event exactly one of
// MatchPublic(e, true) / MatchPublic(e, false) holds.
func MatchPublic(event models.Event, isPublicMode bool) bool {
	return event.IsPublic == isPublicMode
}

func MatchOnline(event models.Event, wantOnline bool) bool {
	return event.IsOnline == wantOnline
}

func MatchOrganizer(event models.Event, organizerID string) bool {
	return event.OrganizerID == organizerID
}

// MatchQuery does a case-insensitive substring match against the event's
// title, description and venue fields, OR across fields.
func MatchQuery(event models.Event, text string) bool {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return true
	}
	for _, field := range []string{event.Title, event.Description, event.VenueName, event.VenueAddr} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// MatchTags is true when the event's tags intersect the requested set (OR
// semantics). The sentinel TagAll anywhere in the request matches every
// event.
func MatchTags(event models.Event, tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if tag == TagAll {
			return true
		}
		for _, eventTag := range event.Tags {
			if strings.EqualFold(eventTag, tag) {
				return true
			}
		}
	}
	return false
}
