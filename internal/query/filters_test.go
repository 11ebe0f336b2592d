package query_test

import (
	"testing"

	"fomo-app/internal/models"
	"fomo-app/internal/query"

	"github.com/stretchr/testify/assert"
)

func TestMatchPublicPartitions(t *testing.T) {
	public := models.Event{ID: "event1", IsPublic: true}
	private := models.Event{ID: "event2", IsPublic: false}

	// Every event matches exactly one mode.
	assert.True(t, query.MatchPublic(public, true))
	assert.False(t, query.MatchPublic(public, false))
	assert.False(t, query.MatchPublic(private, true))
	assert.True(t, query.MatchPublic(private, false))
}

func TestMatchQuery(t *testing.T) {
	event := models.Event{
		Title:       "Sunset Rooftop Picnic",
		Description: "Bring your own blanket",
		VenueName:   "Le Perchoir",
		VenueAddr:   "14 Rue Crespin du Gast, Paris",
	}

	// Test case 1: empty query matches everything
	assert.True(t, query.MatchQuery(event, ""))
	assert.True(t, query.MatchQuery(event, "   "))

	// Test case 2: case-insensitive, any field
	assert.True(t, query.MatchQuery(event, "PICNIC"))
	assert.True(t, query.MatchQuery(event, "blanket"))
	assert.True(t, query.MatchQuery(event, "perchoir"))
	assert.True(t, query.MatchQuery(event, "paris"))

	// Test case 3: no match
	assert.False(t, query.MatchQuery(event, "karaoke"))
}

func TestMatchTags(t *testing.T) {
	event := models.Event{Tags: []string{"music", "Outdoor"}}
	bare := models.Event{}

	// Empty request matches everything.
	assert.True(t, query.MatchTags(event, nil))
	assert.True(t, query.MatchTags(bare, nil))

	// The "all" sentinel matches everything, even tagless events.
	assert.True(t, query.MatchTags(event, []string{query.TagAll}))
	assert.True(t, query.MatchTags(bare, []string{query.TagAll}))
	assert.True(t, query.MatchTags(bare, []string{"music", query.TagAll}))

	// OR semantics, case-insensitive.
	assert.True(t, query.MatchTags(event, []string{"outdoor"}))
	assert.True(t, query.MatchTags(event, []string{"food", "MUSIC"}))
	assert.False(t, query.MatchTags(event, []string{"food", "sport"}))
	assert.False(t, query.MatchTags(bare, []string{"music"}))
}

func TestMatchOrganizerAndOnline(t *testing.T) {
	event := models.Event{OrganizerID: "usr_1", IsOnline: true}

	assert.True(t, query.MatchOrganizer(event, "usr_1"))
	assert.False(t, query.MatchOrganizer(event, "usr_2"))
	assert.True(t, query.MatchOnline(event, true))
	assert.False(t, query.MatchOnline(event, false))
}
