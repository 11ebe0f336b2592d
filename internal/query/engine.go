package query

import (
	"fmt"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
)

// LatestResolver supplies the viewer's resolved responses, keyed by event.
type LatestResolver interface {
	ResolveLatestByUser(userID string) (map[string]models.ResponseEntry, error)
}

// Engine combines the independent filter dimensions by set intersection:
// an event survives only when every active dimension matches. The engine is
// stateless; identical inputs always produce identical output.
type Engine struct {
	Responses LatestResolver
}

func NewEngine(responses LatestResolver) *Engine {
	return &Engine{Responses: responses}
}

// ApplyFilters filters events against the state. Soft-deleted events never
// match. AND across dimensions; the response dimension alone is OR inside.
func (e *Engine) ApplyFilters(events []models.Event, state FilterState) ([]models.Event, error) {
	return e.applyFilters(events, state, time.Now().In(state.location()))
}

func (e *Engine) applyFilters(events []models.Event, state FilterState, now time.Time) ([]models.Event, error) {
	var latest map[string]models.ResponseEntry
	if len(state.Responses) > 0 {
		if state.ViewerID == "" {
			return nil, apperr.Validation("viewer_id", "required when filtering by response")
		}
		resolved, err := e.Responses.ResolveLatestByUser(state.ViewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve responses for viewer %s: %w", state.ViewerID, err)
		}
		latest = resolved
	}

	filtered := make([]models.Event, 0, len(events))
	for _, event := range events {
		if event.Deleted() {
			continue
		}
		if !MatchPublic(event, state.PublicMode) {
			continue
		}
		if state.Online != nil && !MatchOnline(event, *state.Online) {
			continue
		}
		if state.OrganizerID != "" && !MatchOrganizer(event, state.OrganizerID) {
			continue
		}
		if !MatchQuery(event, state.Query) {
			continue
		}
		if !MatchTags(event, state.Tags) {
			continue
		}
		if !InPeriod(event.StartDate, state.Period, now) {
			continue
		}
		// Past events stay hidden unless asked for, either via the flag or
		// by filtering on the past bucket itself.
		if !state.IncludePast && state.Period != PeriodPast && event.StartDate.Before(now) {
			continue
		}
		if len(state.Responses) > 0 && !matchResponse(latest, event.ID, state.Responses) {
			continue
		}
		filtered = append(filtered, event)
	}
	return filtered, nil
}

// matchResponse is OR across the requested values. ResponseNone means "no
// response yet" and also matches events whose only resolved entry is an
// invite or a seen marker.
func matchResponse(latest map[string]models.ResponseEntry, eventID string, wanted []models.ResponseValue) bool {
	current := models.ResponseNone
	if entry, ok := latest[eventID]; ok {
		current = entry.FinalResponse
	}
	for _, want := range wanted {
		if want == models.ResponseNone {
			if current.IsUnanswered() {
				return true
			}
			continue
		}
		if current == want {
			return true
		}
	}
	return false
}

// MapFilterIDs returns the surviving event ids for the map display. Same
// inputs, same ids: there is no hidden cache.
func (e *Engine) MapFilterIDs(events []models.Event, state FilterState) ([]string, error) {
	filtered, err := e.ApplyFilters(events, state)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(filtered))
	for _, event := range filtered {
		ids = append(ids, event.ID)
	}
	return ids, nil
}
