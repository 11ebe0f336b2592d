package responses

import (
	"fomo-app/internal/models"
)

// PairKey identifies one (user, event) response stream.
type PairKey struct {
	UserID  string
	EventID string
}

// Resolve folds a history snapshot into the single current entry per
// (user, event) pair. Entries may arrive in any order; the entry with the
// greatest CreatedAt wins. Two entries with identical CreatedAt are broken
// by the greater entry ID so the result never depends on slice order.
//
// Pairs with no entries are simply absent from the result; callers treat
// absence as "no response yet".
func Resolve(entries []models.ResponseEntry) map[PairKey]models.ResponseEntry {
	resolved := make(map[PairKey]models.ResponseEntry)
	for _, entry := range entries {
		key := PairKey{UserID: entry.UserID, EventID: entry.EventID}
		current, ok := resolved[key]
		if !ok || newer(entry, current) {
			resolved[key] = entry
		}
	}
	return resolved
}

// newer reports whether a should replace b as the current entry.
func newer(a, b models.ResponseEntry) bool {
	if a.CreatedAt.After(b.CreatedAt) {
		return true
	}
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return false
}

// LatestByUser restricts the fold to one user and keys the result by event.
func LatestByUser(entries []models.ResponseEntry, userID string) map[string]models.ResponseEntry {
	latest := make(map[string]models.ResponseEntry)
	for _, entry := range entries {
		if entry.UserID != userID {
			continue
		}
		current, ok := latest[entry.EventID]
		if !ok || newer(entry, current) {
			latest[entry.EventID] = entry
		}
	}
	return latest
}

// LatestByEvent restricts the fold to one event and keys the result by user.
func LatestByEvent(entries []models.ResponseEntry, eventID string) map[string]models.ResponseEntry {
	latest := make(map[string]models.ResponseEntry)
	for _, entry := range entries {
		if entry.EventID != eventID {
			continue
		}
		current, ok := latest[entry.UserID]
		if !ok || newer(entry, current) {
			latest[entry.UserID] = entry
		}
	}
	return latest
}

// Current returns the live response value for one pair, or ResponseNone when
// no entry exists.
func Current(entries []models.ResponseEntry, userID, eventID string) models.ResponseValue {
	var current models.ResponseEntry
	found := false
	for _, entry := range entries {
		if entry.UserID != userID || entry.EventID != eventID {
			continue
		}
		if !found || newer(entry, current) {
			current = entry
			found = true
		}
	}
	if !found {
		return models.ResponseNone
	}
	return current.FinalResponse
}
