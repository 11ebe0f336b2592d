package responses

import (
	"fmt"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type DBLayer interface {
	AppendEntry(entry models.ResponseEntry) error
	GetEntriesByUser(userID string) ([]models.ResponseEntry, error)
	GetEntriesByEvent(eventID string) ([]models.ResponseEntry, error)
	GetEntriesByPair(userID, eventID string) ([]models.ResponseEntry, error)
}

type KafkaPublisher interface {
	PublishResponseRecorded(entry models.ResponseEntry) error
}

// ResponseService owns the append-only response history: the write path
// always inserts, never updates, and reads are resolved through the fold in
// resolver.go.
type ResponseService struct {
	DB    DBLayer
	Kafka KafkaPublisher
}

func NewResponseService(db DBLayer, kafka KafkaPublisher) *ResponseService {
	return &ResponseService{DB: db, Kafka: kafka}
}

// Record appends a new history entry for the pair. The prior value is read
// first so the row carries both sides of the change. Cleared, seen and
// invited are valid terminal values; clearing a response is an append like
// any other, never a delete.
func (s *ResponseService) Record(userID, eventID string, value models.ResponseValue, invitedBy string) (*models.ResponseEntry, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id", "required")
	}
	if eventID == "" {
		return nil, apperr.Validation("event_id", "required")
	}
	if !value.Valid() {
		return nil, apperr.Validation("response", fmt.Sprintf("unknown value %q", value))
	}

	prior, err := s.ResolveCurrentResponse(userID, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve prior response: %w", err)
	}

	entry := models.ResponseEntry{
		ID:              utils.GenerateResponseID(),
		UserID:          userID,
		EventID:         eventID,
		InvitedByUserID: invitedBy,
		InitialResponse: prior,
		FinalResponse:   value,
		CreatedAt:       time.Now(),
	}

	if err := s.DB.AppendEntry(entry); err != nil {
		return nil, fmt.Errorf("failed to append response entry: %w", err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishResponseRecorded(entry); err != nil {
			fmt.Printf("Kafka publish error (response recorded): %v\n", err)
		}
	}

	return &entry, nil
}

// ResolveCurrentResponse returns the live response for one pair, or
// ResponseNone when the pair has no history.
func (s *ResponseService) ResolveCurrentResponse(userID, eventID string) (models.ResponseValue, error) {
	entries, err := s.DB.GetEntriesByPair(userID, eventID)
	if err != nil {
		return models.ResponseNone, fmt.Errorf("failed to fetch history for user %s event %s: %w", userID, eventID, err)
	}
	return Current(entries, userID, eventID), nil
}

// ResolveLatestByUser returns the current entry per event for one user.
func (s *ResponseService) ResolveLatestByUser(userID string) (map[string]models.ResponseEntry, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id", "required")
	}
	entries, err := s.DB.GetEntriesByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for user %s: %w", userID, err)
	}
	return LatestByUser(entries, userID), nil
}

// ResolveLatestByEvent returns the current entry per user for one event.
func (s *ResponseService) ResolveLatestByEvent(eventID string) (map[string]models.ResponseEntry, error) {
	if eventID == "" {
		return nil, apperr.Validation("event_id", "required")
	}
	entries, err := s.DB.GetEntriesByEvent(eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for event %s: %w", eventID, err)
	}
	return LatestByEvent(entries, eventID), nil
}
