package events

import (
	"fmt"
	"strings"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type DBLayer interface {
	CreateEvent(event models.Event) error
	GetEventByID(id string) (*models.Event, error)
	OverwriteEvent(event models.Event) error
	SoftDeleteEvent(id string, deletedAt time.Time) error
	GetActiveEvents() ([]models.Event, error)
}

type KafkaPublisher interface {
	PublishEventCreated(event models.Event) error
}

// EventService owns the event lifecycle: create, full-row overwrite update,
// soft delete. Events are never physically removed.
type EventService struct {
	DB    DBLayer
	Kafka KafkaPublisher
}

func NewEventService(db DBLayer, kafka KafkaPublisher) *EventService {
	return &EventService{DB: db, Kafka: kafka}
}

func (s *EventService) Create(event models.Event) (*models.Event, error) {
	if strings.TrimSpace(event.Title) == "" {
		return nil, apperr.Validation("title", "required")
	}
	if event.OrganizerID == "" {
		return nil, apperr.Validation("organizer_id", "required")
	}
	if event.StartDate.IsZero() {
		return nil, apperr.Validation("start_date", "required")
	}
	if err := validateTags(event.Tags); err != nil {
		return nil, err
	}

	if event.ID == "" {
		event.ID = utils.GenerateEventID()
	} else {
		existing, err := s.DB.GetEventByID(event.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check event %s: %w", event.ID, err)
		}
		if existing != nil {
			return nil, apperr.Conflict("event", event.ID)
		}
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	event.DeletedAt = time.Time{}

	if err := s.DB.CreateEvent(event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishEventCreated(event); err != nil {
			fmt.Printf("Kafka publish error (event created): %v\n", err)
		}
	}

	return &event, nil
}

func (s *EventService) Get(id string) (*models.Event, error) {
	if id == "" {
		return nil, apperr.Validation("id", "required")
	}
	event, err := s.DB.GetEventByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", id, err)
	}
	if event == nil || event.Deleted() {
		return nil, apperr.NotFound("event", id)
	}
	return event, nil
}

// Overwrite replaces the whole row. The update model is replace-on-write:
// callers send the full event, not a patch. Created/deleted stamps survive.
func (s *EventService) Overwrite(id string, update models.Event) (*models.Event, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := validateTags(update.Tags); err != nil {
		return nil, err
	}

	update.ID = existing.ID
	update.CreatedAt = existing.CreatedAt
	update.DeletedAt = existing.DeletedAt
	update.UpdatedAt = time.Now()

	if err := s.DB.OverwriteEvent(update); err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", id, err)
	}
	return &update, nil
}

// Delete soft-deletes the event; the row stays behind its deletion stamp.
func (s *EventService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.DB.SoftDeleteEvent(id, time.Now()); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// ListActive returns all live events, the snapshot the query engine runs
// over.
func (s *EventService) ListActive() ([]models.Event, error) {
	events, err := s.DB.GetActiveEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

// CountTags recomputes the tag usage aggregate by scanning every live
// event's tags. The aggregate is derived, never stored.
func (s *EventService) CountTags() (map[string]int, error) {
	events, err := s.ListActive()
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, event := range events {
		for _, tag := range event.Tags {
			counts[strings.ToLower(tag)]++
		}
	}
	return counts, nil
}

func validateTags(tags []string) error {
	if len(tags) > models.MaxEventTags {
		return apperr.Validation("tags", fmt.Sprintf("at most %d tags allowed", models.MaxEventTags))
	}
	return nil
}
