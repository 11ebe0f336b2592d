package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"fomo-app/internal/models"
)

type DB struct {
	Bun *bun.DB
}

func (d *DB) CreateEvent(event models.Event) error {
	_, err := d.Bun.NewInsert().Model(&event).Exec(context.Background())
	return err
}

// GetEventByID returns the row for id including soft-deleted rows, or nil
// when no row exists.
func (d *DB) GetEventByID(id string) (*models.Event, error) {
	var event models.Event
	err := d.Bun.NewSelect().
		Model(&event).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// OverwriteEvent replaces every column of the row. Replace-on-write is the
// only update path for events.
func (d *DB) OverwriteEvent(event models.Event) error {
	_, err := d.Bun.NewUpdate().
		Model(&event).
		WherePK().
		Exec(context.Background())
	return err
}

func (d *DB) SoftDeleteEvent(id string, deletedAt time.Time) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Event)(nil)).
		Set("deleted_at = ?", deletedAt).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

func (d *DB) GetActiveEvents() ([]models.Event, error) {
	var events []models.Event
	err := d.Bun.NewSelect().
		Model(&events).
		Where("deleted_at IS NULL").
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return events, nil
}
