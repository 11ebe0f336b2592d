package db

import (
	"context"

	"github.com/uptrace/bun"

	"fomo-app/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// AppendEntry inserts one history row. There is deliberately no update or
// delete here: the history is append-only.
func (d *DB) AppendEntry(entry models.ResponseEntry) error {
	_, err := d.Bun.NewInsert().Model(&entry).Exec(context.Background())
	return err
}

func (d *DB) GetEntriesByUser(userID string) ([]models.ResponseEntry, error) {
	var entries []models.ResponseEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Where("user_id = ?", userID).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DB) GetEntriesByEvent(eventID string) ([]models.ResponseEntry, error) {
	var entries []models.ResponseEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Where("event_id = ?", eventID).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DB) GetEntriesByPair(userID, eventID string) ([]models.ResponseEntry, error) {
	var entries []models.ResponseEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Where("user_id = ?", userID).
		Where("event_id = ?", eventID).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *DB) GetAllEntries() ([]models.ResponseEntry, error) {
	var entries []models.ResponseEntry
	err := d.Bun.NewSelect().
		Model(&entries).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// RewriteEventID repoints history rows from one event id to another. This is
// the single permitted mutation of existing rows, used when duplicate events
// are merged.
func (d *DB) RewriteEventID(oldEventID, newEventID string) (int64, error) {
	res, err := d.Bun.NewUpdate().
		Model((*models.ResponseEntry)(nil)).
		Set("event_id = ?", newEventID).
		Where("event_id = ?", oldEventID).
		Exec(context.Background())
	if err != nil {
		return 0, err
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
