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

// GetFriendshipByID returns the row for id, soft-deleted or not, or nil when
// no row exists. Callers decide whether a deleted row counts.
func (d *DB) GetFriendshipByID(id string) (*models.Friendship, error) {
	var friendship models.Friendship
	err := d.Bun.NewSelect().
		Model(&friendship).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &friendship, nil
}

func (d *DB) CreateFriendship(friendship models.Friendship) error {
	_, err := d.Bun.NewInsert().Model(&friendship).Exec(context.Background())
	return err
}

func (d *DB) UpdateFriendship(friendship models.Friendship) error {
	_, err := d.Bun.NewUpdate().
		Model(&friendship).
		Column("status", "modified_at").
		Where("id = ?", friendship.ID).
		Exec(context.Background())
	return err
}

// ReviveFriendship clears the deletion stamp and rewrites the lifecycle
// columns, turning a soft-deleted row back into the pair's live row.
func (d *DB) ReviveFriendship(friendship models.Friendship) error {
	_, err := d.Bun.NewUpdate().
		Model(&friendship).
		Column("status", "created_at", "modified_at", "deleted_at").
		Where("id = ?", friendship.ID).
		Exec(context.Background())
	return err
}

// SoftDeleteFriendship stamps the deletion timestamp; the row is never
// physically removed.
func (d *DB) SoftDeleteFriendship(id string, deletedAt time.Time) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.Friendship)(nil)).
		Set("deleted_at = ?", deletedAt).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}

func (d *DB) GetActiveFriendshipsByUser(userID string) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := d.Bun.NewSelect().
		Model(&friendships).
		Where("deleted_at IS NULL").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("from_user_id = ?", userID).WhereOr("to_user_id = ?", userID)
		}).
		Scan(context.Background())
	if err != nil {
		return nil, err
	}
	return friendships, nil
}
