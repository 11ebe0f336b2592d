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

func (d *DB) CreateUser(user models.User) error {
	_, err := d.Bun.NewInsert().Model(&user).Exec(context.Background())
	return err
}

func (d *DB) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("id = ?", id).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail expects the caller to have normalized the email already;
// the comparison here is exact against the stored canonical form.
func (d *DB) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := d.Bun.NewSelect().
		Model(&user).
		Where("lower(email) = ?", email).
		Limit(1).
		Scan(context.Background())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *DB) OverwriteUser(user models.User) error {
	_, err := d.Bun.NewUpdate().
		Model(&user).
		WherePK().
		Exec(context.Background())
	return err
}

func (d *DB) SoftDeleteUser(id string, deletedAt time.Time) error {
	_, err := d.Bun.NewUpdate().
		Model((*models.User)(nil)).
		Set("deleted_at = ?", deletedAt).
		Where("id = ?", id).
		Exec(context.Background())
	return err
}
