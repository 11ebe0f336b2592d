package db_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fomo-app/internal/friendship"
	"fomo-app/internal/friendship/db"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

func setupTestDB(t *testing.T) *db.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	err = bunDB.ResetModel(context.Background(), (*models.Friendship)(nil))
	require.NoError(t, err)

	return &db.DB{Bun: bunDB}
}

func TestSoftDeleteAndRevive(t *testing.T) {
	store := setupTestDB(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := models.Friendship{
		ID:         "frd_alice_bob",
		FromUserID: "alice",
		ToUserID:   "bob",
		Status:     models.FriendshipActive,
		CreatedAt:  at,
		ModifiedAt: at,
	}
	require.NoError(t, store.CreateFriendship(row))
	require.NoError(t, store.SoftDeleteFriendship(row.ID, at.Add(time.Hour)))

	dead, err := store.GetFriendshipByID(row.ID)
	require.NoError(t, err)
	require.NotNil(t, dead)
	assert.True(t, dead.Deleted())

	dead.Status = models.FriendshipPending
	dead.CreatedAt = at.Add(2 * time.Hour)
	dead.ModifiedAt = at.Add(2 * time.Hour)
	dead.DeletedAt = time.Time{}
	require.NoError(t, store.ReviveFriendship(*dead))

	revived, err := store.GetFriendshipByID(row.ID)
	require.NoError(t, err)
	require.NotNil(t, revived)
	assert.False(t, revived.Deleted())
	assert.Equal(t, models.FriendshipPending, revived.Status)

	// Revived rows count as active again.
	active, err := store.GetActiveFriendshipsByUser("alice")
	assert.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSameDirectionRecreateAfterDelete(t *testing.T) {
	store := setupTestDB(t)
	svc := friendship.NewFriendshipService(store, nil, nil)

	created, err := svc.Upsert("alice", "bob", models.FriendshipPending)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(created.ID))

	// Unfriend then re-befriend from the same side. The deterministic id
	// collides with the soft-deleted row, so the upsert must revive it
	// rather than fail on insert.
	recreated, err := svc.Upsert("alice", "bob", models.FriendshipPending)
	require.NoError(t, err)
	assert.Equal(t, "created", recreated.Action)
	assert.Equal(t, utils.GenerateFriendshipID("alice", "bob"), recreated.ID)

	resolved, err := svc.Get(recreated.ID)
	require.NoError(t, err)
	assert.False(t, resolved.Deleted())
	assert.Equal(t, models.FriendshipPending, resolved.Status)
}
