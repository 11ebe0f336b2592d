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

	"fomo-app/internal/models"
	"fomo-app/internal/responses/db"
)

func setupTestDB(t *testing.T) *db.DB {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file::memory:?cache=shared")
	require.NoError(t, err)

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	err = bunDB.ResetModel(context.Background(), (*models.ResponseEntry)(nil))
	require.NoError(t, err)

	return &db.DB{Bun: bunDB}
}

func TestAppendAndGetEntries(t *testing.T) {
	store := setupTestDB(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []models.ResponseEntry{
		{ID: "rsp_1", UserID: "user1", EventID: "event1", FinalResponse: models.ResponseGoing, CreatedAt: at},
		{ID: "rsp_2", UserID: "user1", EventID: "event1", InitialResponse: models.ResponseGoing, FinalResponse: models.ResponseCleared, CreatedAt: at.Add(time.Hour)},
		{ID: "rsp_3", UserID: "user2", EventID: "event1", FinalResponse: models.ResponseMaybe, CreatedAt: at},
		{ID: "rsp_4", UserID: "user1", EventID: "event2", FinalResponse: models.ResponseInterested, CreatedAt: at},
	}
	for _, e := range entries {
		require.NoError(t, store.AppendEntry(e))
	}

	byUser, err := store.GetEntriesByUser("user1")
	assert.NoError(t, err)
	assert.Len(t, byUser, 3)

	byEvent, err := store.GetEntriesByEvent("event1")
	assert.NoError(t, err)
	assert.Len(t, byEvent, 3)

	byPair, err := store.GetEntriesByPair("user1", "event1")
	assert.NoError(t, err)
	assert.Len(t, byPair, 2)

	// A response change appends; the original row is still there.
	all, err := store.GetAllEntries()
	assert.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestRewriteEventID(t *testing.T) {
	store := setupTestDB(t)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.AppendEntry(models.ResponseEntry{
		ID: "rsp_1", UserID: "user1", EventID: "event_dup", FinalResponse: models.ResponseGoing, CreatedAt: at,
	}))
	require.NoError(t, store.AppendEntry(models.ResponseEntry{
		ID: "rsp_2", UserID: "user2", EventID: "event_dup", FinalResponse: models.ResponseMaybe, CreatedAt: at,
	}))
	require.NoError(t, store.AppendEntry(models.ResponseEntry{
		ID: "rsp_3", UserID: "user3", EventID: "event_other", FinalResponse: models.ResponseGoing, CreatedAt: at,
	}))

	moved, err := store.RewriteEventID("event_dup", "event_canonical")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), moved)

	rehomed, err := store.GetEntriesByEvent("event_canonical")
	assert.NoError(t, err)
	assert.Len(t, rehomed, 2)

	leftBehind, err := store.GetEntriesByEvent("event_dup")
	assert.NoError(t, err)
	assert.Len(t, leftBehind, 0)

	untouched, err := store.GetEntriesByEvent("event_other")
	assert.NoError(t, err)
	assert.Len(t, untouched, 1)
}
