package redis

import (
	"context"
	"log"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a Redis client backed by miniredis so tests run
// without a real Redis server.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to create miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		mr.Close()
		t.Fatalf("Failed to connect to miniredis: %v", err)
	}

	return client, mr
}

func cleanupTestRedis(client *redis.Client, mr *miniredis.Miniredis) {
	if client != nil {
		client.Close()
	}
	if mr != nil {
		mr.Close()
	}
}

func TestLockPair_BothDirectionsShareOneLock(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer cleanupTestRedis(client, mr)

	r := &Redis{Client: client, TTL: 10 * time.Second, Logger: log.Default()}

	// Test 1: first writer takes the lock
	locked, err := r.LockPair("alice", "bob", "writer-1")
	require.NoError(t, err)
	assert.True(t, locked)

	// Test 2: the reverse direction is the same pair, so it must fail
	locked, err = r.LockPair("bob", "alice", "writer-2")
	require.NoError(t, err)
	assert.False(t, locked, "Reverse direction should hit the same lock key")

	// Test 3: an unrelated pair is not blocked
	locked, err = r.LockPair("alice", "carol", "writer-3")
	require.NoError(t, err)
	assert.True(t, locked)

	// Test 4: release, then the pair is lockable again
	err = r.UnlockPair("alice", "bob", "writer-1")
	require.NoError(t, err)

	locked, err = r.LockPair("bob", "alice", "writer-2")
	require.NoError(t, err)
	assert.True(t, locked)
}

func TestUnlockPair_OnlyOwnerReleases(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer cleanupTestRedis(client, mr)

	r := &Redis{Client: client, TTL: 10 * time.Second, Logger: log.Default()}

	locked, err := r.LockPair("alice", "bob", "writer-1")
	require.NoError(t, err)
	require.True(t, locked)

	// A non-owner unlock is a no-op, the lock stays held.
	err = r.UnlockPair("alice", "bob", "writer-2")
	require.NoError(t, err)

	locked, err = r.LockPair("alice", "bob", "writer-3")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestLockPair_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer cleanupTestRedis(client, mr)

	r := &Redis{Client: client, TTL: 5 * time.Second, Logger: log.Default()}

	locked, err := r.LockPair("alice", "bob", "writer-1")
	require.NoError(t, err)
	require.True(t, locked)

	// miniredis advances time manually
	mr.FastForward(6 * time.Second)

	locked, err = r.LockPair("alice", "bob", "writer-2")
	require.NoError(t, err)
	assert.True(t, locked, "Lock should be gone after TTL expiry")
}

func TestUnlockPair_AlreadyExpired(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer cleanupTestRedis(client, mr)

	r := &Redis{Client: client, TTL: time.Second, Logger: log.Default()}

	locked, err := r.LockPair("alice", "bob", "writer-1")
	require.NoError(t, err)
	require.True(t, locked)

	mr.FastForward(2 * time.Second)

	err = r.UnlockPair("alice", "bob", "writer-1")
	assert.NoError(t, err)
}
