package facet

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fomo-app/internal/query"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	return NewCache(client, 30*time.Second), mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()

	state := query.FilterState{ViewerID: "user1", PublicMode: true, Tags: []string{"music"}}
	facets := []Facet{
		{Value: "music", Label: "music", Count: 3},
		{Value: "food", Label: "food", Count: 1},
	}

	// Miss before the write.
	_, ok := cache.Get("tag", state)
	assert.False(t, ok)

	cache.Set("tag", state, facets)

	got, ok := cache.Get("tag", state)
	require.True(t, ok)
	assert.Equal(t, facets, got)
}

func TestCacheKeyedOnStateAndDimension(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()

	state := query.FilterState{ViewerID: "user1", PublicMode: true}
	cache.Set("tag", state, []Facet{{Value: "music", Label: "music", Count: 1}})

	// Different dimension, same state: miss.
	_, ok := cache.Get("period", state)
	assert.False(t, ok)

	// Same dimension, different state: miss.
	other := state
	other.Query = "picnic"
	_, ok = cache.Get("tag", other)
	assert.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	cache, mr := setupTestCache(t)
	defer mr.Close()

	state := query.FilterState{PublicMode: true}
	cache.Set("tag", state, []Facet{{Value: "music", Label: "music", Count: 1}})

	mr.FastForward(time.Minute)

	_, ok := cache.Get("tag", state)
	assert.False(t, ok)
}

func TestCacheNilSafe(t *testing.T) {
	var cache *Cache

	_, ok := cache.Get("tag", query.FilterState{})
	assert.False(t, ok)
	cache.Set("tag", query.FilterState{}, nil)
}
