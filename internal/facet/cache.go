package facet

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"fomo-app/internal/query"
)

// Cache memoizes computed facet lists in Redis, keyed on the dimension and
// a digest of the full filter state. A miss just recomputes; the TTL keeps
// staleness bounded.
type Cache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{Client: client, TTL: ttl}
}

func (c *Cache) key(dimension string, state query.FilterState) string {
	stateBytes, _ := json.Marshal(state)
	digest := sha256.Sum256(stateBytes)
	return fmt.Sprintf("facets:%s:%x", dimension, digest[:12])
}

func (c *Cache) Get(dimension string, state query.FilterState) ([]Facet, bool) {
	if c == nil || c.Client == nil {
		return nil, false
	}
	raw, err := c.Client.Get(context.Background(), c.key(dimension, state)).Result()
	if err != nil {
		return nil, false
	}
	var facets []Facet
	if err := json.Unmarshal([]byte(raw), &facets); err != nil {
		return nil, false
	}
	return facets, true
}

func (c *Cache) Set(dimension string, state query.FilterState, facets []Facet) {
	if c == nil || c.Client == nil {
		return
	}
	raw, err := json.Marshal(facets)
	if err != nil {
		return
	}
	_ = c.Client.Set(context.Background(), c.key(dimension, state), raw, c.TTL).Err()
}
