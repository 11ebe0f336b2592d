package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *log.Logger
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &Redis{
		Client: client,
		TTL:    ttl,
		Logger: log.Default(),
	}
}

// pairKey orders the two user ids so both directions of the same pair map to
// the same lock key.
func pairKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return fmt.Sprintf("pair_lock:%s:%s", userA, userB)
}

// LockPair serializes friendship writes for one unordered pair. The upsert
// is check-then-write, so without this two concurrent writers for a new pair
// could each miss the other's row.
func (r *Redis) LockPair(userA, userB, ownerID string) (bool, error) {
	key := pairKey(userA, userB)
	ok, err := r.Client.SetNX(context.Background(), key, ownerID, r.TTL).Result()
	return ok, err
}

// UnlockPair releases the pair lock if ownerID still holds it.
func (r *Redis) UnlockPair(userA, userB, ownerID string) error {
	ctx := context.Background()
	key := pairKey(userA, userB)
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil // already released or expired
	}
	if err != nil {
		return err
	}
	if val == ownerID {
		_, err := r.Client.Del(ctx, key).Result()
		return err
	}
	r.Logger.Printf("REDIS: pair lock %s held by another owner, not releasing", key)
	return nil
}
