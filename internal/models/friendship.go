package models

import (
	"time"

	"github.com/uptrace/bun"
)

// FriendshipStatus is the closed set of states a friendship can be in.
type FriendshipStatus string

const (
	FriendshipActive    FriendshipStatus = "active"
	FriendshipPending   FriendshipStatus = "pending"
	FriendshipBlocked   FriendshipStatus = "blocked"
	FriendshipCancelled FriendshipStatus = "cancelled"
)

// Valid reports whether s is one of the accepted friendship statuses.
func (s FriendshipStatus) Valid() bool {
	switch s {
	case FriendshipActive, FriendshipPending, FriendshipBlocked, FriendshipCancelled:
		return true
	}
	return false
}

// Friendship is the single row kept for an unordered user pair. FromUserID
// is the initiator and is fixed at creation; updates arriving in the reverse
// direction resolve to this row without flipping it.
type Friendship struct {
	bun.BaseModel `bun:"table:friendships"`

	ID         string           `bun:"id,pk" json:"id"`
	FromUserID string           `bun:"from_user_id,notnull" json:"from_user_id"`
	ToUserID   string           `bun:"to_user_id,notnull" json:"to_user_id"`
	Status     FriendshipStatus `bun:"status,notnull" json:"status"`
	CreatedAt  time.Time        `bun:"created_at,notnull" json:"created_at"`
	ModifiedAt time.Time        `bun:"modified_at" json:"modified_at"`
	DeletedAt  time.Time        `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

func (f Friendship) Deleted() bool {
	return !f.DeletedAt.IsZero()
}
