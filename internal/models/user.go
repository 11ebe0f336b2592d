package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users"`

	ID                  string    `bun:"id,pk" json:"id"`
	Name                string    `bun:"name,notnull" json:"name"`
	Email               string    `bun:"email,unique,notnull" json:"email"`
	City                string    `bun:"city" json:"city"`
	Lat                 float64   `bun:"lat" json:"lat"`
	Lng                 float64   `bun:"lng" json:"lng"`
	Active              bool      `bun:"active" json:"active"`
	PublicProfile       bool      `bun:"public_profile" json:"public_profile"`
	Ambassador          bool      `bun:"ambassador" json:"ambassador"`
	AllowFriendRequests bool      `bun:"allow_friend_requests" json:"allow_friend_requests"`
	FriendCount         int       `bun:"friend_count" json:"friend_count"`
	CreatedAt           time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt           time.Time `bun:"updated_at" json:"updated_at"`
	DeletedAt           time.Time `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
}

func (u User) Deleted() bool {
	return !u.DeletedAt.IsZero()
}
