package friendship

import (
	"fmt"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type DBLayer interface {
	GetFriendshipByID(id string) (*models.Friendship, error)
	CreateFriendship(friendship models.Friendship) error
	UpdateFriendship(friendship models.Friendship) error
	SoftDeleteFriendship(id string, deletedAt time.Time) error
	ReviveFriendship(friendship models.Friendship) error
	GetActiveFriendshipsByUser(userID string) ([]models.Friendship, error)
}

type PairLock interface {
	LockPair(userA, userB, ownerID string) (bool, error)
	UnlockPair(userA, userB, ownerID string) error
}

type KafkaPublisher interface {
	PublishFriendshipUpdated(friendship models.Friendship) error
}

// UpsertResult reports which way an upsert went.
type UpsertResult struct {
	ID     string `json:"id"`
	Action string `json:"action"` // "created" or "updated"
}

// FriendshipService keeps exactly one live row per unordered user pair. The
// canonical id is whichever of F(from,to)/F(to,from) was created first, and
// the original direction never flips on update.
type FriendshipService struct {
	DB    DBLayer
	Lock  PairLock
	Kafka KafkaPublisher
}

func NewFriendshipService(db DBLayer, lock PairLock, kafka KafkaPublisher) *FriendshipService {
	return &FriendshipService{DB: db, Lock: lock, Kafka: kafka}
}

// Upsert resolves the caller's (from, to, status) onto the pair's canonical
// row. Both candidate ids are probed; an existing row keeps its id, its
// stored direction and its createdAt. The check-then-write sequence runs
// under a per-pair lock so concurrent writers for the same new pair cannot
// both create.
func (s *FriendshipService) Upsert(fromUserID, toUserID string, status models.FriendshipStatus) (*UpsertResult, error) {
	if fromUserID == "" {
		return nil, apperr.Validation("from_user_id", "required")
	}
	if toUserID == "" {
		return nil, apperr.Validation("to_user_id", "required")
	}
	if fromUserID == toUserID {
		return nil, apperr.Validation("to_user_id", "cannot befriend yourself")
	}
	if status == "" {
		return nil, apperr.Validation("status", "required")
	}
	if !status.Valid() {
		return nil, apperr.Validation("status", fmt.Sprintf("unknown status %q", status))
	}

	ownerID := utils.GenerateFriendshipID(fromUserID, toUserID)
	if s.Lock != nil {
		ok, err := s.Lock.LockPair(fromUserID, toUserID, ownerID)
		if err != nil {
			return nil, fmt.Errorf("pair lock error: %w", err)
		}
		if !ok {
			return nil, apperr.Conflict("friendship write for pair", fromUserID+"/"+toUserID)
		}
		defer func() {
			_ = s.Lock.UnlockPair(fromUserID, toUserID, ownerID)
		}()
	}

	existing, err := s.findEither(fromUserID, toUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing != nil {
		// Reuse the stored row untouched except for status: id, direction
		// and createdAt all survive updates from either side.
		existing.Status = status
		existing.ModifiedAt = now
		if err := s.DB.UpdateFriendship(*existing); err != nil {
			return nil, fmt.Errorf("failed to update friendship %s: %w", existing.ID, err)
		}
		s.publish(*existing)
		return &UpsertResult{ID: existing.ID, Action: "updated"}, nil
	}

	// The deterministic id may still belong to a soft-deleted row for this
	// direction. Inserting would collide with it, so revive the row instead:
	// it restarts life with the caller's status and a fresh createdAt.
	id := utils.GenerateFriendshipID(fromUserID, toUserID)
	dead, err := s.DB.GetFriendshipByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship %s: %w", id, err)
	}
	if dead != nil {
		dead.Status = status
		dead.CreatedAt = now
		dead.ModifiedAt = now
		dead.DeletedAt = time.Time{}
		if err := s.DB.ReviveFriendship(*dead); err != nil {
			return nil, fmt.Errorf("failed to revive friendship %s: %w", dead.ID, err)
		}
		s.publish(*dead)
		return &UpsertResult{ID: dead.ID, Action: "created"}, nil
	}

	created := models.Friendship{
		ID:         id,
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Status:     status,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.DB.CreateFriendship(created); err != nil {
		return nil, fmt.Errorf("failed to create friendship: %w", err)
	}
	s.publish(created)
	return &UpsertResult{ID: created.ID, Action: "created"}, nil
}

// findEither probes both direction-derived ids and returns the live row, if
// any. Soft-deleted rows do not count.
func (s *FriendshipService) findEither(fromUserID, toUserID string) (*models.Friendship, error) {
	for _, id := range []string{
		utils.GenerateFriendshipID(fromUserID, toUserID),
		utils.GenerateFriendshipID(toUserID, fromUserID),
	} {
		friendship, err := s.DB.GetFriendshipByID(id)
		if err != nil {
			return nil, fmt.Errorf("failed to look up friendship %s: %w", id, err)
		}
		if friendship != nil && !friendship.Deleted() {
			return friendship, nil
		}
	}
	return nil, nil
}

// Get returns a live friendship by id.
func (s *FriendshipService) Get(id string) (*models.Friendship, error) {
	if id == "" {
		return nil, apperr.Validation("id", "required")
	}
	friendship, err := s.DB.GetFriendshipByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship %s: %w", id, err)
	}
	if friendship == nil || friendship.Deleted() {
		return nil, apperr.NotFound("friendship", id)
	}
	return friendship, nil
}

// Delete soft-deletes the friendship: the row stays resolvable as inactive
// and is excluded from active-data queries from then on.
func (s *FriendshipService) Delete(id string) error {
	friendship, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.DB.SoftDeleteFriendship(id, time.Now()); err != nil {
		return fmt.Errorf("failed to delete friendship %s: %w", id, err)
	}
	friendship.DeletedAt = time.Now()
	s.publish(*friendship)
	return nil
}

// ListForUser returns the live friendships the user appears in, either side.
func (s *FriendshipService) ListForUser(userID string) ([]models.Friendship, error) {
	if userID == "" {
		return nil, apperr.Validation("user_id", "required")
	}
	friendships, err := s.DB.GetActiveFriendshipsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships for user %s: %w", userID, err)
	}
	return friendships, nil
}

func (s *FriendshipService) publish(friendship models.Friendship) {
	if s.Kafka == nil {
		return
	}
	if err := s.Kafka.PublishFriendshipUpdated(friendship); err != nil {
		fmt.Printf("Kafka publish error (friendship updated): %v\n", err)
	}
}
