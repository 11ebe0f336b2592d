package users

import (
	"fmt"
	"strings"
	"time"

	"fomo-app/internal/apperr"
	"fomo-app/internal/models"
	"fomo-app/internal/utils"
)

type DBLayer interface {
	CreateUser(user models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	OverwriteUser(user models.User) error
	SoftDeleteUser(id string, deletedAt time.Time) error
}

// UserService owns registration and profile lifecycle. Emails are compared
// trimmed and case-insensitively.
type UserService struct {
	DB DBLayer
}

func NewUserService(db DBLayer) *UserService {
	return &UserService{DB: db}
}

// NormalizeEmail is the canonical form stored and compared everywhere.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(user models.User) (*models.User, error) {
	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return nil, apperr.Validation("email", "required")
	}
	if strings.TrimSpace(user.Name) == "" {
		return nil, apperr.Validation("name", "required")
	}

	existing, err := s.DB.GetUserByEmail(user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email %s: %w", user.Email, err)
	}
	if existing != nil {
		return nil, apperr.Conflict("user with email", user.Email)
	}

	if user.ID == "" {
		user.ID = utils.GenerateUserID()
	}
	now := time.Now()
	user.Active = true
	user.CreatedAt = now
	user.UpdatedAt = now
	user.DeletedAt = time.Time{}

	if err := s.DB.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

func (s *UserService) Get(id string) (*models.User, error) {
	if id == "" {
		return nil, apperr.Validation("id", "required")
	}
	user, err := s.DB.GetUserByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	if user == nil || user.Deleted() {
		return nil, apperr.NotFound("user", id)
	}
	return user, nil
}

// GetUserByID satisfies the facet engine's organizer lookup.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.Get(id)
}

func (s *UserService) GetByEmail(email string) (*models.User, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Validation("email", "required")
	}
	user, err := s.DB.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if user == nil || user.Deleted() {
		return nil, apperr.NotFound("user with email", email)
	}
	return user, nil
}

// Overwrite replaces the whole profile row, preserving identity stamps.
func (s *UserService) Overwrite(id string, update models.User) (*models.User, error) {
	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	update.ID = existing.ID
	update.Email = NormalizeEmail(update.Email)
	if update.Email == "" {
		update.Email = existing.Email
	}
	update.CreatedAt = existing.CreatedAt
	update.DeletedAt = existing.DeletedAt
	update.UpdatedAt = time.Now()

	if err := s.DB.OverwriteUser(update); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return &update, nil
}

// Delete soft-deletes the user. Response history rows deliberately carry no
// deletion marker; they stay attributed to the departed user id.
func (s *UserService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.DB.SoftDeleteUser(id, time.Now()); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return nil
}
