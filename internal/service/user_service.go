package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"filedrop/internal/auth"
	"filedrop/internal/cache"
	apperrors "filedrop/internal/errors"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// UserService exposes profile and admin user-management operations.
type UserService interface {
	UpdateMe(ctx context.Context, userID uuid.UUID, name, email string) (*model.User, error)
	DeleteMe(ctx context.Context, userID uuid.UUID) error
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	CreateUser(ctx context.Context, name, email, password, role string) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// UpdateMe updates the whitelisted profile fields of the current user.
// Password changes go through the dedicated password flow.
func (s *userService) UpdateMe(ctx context.Context, userID uuid.UUID, name, email string) (*model.User, error) {
	fields := map[string]interface{}{}
	if name != "" {
		fields["name"] = name
	}
	if email != "" {
		fields["email"] = strings.ToLower(email)
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(ctx, userID, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.DuplicateField(
					fmt.Sprintf("Duplicate field value: %s. Please use another value", email))
			}
			return nil, fmt.Errorf("update profile: %w", err)
		}
	}
	s.cache.Invalidate(ctx, userID)

	return s.repo.FindByID(ctx, userID)
}

// DeleteMe soft-deletes the current user.
func (s *userService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	s.cache.Invalidate(ctx, userID)
	return nil
}

// ListUsers lists every user for the admin surface, deactivated ones
// included so they remain manageable.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.ListAll(ctx)
}

// GetUser fetches a user by id through a read-through cache.
func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if cached := s.cache.GetUser(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByIDAny(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("No user found with that ID")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	s.cache.SetUser(ctx, user)
	return user, nil
}

// CreateUser creates a user on behalf of an admin.
func (s *userService) CreateUser(ctx context.Context, name, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, apperrors.Validation(fmt.Sprintf("Invalid role: %s", role))
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.DuplicateField(
				fmt.Sprintf("Duplicate field value: %s. Please use another value", user.Email))
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// UpdateUser updates admin-editable fields on a user row.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if email, ok := fields["email"].(string); ok {
		fields["email"] = strings.ToLower(email)
	}
	if _, err := s.repo.FindByIDAny(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("No user found with that ID")
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.DuplicateField("Duplicate field value. Please use another value")
		}
		return fmt.Errorf("update user: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// DeleteUser hard-deletes a user row. This is the explicit admin path; the
// self-service path only deactivates.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.cache.Invalidate(ctx, id)
	return nil
}
