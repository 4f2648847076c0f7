package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"filedrop/internal/model"
)

// UserRepository defines user persistence operations.
//
// FindByID and FindByEmail exclude deactivated users; the Any variants are the
// admin paths that bypass the active filter so deactivated accounts stay
// manageable.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByIDAny(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.User, error)
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListAll(ctx context.Context) ([]model.User, error)
	AppendLink(ctx context.Context, link *model.FileLink) error
	ListLinks(ctx context.Context, userID uuid.UUID) ([]model.FileLink, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. A unique email violation surfaces as
// gorm.ErrDuplicatedKey.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds an active user by ID.
func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByIDAny finds a user by ID regardless of the active flag.
func (r *userRepository) FindByIDAny(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds an active user by email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("email = ? AND active = ?", email, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByResetDigest finds an active user whose stored reset digest matches and
// whose reset expiry is still in the future.
func (r *userRepository) FindByResetDigest(ctx context.Context, digest string, now time.Time) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).
		Where("reset_token_digest = ? AND reset_token_expires_at > ? AND active = ?", digest, now, true).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateFields updates the given columns on a user row.
func (r *userRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// Deactivate soft-deletes a user by flipping the active flag.
func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// Delete hard-deletes a user row. Deactivated users are deletable too.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.User{}).Error
}

// ListAll lists every user, deactivated ones included.
func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AppendLink records an uploaded-file link for a user.
func (r *userRepository) AppendLink(ctx context.Context, link *model.FileLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// ListLinks returns a user's uploaded-file links, oldest first.
func (r *userRepository) ListLinks(ctx context.Context, userID uuid.UUID) ([]model.FileLink, error) {
	var links []model.FileLink
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}
