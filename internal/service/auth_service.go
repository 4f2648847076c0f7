package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"filedrop/internal/auth"
	apperrors "filedrop/internal/errors"
	"filedrop/internal/mail"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// AuthService composes the signup, login and password lifecycle flows.
type AuthService interface {
	Signup(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) (*model.User, string, error)
	UpdatePassword(ctx context.Context, user *model.User, current, password string) (string, error)
}

type authService struct {
	repo       repository.UserRepository
	jwtService *auth.JWTService
	mailer     mail.Mailer
	publicURL  string
}

// NewAuthService creates a new authentication service.
func NewAuthService(repo repository.UserRepository, jwtService *auth.JWTService, mailer mail.Mailer, publicURL string) AuthService {
	return &authService{
		repo:       repo,
		jwtService: jwtService,
		mailer:     mailer,
		publicURL:  publicURL,
	}
}

// Signup creates a new user with a hashed password and logs them in.
func (s *authService) Signup(ctx context.Context, name, email, password string) (*model.User, string, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: hash,
		Role:         model.RoleUser,
		Active:       true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.DuplicateField(
				fmt.Sprintf("Duplicate field value: %s. Please use another value", user.Email))
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login authenticates a user by email and password. An unknown email and a
// wrong password yield the identical error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.InvalidCredentials()
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, "", apperrors.InvalidCredentials()
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// ForgotPassword generates a reset secret, stores its digest and emails the
// plaintext to the user. If delivery fails the stored reset fields are cleared
// before the error is reported.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("There is no user with this email address")
		}
		return fmt.Errorf("find user: %w", err)
	}

	plaintext, digest, expiresAt, err := auth.GenerateResetToken()
	if err != nil {
		return err
	}

	if err := s.repo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"reset_token_digest":     digest,
		"reset_token_expires_at": expiresAt,
	}); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/v1/users/resetPassword/%s", s.publicURL, plaintext)
	subject := "Your password reset token (valid for only 10 mins)"
	body := fmt.Sprintf("Forgot your password? Submit a PATCH request with your new password "+
		"and passwordConfirm to: %s.\nIf you didn't forget your password, please ignore this email!",
		resetURL)

	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		// Compensate: the digest must not stay behind if the plaintext never
		// reached the user.
		_ = s.repo.UpdateFields(ctx, user.ID, map[string]interface{}{
			"reset_token_digest":     nil,
			"reset_token_expires_at": nil,
		})
		return apperrors.EmailDelivery()
	}

	return nil
}

// ResetPassword consumes a reset secret and sets a new password.
func (s *authService) ResetPassword(ctx context.Context, token, password string) (*model.User, string, error) {
	digest := auth.DigestResetToken(token)

	user, err := s.repo.FindByResetDigest(ctx, digest, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.BadRequest("Token is invalid or expired")
		}
		return nil, "", fmt.Errorf("find user by reset token: %w", err)
	}

	// The lookup already filters on expiry; re-check the row so a matching
	// digest past its window can never slip through.
	if user.ResetTokenExpiresAt == nil || !user.ResetTokenExpiresAt.After(time.Now()) {
		return nil, "", apperrors.BadRequest("Token is invalid or expired")
	}

	if err := s.setPassword(ctx, user, password); err != nil {
		return nil, "", err
	}

	jwt, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, jwt, nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one.
func (s *authService) UpdatePassword(ctx context.Context, user *model.User, current, password string) (string, error) {
	if !auth.CheckPassword(current, user.PasswordHash) {
		return "", apperrors.WrongPassword()
	}

	if err := s.setPassword(ctx, user, password); err != nil {
		return "", err
	}

	token, err := s.jwtService.Issue(user.ID.String())
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}

// setPassword re-hashes the password, stamps PasswordChangedAt one second in
// the past so outstanding tokens compare as stale, and clears any reset
// fields.
func (s *authService) setPassword(ctx context.Context, user *model.User, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	changedAt := time.Now().Add(-time.Second)
	user.PasswordHash = hash
	user.PasswordChangedAt = &changedAt
	user.ResetTokenDigest = nil
	user.ResetTokenExpiresAt = nil

	if err := s.repo.UpdateFields(ctx, user.ID, map[string]interface{}{
		"password_hash":          hash,
		"password_changed_at":    changedAt,
		"reset_token_digest":     nil,
		"reset_token_expires_at": nil,
	}); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
