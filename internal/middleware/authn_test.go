package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"filedrop/internal/auth"
	apperrors "filedrop/internal/errors"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// stubUserRepo satisfies repository.UserRepository; only FindByID is wired,
// anything else panics on use.
type stubUserRepo struct {
	repository.UserRepository
	findByID func(ctx context.Context, id uuid.UUID) (*model.User, error)
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.findByID(ctx, id)
}

func newGuardedEcho(jwtService *auth.JWTService, repo repository.UserRepository, extra ...echo.MiddlewareFunc) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler(false)

	mws := append([]echo.MiddlewareFunc{JWT(jwtService), LoadUser(repo)}, extra...)
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"email": CurrentUser(c).Email})
	}, mws...)
	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAccessGuard(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	userID := uuid.New()
	activeUser := &model.User{ID: userID, Email: "test@example.com", Role: model.RoleUser, Active: true}

	repo := &stubUserRepo{findByID: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
		if id == userID {
			return activeUser, nil
		}
		return nil, gorm.ErrRecordNotFound
	}}

	validToken, err := jwtService.Issue(userID.String())
	assert.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(newGuardedEcho(jwtService, repo), "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "You are not logged in")
	})

	t.Run("malformed token", func(t *testing.T) {
		rec := doRequest(newGuardedEcho(jwtService, repo), "garbage")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := auth.NewJWTService("test-secret", -time.Hour).Issue(userID.String())
		assert.NoError(t, err)
		rec := doRequest(newGuardedEcho(jwtService, repo), expired)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "expired")
	})

	t.Run("forged signature", func(t *testing.T) {
		forged, err := auth.NewJWTService("other-secret", time.Hour).Issue(userID.String())
		assert.NoError(t, err)
		rec := doRequest(newGuardedEcho(jwtService, repo), forged)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("user no longer exists", func(t *testing.T) {
		ghost, err := jwtService.Issue(uuid.NewString())
		assert.NoError(t, err)
		rec := doRequest(newGuardedEcho(jwtService, repo), ghost)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "does no longer exist")
	})

	t.Run("stale token after password change", func(t *testing.T) {
		changedAt := time.Now().Add(time.Hour)
		staleRepo := &stubUserRepo{findByID: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return &model.User{ID: userID, Email: "test@example.com", PasswordChangedAt: &changedAt}, nil
		}}
		rec := doRequest(newGuardedEcho(jwtService, staleRepo), validToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "recently changed password")
	})

	t.Run("valid token resolves identity", func(t *testing.T) {
		rec := doRequest(newGuardedEcho(jwtService, repo), validToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "test@example.com")
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)

	makeRepo := func(role string) (*stubUserRepo, string) {
		id := uuid.New()
		user := &model.User{ID: id, Email: role + "@example.com", Role: role, Active: true}
		token, _ := jwtService.Issue(id.String())
		return &stubUserRepo{findByID: func(ctx context.Context, _ uuid.UUID) (*model.User, error) {
			return user, nil
		}}, token
	}

	t.Run("role not in allowed set", func(t *testing.T) {
		repo, token := makeRepo(model.RoleUser)
		rec := doRequest(newGuardedEcho(jwtService, repo, RequireRole(model.RoleAdmin)), token)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "permission")
	})

	t.Run("role allowed", func(t *testing.T) {
		repo, token := makeRepo(model.RoleAdmin)
		rec := doRequest(newGuardedEcho(jwtService, repo, RequireRole(model.RoleAdmin)), token)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
