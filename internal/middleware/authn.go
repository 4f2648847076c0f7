package middleware

import (
	"errors"

	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"filedrop/internal/auth"
	apperrors "filedrop/internal/errors"
	"filedrop/internal/model"
	"filedrop/internal/repository"
)

// ContextKeyUser is where the resolved identity is stored on the request
// context for downstream handlers.
const ContextKeyUser = "currentUser"

// contextKeyClaims is where echo-jwt stores the verified claims.
const contextKeyClaims = "user"

// JWT extracts and verifies the bearer token from the Authorization header.
// Verification is delegated to the token service so failures map onto the
// Unauthenticated taxonomy instead of echo-jwt's defaults.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  contextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.Verify(tokenString)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return apperrors.Unauthenticated("Your token has expired. Please log in again")
			case errors.Is(err, auth.ErrTokenMalformed), errors.Is(err, auth.ErrTokenSignatureInvalid):
				return apperrors.Unauthenticated("Invalid token. Please log in again")
			default:
				// No token in the Authorization header.
				return apperrors.Unauthenticated("You are not logged in! Please log in to get access")
			}
		},
	})
}

// LoadUser resolves the verified token subject to an active user, rejects
// tokens issued before the user's last password change, and attaches the
// identity to the request context. Runs after JWT.
func LoadUser(repo repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(contextKeyClaims).(*auth.Claims)
			if !ok {
				return apperrors.Unauthenticated("You are not logged in! Please log in to get access")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return apperrors.Unauthenticated("Invalid token. Please log in again")
			}

			user, err := repo.FindByID(c.Request().Context(), userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.Unauthenticated("The user belonging to this token does no longer exist")
				}
				return err
			}

			if claims.IssuedAt != nil && user.ChangedPasswordAfter(claims.IssuedAt.Time) {
				return apperrors.Unauthenticated("User recently changed password. Please log in again")
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}

// RequireRole rejects authenticated identities whose role is not in the
// allowed set. Runs after LoadUser.
func RequireRole(allowed ...string) echo.MiddlewareFunc {
	roles := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		roles[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil || !roles[user.Role] {
				return apperrors.Forbidden("You do not have permission to perform this action")
			}
			return next(c)
		}
	}
}

// CurrentUser returns the identity resolved by LoadUser, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(ContextKeyUser).(*model.User)
	return user
}
