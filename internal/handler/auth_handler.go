package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "filedrop/internal/errors"
	"filedrop/internal/middleware"
	"filedrop/internal/service"
)

// AuthHandler handles signup, login and the password lifecycle endpoints.
type AuthHandler struct {
	authService service.AuthService
	sender      *TokenSender
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, sender *TokenSender) *AuthHandler {
	return &AuthHandler{authService: authService, sender: sender}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest carries the email to send a reset secret to.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest carries the new password; the reset secret travels in
// the path.
type ResetPasswordRequest struct {
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// UpdatePasswordRequest carries a password change for an authenticated user.
type UpdatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent" validate:"required"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Router /users/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.sender.Send(c, http.StatusCreated, user, token)
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Failure 401 {object} errors.AppError
// @Router /users/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.BadRequest("Please provide the email and password")
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.sender.Send(c, http.StatusOK, user, token)
}

// ForgotPassword godoc
// @Summary Email a password-reset secret
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Account email"
// @Success 200 {object} Envelope
// @Failure 404 {object} errors.AppError
// @Failure 500 {object} errors.AppError
// @Router /users/forgotPassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, Envelope{
		Status:  "success",
		Message: "Token sent to email",
	})
}

// ResetPassword godoc
// @Summary Reset the password with an emailed secret
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Reset secret"
// @Param request body ResetPasswordRequest true "New password"
// @Success 200 {object} Envelope
// @Failure 400 {object} errors.AppError
// @Router /users/resetPassword/{token} [patch]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user, token, err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		return err
	}

	return h.sender.Send(c, http.StatusOK, user, token)
}

// UpdatePassword godoc
// @Summary Change the password of the logged-in user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "Current and new password"
// @Success 200 {object} Envelope
// @Failure 401 {object} errors.AppError
// @Security BearerAuth
// @Router /users/updateMyPassword [patch]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.BadRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return apperrors.Validation(err.Error())
	}

	user := middleware.CurrentUser(c)
	token, err := h.authService.UpdatePassword(c.Request().Context(), user, req.PasswordCurrent, req.Password)
	if err != nil {
		return err
	}

	return h.sender.Send(c, http.StatusOK, user, token)
}
