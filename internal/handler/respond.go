package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"filedrop/internal/model"
)

// Envelope is the JSON shape of every successful response.
type Envelope struct {
	Status  string      `json:"status"`
	Token   string      `json:"token,omitempty"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// TokenSender writes auth-success responses: the bearer token in the body and
// as an HTTP-only cookie.
type TokenSender struct {
	cookieDays int
	secure     bool
}

// NewTokenSender configures the auth-response writer. secure marks the cookie
// Secure (production only).
func NewTokenSender(cookieDays int, secure bool) *TokenSender {
	return &TokenSender{cookieDays: cookieDays, secure: secure}
}

// Send sets the jwt cookie and writes the success envelope with the token and
// sanitized user.
func (t *TokenSender) Send(c echo.Context, statusCode int, user *model.User, token string) error {
	c.SetCookie(&http.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(t.cookieDays) * 24 * time.Hour),
		HttpOnly: true,
		Secure:   t.secure,
		Path:     "/",
	})

	return c.JSON(statusCode, Envelope{
		Status: "success",
		Token:  token,
		Data:   echo.Map{"user": user},
	})
}
