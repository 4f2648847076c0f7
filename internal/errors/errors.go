package errors

import (
	"net/http"
)

// AppError is the single error type handlers and services return. Known kinds
// carry a stable status code and a user-safe message; Operational marks errors
// whose message may be surfaced to clients in production.
type AppError struct {
	StatusCode  int    `json:"statusCode"`
	Status      string `json:"status"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Operational bool   `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// New creates an operational AppError with a status derived from the code:
// 4xx errors report status "fail", everything else "error".
func New(statusCode int, message, code string) *AppError {
	status := "error"
	if statusCode >= 400 && statusCode < 500 {
		status = "fail"
	}
	return &AppError{
		StatusCode:  statusCode,
		Status:      status,
		Code:        code,
		Message:     message,
		Operational: true,
	}
}

// BadRequest reports malformed input.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, "BAD_REQUEST")
}

// Unauthenticated reports a missing, invalid, expired or stale credential.
func Unauthenticated(message string) *AppError {
	return New(http.StatusUnauthorized, message, "UNAUTHENTICATED")
}

// Forbidden reports a role mismatch on an authenticated identity.
func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, "FORBIDDEN")
}

// NotFound reports a missing resource.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, "NOT_FOUND")
}

// InvalidCredentials is returned for both an unknown email and a wrong
// password so a caller cannot tell which one failed.
func InvalidCredentials() *AppError {
	return New(http.StatusUnauthorized, "Incorrect email or password", "INVALID_CREDENTIALS")
}

// WrongPassword reports a failed current-password check on password update.
func WrongPassword() *AppError {
	return New(http.StatusUnauthorized, "Entered password is wrong", "WRONG_PASSWORD")
}

// DuplicateField reports a unique-constraint violation.
func DuplicateField(message string) *AppError {
	return New(http.StatusBadRequest, message, "DUPLICATE_FIELD")
}

// Validation reports a schema constraint violation.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, "VALIDATION_ERROR")
}

// EmailDelivery reports a failed email send.
func EmailDelivery() *AppError {
	return New(http.StatusInternalServerError,
		"There was an error sending the email. Please try again later", "EMAIL_DELIVERY_ERROR")
}

// Internal wraps an unclassified error. It is not operational: the translator
// logs it and replaces the message with a generic one in production.
func Internal() *AppError {
	return &AppError{
		StatusCode:  http.StatusInternalServerError,
		Status:      "error",
		Code:        "INTERNAL_ERROR",
		Message:     "Something went very wrong",
		Operational: false,
	}
}
