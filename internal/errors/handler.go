package errors

import (
	"errors"
	"log"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler returns the central echo error translator. Every handler
// error funnels through here: AppErrors map to their status code and a
// {status, message} envelope, echo's own errors (404 route miss, 413 body
// limit, 429 rate limit) are wrapped in the same envelope, and anything else
// is logged and replaced with a generic 500.
//
// When verbose is true (non-production) the response additionally carries the
// raw error and a stack trace.
func HTTPErrorHandler(verbose bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		appErr := translate(err)

		if !appErr.Operational {
			log.Printf("unexpected error: %v", err)
		}

		body := echo.Map{
			"status":  appErr.Status,
			"message": appErr.Message,
		}
		if verbose {
			body["error"] = err.Error()
			body["stack"] = string(debug.Stack())
		} else if !appErr.Operational {
			body["message"] = "Something went very wrong"
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(appErr.StatusCode)
			return
		}
		_ = c.JSON(appErr.StatusCode, body)
	}
}

func translate(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		msg, ok := echoErr.Message.(string)
		if !ok {
			msg = http.StatusText(echoErr.Code)
		}
		return New(echoErr.Code, msg, "HTTP_ERROR")
	}

	return Internal()
}
