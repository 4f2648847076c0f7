package errors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func serve(verbose bool, err error) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler(verbose)
	e.GET("/", func(c echo.Context) error { return err })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHTTPErrorHandler_AppError(t *testing.T) {
	rec := serve(false, NotFound("There is no user with this email address"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"fail"`)
	assert.Contains(t, rec.Body.String(), "There is no user with this email address")
}

func TestHTTPErrorHandler_UnknownErrorIsHiddenInProduction(t *testing.T) {
	rec := serve(false, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went very wrong")
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
}

func TestHTTPErrorHandler_VerboseModeExposesDetail(t *testing.T) {
	rec := serve(true, errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"boom"`)
	assert.Contains(t, rec.Body.String(), `"stack"`)
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	rec := serve(false, echo.NewHTTPError(http.StatusRequestEntityTooLarge, "request entity too large"))

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "request entity too large")
}

func TestStatusDerivation(t *testing.T) {
	assert.Equal(t, "fail", BadRequest("x").Status)
	assert.Equal(t, "fail", Forbidden("x").Status)
	assert.Equal(t, "error", EmailDelivery().Status)
	assert.True(t, BadRequest("x").Operational)
	assert.False(t, Internal().Operational)
}
