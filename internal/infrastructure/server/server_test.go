package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/crewboard/core/internal/infrastructure/logger"
)

func TestCustomErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = customErrorHandler(logger.NewNop())

	type payload struct {
		Name string `validate:"required"`
	}

	e.GET("/validation", func(c echo.Context) error {
		return validator.New().Struct(&payload{})
	})
	e.GET("/http-error", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})
	e.GET("/plain-error", func(c echo.Context) error {
		return assert.AnError
	})

	t.Run("validation errors answer bad request", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/validation", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.True(t, strings.Contains(rec.Body.String(), "validation failed"))
	})

	t.Run("echo errors keep their code", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/http-error", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("plain errors answer internal server error", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain-error", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
