// Package http contains the Echo handlers for the REST API. Handlers
// bind and validate request bodies, delegate to the application
// services and translate domain errors into HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/crewboard/core/internal/domain/entities"
)

// RefreshTokenRequest carries the opaque refresh token
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// getUserIDFromContext extracts the authenticated user ID set by the
// auth middleware. uuid.Nil means the request was not authenticated.
func getUserIDFromContext(c echo.Context) uuid.UUID {
	userIDStr, ok := c.Get("user").(string)
	if !ok {
		return uuid.Nil
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil
	}

	return userID
}

// parseIDParam parses the :id path parameter.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID format")
	}
	return id, nil
}

// domainError maps domain errors to HTTP errors. Authorization
// failures surface as 404 so the API does not reveal which resources
// exist to users who cannot see them.
func domainError(err error) error {
	switch {
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrProjectNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrNoteNotFound),
		errors.Is(err, entities.ErrInvitationNotFound),
		errors.Is(err, entities.ErrForbidden):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, entities.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")

	case errors.Is(err, entities.ErrEmailTaken),
		errors.Is(err, entities.ErrUsernameTaken),
		errors.Is(err, entities.ErrAlreadyInvited),
		errors.Is(err, entities.ErrAlreadyMember),
		errors.Is(err, entities.ErrInvitationSettled):
		return echo.NewHTTPError(http.StatusConflict, err.Error())

	case errors.Is(err, entities.ErrOrderMismatch),
		errors.Is(err, entities.ErrEmptyName):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
