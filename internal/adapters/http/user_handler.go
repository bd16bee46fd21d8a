package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crewboard/core/internal/application/services"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// UserHandler handles account-related requests
type UserHandler struct {
	userService *services.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *services.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetCurrentUser godoc
// @Summary Get the current user
// @Tags users
// @Produce json
// @Success 200 {object} entities.User
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) GetCurrentUser(c echo.Context) error {
	userID := getUserIDFromContext(c)

	user, err := h.userService.GetUser(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Get current user failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Description Verify the old password and replace it with a new one
// @Tags users
// @Accept json
// @Produce json
// @Param request body ports.ChangePasswordRequest true "Password change"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		h.logger.Warn("Change password failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Password changed successfully"})
}

// SetProjectOrder godoc
// @Summary Reorder the current user's projects
// @Description Replace the stored project ordering. The submitted list must contain exactly the IDs of the projects visible to the user.
// @Tags users
// @Accept json
// @Produce json
// @Param request body ports.ProjectOrderRequest true "Project IDs in the desired order"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /users/me/project-order [put]
func (h *UserHandler) SetProjectOrder(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.ProjectOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.userService.SetProjectOrder(c.Request().Context(), userID, req.ProjectOrder); err != nil {
		h.logger.Error("Set project order failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Project order updated"})
}
