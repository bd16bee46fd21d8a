package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crewboard/core/internal/application/services"
	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// InvitationHandler handles collaboration invitation requests
type InvitationHandler struct {
	invitationService *services.InvitationService
	logger            *logger.Logger
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *services.InvitationService, logger *logger.Logger) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		logger:            logger,
	}
}

// Invite godoc
// @Summary Invite a user to a project
// @Description Send a collaboration invitation to a user identified by username or email
// @Tags invitations
// @Accept json
// @Produce json
// @Param request body ports.InviteRequest true "Invitation data"
// @Success 201 {object} entities.Invitation
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /invitations [post]
func (h *InvitationHandler) Invite(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.InviteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invitation, err := h.invitationService.Invite(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Invite failed", "error", err, "user_id", userID, "project_id", req.ProjectID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, invitation)
}

// ListInvitations godoc
// @Summary List received invitations
// @Description List invitations addressed to the current user. Defaults to pending; pass status=all for the full history or a concrete status to filter.
// @Tags invitations
// @Produce json
// @Param status query string false "pending, accepted, declined or all"
// @Success 200 {array} entities.Invitation
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /invitations [get]
func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var status *entities.InvitationStatus
	switch param := c.QueryParam("status"); param {
	case "", string(entities.InvitationStatusPending):
		pending := entities.InvitationStatusPending
		status = &pending
	case "all":
		status = nil
	default:
		s := entities.InvitationStatus(param)
		if !s.IsValid() {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid status filter")
		}
		status = &s
	}

	invitations, err := h.invitationService.ListForUser(c.Request().Context(), userID, status)
	if err != nil {
		h.logger.Error("List invitations failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, invitations)
}

// Accept godoc
// @Summary Accept an invitation
// @Description Accept a pending invitation and join the project as a collaborator
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} entities.Invitation
// @Failure 404 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /invitations/{id}/accept [post]
func (h *InvitationHandler) Accept(c echo.Context) error {
	userID := getUserIDFromContext(c)

	invitationID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	invitation, err := h.invitationService.Accept(c.Request().Context(), userID, invitationID)
	if err != nil {
		h.logger.Error("Accept invitation failed", "error", err, "user_id", userID, "invitation_id", invitationID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, invitation)
}

// Reject godoc
// @Summary Reject an invitation
// @Description Decline a pending invitation
// @Tags invitations
// @Produce json
// @Param id path string true "Invitation ID"
// @Success 200 {object} entities.Invitation
// @Failure 404 {object} ports.ErrorResponse
// @Failure 409 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /invitations/{id}/reject [post]
func (h *InvitationHandler) Reject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	invitationID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	invitation, err := h.invitationService.Reject(c.Request().Context(), userID, invitationID)
	if err != nil {
		h.logger.Error("Reject invitation failed", "error", err, "user_id", userID, "invitation_id", invitationID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, invitation)
}
