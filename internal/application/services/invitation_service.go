package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// InvitationService handles collaboration invitations and their
// pending -> accepted/declined state machine.
type InvitationService struct {
	invitationRepo ports.InvitationRepository
	projectRepo    ports.ProjectRepository
	userRepo       ports.UserRepository
	cache          ports.CacheRepository
	logger         *logger.Logger
}

// NewInvitationService creates a new invitation service. cache may be
// nil to disable caching.
func NewInvitationService(invitationRepo ports.InvitationRepository, projectRepo ports.ProjectRepository, userRepo ports.UserRepository, cache ports.CacheRepository, logger *logger.Logger) *InvitationService {
	return &InvitationService{
		invitationRepo: invitationRepo,
		projectRepo:    projectRepo,
		userRepo:       userRepo,
		cache:          cache,
		logger:         logger,
	}
}

// Invite creates a pending invitation. The sender must own or
// collaborate on the project; the recipient is addressed by username or
// email and must not already have access or a pending invitation.
func (s *InvitationService) Invite(ctx context.Context, senderID uuid.UUID, req ports.InviteRequest) (*entities.Invitation, error) {
	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(senderID) {
		return nil, entities.ErrProjectNotFound
	}

	recipient, err := s.userRepo.GetByIdentifier(ctx, req.Recipient)
	if err != nil {
		return nil, fmt.Errorf("get recipient: %w", err)
	}

	if project.CanView(recipient.ID) {
		return nil, entities.ErrAlreadyMember
	}

	pending, err := s.invitationRepo.HasPending(ctx, recipient.ID, project.ID)
	if err != nil {
		return nil, fmt.Errorf("check pending invitation: %w", err)
	}
	if pending {
		return nil, entities.ErrAlreadyInvited
	}

	invitation := &entities.Invitation{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipient.ID,
		ProjectID:   project.ID,
		Status:      entities.InvitationStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := s.invitationRepo.Create(ctx, invitation); err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}

	s.logger.Info("Invitation sent",
		"invitation_id", invitation.ID,
		"sender_id", senderID,
		"recipient_id", recipient.ID,
		"project_id", project.ID,
	)

	return invitation, nil
}

// Accept settles the invitation as accepted and adds the recipient to
// the project's collaborator set.
func (s *InvitationService) Accept(ctx context.Context, callerID, invitationID uuid.UUID) (*entities.Invitation, error) {
	invitation, err := s.recipientInvitation(ctx, callerID, invitationID)
	if err != nil {
		return nil, err
	}

	if err := invitation.Accept(); err != nil {
		return nil, err
	}

	if err := s.invitationRepo.Update(ctx, invitation); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}

	// The collaborator grant is an explicit part of acceptance, not an
	// implied client-side follow-up.
	if err := s.projectRepo.AddCollaborator(ctx, invitation.ProjectID, invitation.RecipientID); err != nil {
		return nil, fmt.Errorf("add collaborator: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, projectListKey(invitation.RecipientID)); err != nil {
			s.logger.Debug("Failed to invalidate project listing", "error", err, "user_id", invitation.RecipientID)
		}
	}

	s.logger.Info("Invitation accepted",
		"invitation_id", invitation.ID,
		"recipient_id", invitation.RecipientID,
		"project_id", invitation.ProjectID,
	)

	return invitation, nil
}

// Reject settles the invitation as declined. No side effects.
func (s *InvitationService) Reject(ctx context.Context, callerID, invitationID uuid.UUID) (*entities.Invitation, error) {
	invitation, err := s.recipientInvitation(ctx, callerID, invitationID)
	if err != nil {
		return nil, err
	}

	if err := invitation.Decline(); err != nil {
		return nil, err
	}

	if err := s.invitationRepo.Update(ctx, invitation); err != nil {
		return nil, fmt.Errorf("update invitation: %w", err)
	}

	s.logger.Info("Invitation declined",
		"invitation_id", invitation.ID,
		"recipient_id", invitation.RecipientID,
		"project_id", invitation.ProjectID,
	)

	return invitation, nil
}

// ListForUser returns invitations addressed to the user. A nil status
// filter returns the full history; settled records are kept and listed
// alongside pending ones.
func (s *InvitationService) ListForUser(ctx context.Context, userID uuid.UUID, status *entities.InvitationStatus) ([]*entities.Invitation, error) {
	invitations, err := s.invitationRepo.ListForRecipient(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invitations, nil
}

// recipientInvitation loads an invitation and checks the caller is its
// recipient. Anyone else gets not-found.
func (s *InvitationService) recipientInvitation(ctx context.Context, callerID, invitationID uuid.UUID) (*entities.Invitation, error) {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return nil, fmt.Errorf("get invitation: %w", err)
	}

	if invitation.RecipientID != callerID {
		return nil, entities.ErrInvitationNotFound
	}

	return invitation, nil
}
