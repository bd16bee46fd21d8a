package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

// InvitationRepositoryImpl implements the InvitationRepository interface
type InvitationRepositoryImpl struct {
	db *sqlx.DB
}

// NewInvitationRepository creates a new invitation repository
func NewInvitationRepository(db *sqlx.DB) ports.InvitationRepository {
	return &InvitationRepositoryImpl{db: db}
}

const invitationColumns = `id, sender_id, recipient_id, project_id, status, created_at, responded_at`

func (r *InvitationRepositoryImpl) Create(ctx context.Context, invitation *entities.Invitation) error {
	query := `
		INSERT INTO invitations (id, sender_id, recipient_id, project_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		invitation.ID, invitation.SenderID, invitation.RecipientID,
		invitation.ProjectID, invitation.Status,
	).Scan(&invitation.CreatedAt)

	if err != nil {
		return fmt.Errorf("create invitation: %w", err)
	}

	return nil
}

func (r *InvitationRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE id = $1`

	var invitation entities.Invitation
	err := r.db.GetContext(ctx, &invitation, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrInvitationNotFound
		}
		return nil, fmt.Errorf("get invitation by id: %w", err)
	}

	return &invitation, nil
}

func (r *InvitationRepositoryImpl) Update(ctx context.Context, invitation *entities.Invitation) error {
	query := `
		UPDATE invitations
		SET status = $2, responded_at = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		invitation.ID, invitation.Status, invitation.RespondedAt,
	)
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrInvitationNotFound
	}

	return nil
}

func (r *InvitationRepositoryImpl) ListForRecipient(ctx context.Context, userID uuid.UUID, status *entities.InvitationStatus) ([]*entities.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE recipient_id = $1`
	args := []interface{}{userID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}

	query += ` ORDER BY created_at DESC`

	var invitations []*entities.Invitation
	err := r.db.SelectContext(ctx, &invitations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}

	return invitations, nil
}

func (r *InvitationRepositoryImpl) HasPending(ctx context.Context, recipientID, projectID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM invitations
			WHERE recipient_id = $1 AND project_id = $2 AND status = $3
		)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, recipientID, projectID, entities.InvitationStatusPending)
	if err != nil {
		return false, fmt.Errorf("check pending invitation: %w", err)
	}

	return exists, nil
}
