package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/crewboard/core/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	// GetByIdentifier resolves a login identifier that may be either a
	// username or an email address.
	GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SetProjectOrder(ctx context.Context, userID uuid.UUID, order []uuid.UUID) error
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	// Delete removes the project together with its tasks, their notes
	// and any invitations referencing it.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForUser returns projects the user owns or collaborates on,
	// in insertion order.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)
	SetTaskOrder(ctx context.Context, projectID uuid.UUID, order []uuid.UUID) error
	AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error
}

// TaskRepository defines the interface for task data operations
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	// Delete removes the task and its notes.
	Delete(ctx context.Context, id uuid.UUID) error
	// ListForProject returns the project's tasks ordered by position.
	ListForProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error)
	CountForProject(ctx context.Context, projectID uuid.UUID) (int, error)
}

// NoteRepository defines the interface for note data operations
type NoteRepository interface {
	Create(ctx context.Context, note *entities.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Note, error)
}

// InvitationRepository defines the interface for invitation data operations
type InvitationRepository interface {
	Create(ctx context.Context, invitation *entities.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error)
	Update(ctx context.Context, invitation *entities.Invitation) error
	// ListForRecipient returns invitations addressed to the user,
	// optionally filtered by status.
	ListForRecipient(ctx context.Context, userID uuid.UUID, status *entities.InvitationStatus) ([]*entities.Invitation, error)
	// HasPending reports whether a pending invitation already exists
	// for the recipient/project pair.
	HasPending(ctx context.Context, recipientID, projectID uuid.UUID) (bool, error)
}

// AuthRepository defines the interface for refresh token storage
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
	CleanupExpiredTokens(ctx context.Context) error
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RefreshToken represents a refresh token record
type RefreshToken struct {
	ID        int        `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"token_hash" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
}

// IsExpired checks if the refresh token is expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// IsRevoked checks if the refresh token is revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsValid checks if the refresh token is valid
func (rt *RefreshToken) IsValid() bool {
	return !rt.IsExpired() && !rt.IsRevoked()
}
