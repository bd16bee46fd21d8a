package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/crewboard/core/internal/domain/entities"
)

// AuthService interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ValidateToken(tokenString string) (*Claims, error)
}

// UserService interface for account operations
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
	SetProjectOrder(ctx context.Context, userID uuid.UUID, order []uuid.UUID) error
}

// ProjectService interface for project operations
type ProjectService interface {
	CreateProject(ctx context.Context, ownerID uuid.UUID, req CreateProjectRequest) (*entities.Project, error)
	GetProject(ctx context.Context, callerID, id uuid.UUID) (*entities.Project, error)
	UpdateProject(ctx context.Context, callerID, id uuid.UUID, req UpdateProjectRequest) (*entities.Project, error)
	DeleteProject(ctx context.Context, callerID, id uuid.UUID) error
	ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error)
	SetTaskOrder(ctx context.Context, callerID, projectID uuid.UUID, order []uuid.UUID) error
}

// TaskService interface for task and note operations
type TaskService interface {
	CreateTask(ctx context.Context, callerID uuid.UUID, req CreateTaskRequest) (*entities.Task, error)
	GetTask(ctx context.Context, callerID, id uuid.UUID) (*entities.Task, error)
	RenameTask(ctx context.Context, callerID, id uuid.UUID, name string) (*entities.Task, error)
	ToggleTask(ctx context.Context, callerID, id uuid.UUID) (*entities.Task, error)
	DeleteTask(ctx context.Context, callerID, id uuid.UUID) error
	ListTasks(ctx context.Context, callerID, projectID uuid.UUID) ([]*entities.Task, error)
	AddNote(ctx context.Context, callerID, taskID uuid.UUID, content string) (*entities.Note, error)
	ListNotes(ctx context.Context, callerID, taskID uuid.UUID) ([]*entities.Note, error)
	DeleteNote(ctx context.Context, callerID, noteID uuid.UUID) error
}

// InvitationService interface for collaboration invitations
type InvitationService interface {
	Invite(ctx context.Context, senderID uuid.UUID, req InviteRequest) (*entities.Invitation, error)
	Accept(ctx context.Context, callerID, invitationID uuid.UUID) (*entities.Invitation, error)
	Reject(ctx context.Context, callerID, invitationID uuid.UUID) (*entities.Invitation, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status *entities.InvitationStatus) ([]*entities.Invitation, error)
}

// Request/Response Types

// Auth related types
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	// Identifier accepts either a username or an email address.
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Project related types
type CreateProjectRequest struct {
	Name string  `json:"name" validate:"required,max=200"`
	Note *string `json:"note" validate:"omitempty,max=2000"`
}

type UpdateProjectRequest struct {
	Name *string `json:"name" validate:"omitempty,min=1,max=200"`
	Note *string `json:"note" validate:"omitempty,max=2000"`
}

type ProjectOrderRequest struct {
	ProjectOrder []uuid.UUID `json:"project_order" validate:"required"`
}

type TaskOrderRequest struct {
	TaskOrder []uuid.UUID `json:"task_order" validate:"required"`
}

// Task related types
type CreateTaskRequest struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	Name      string    `json:"name" validate:"required,max=500"`
}

type RenameTaskRequest struct {
	Name string `json:"name" validate:"required,max=500"`
}

type AddNoteRequest struct {
	Content string `json:"content" validate:"required,max=5000"`
}

// Invitation related types
type InviteRequest struct {
	// Recipient is a username or email address of the invited user.
	Recipient string    `json:"recipient" validate:"required"`
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
}

// Response types for common structures
type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
