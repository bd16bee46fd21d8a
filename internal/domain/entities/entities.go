package entities

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProjectNotFound    = errors.New("project not found")
	ErrTaskNotFound       = errors.New("task not found")
	ErrNoteNotFound       = errors.New("note not found")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("operation not permitted")
	ErrInvitationSettled  = errors.New("invitation already settled")
	ErrAlreadyInvited     = errors.New("recipient already has a pending invitation")
	ErrAlreadyMember      = errors.New("recipient already has access to the project")
	ErrOrderMismatch      = errors.New("submitted order is not a permutation of the current set")
	ErrEmptyName          = errors.New("name must not be empty")
)

// InvitationStatus is the lifecycle state of a collaboration invitation.
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusDeclined InvitationStatus = "declined"
)

// User represents an account in the system.
type User struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Username     string      `json:"username" db:"username"`
	Email        string      `json:"email" db:"email"`
	PasswordHash string      `json:"-" db:"password_hash"`
	ProjectOrder []uuid.UUID `json:"project_order"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`
}

// Project groups tasks under a single owning user. Collaborators get
// shared read/update access but never ownership.
type Project struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	OwnerID       uuid.UUID   `json:"owner_id" db:"owner_id"`
	Name          string      `json:"name" db:"name"`
	Note          *string     `json:"note" db:"note"`
	Collaborators []uuid.UUID `json:"collaborators"`
	TaskOrder     []uuid.UUID `json:"task_order"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at" db:"updated_at"`
}

// Task is a unit of work inside a project.
type Task struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Completed bool      `json:"completed" db:"completed"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Note is a free-form annotation attached to a task. Content is
// immutable once created; the only mutation is deletion.
type Note struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TaskID    uuid.UUID `json:"task_id" db:"task_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Invitation is a pending collaboration offer from one user to another
// on a project. Status moves pending -> accepted or pending -> declined,
// one way, and the record stays as history.
type Invitation struct {
	ID          uuid.UUID        `json:"id" db:"id"`
	SenderID    uuid.UUID        `json:"sender_id" db:"sender_id"`
	RecipientID uuid.UUID        `json:"recipient_id" db:"recipient_id"`
	ProjectID   uuid.UUID        `json:"project_id" db:"project_id"`
	Status      InvitationStatus `json:"status" db:"status"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
	RespondedAt *time.Time       `json:"responded_at" db:"responded_at"`
}

// Business logic methods for Project

// IsOwner reports whether the given user created the project.
func (p *Project) IsOwner(userID uuid.UUID) bool {
	return p.OwnerID == userID
}

// IsCollaborator reports whether the given user was granted shared
// access through an accepted invitation.
func (p *Project) IsCollaborator(userID uuid.UUID) bool {
	for _, id := range p.Collaborators {
		if id == userID {
			return true
		}
	}
	return false
}

// CanView reports whether the given user may read or update the
// project's contents.
func (p *Project) CanView(userID uuid.UUID) bool {
	return p.IsOwner(userID) || p.IsCollaborator(userID)
}

// AddCollaborator appends the user to the collaborator set if absent.
func (p *Project) AddCollaborator(userID uuid.UUID) {
	if p.IsOwner(userID) || p.IsCollaborator(userID) {
		return
	}
	p.Collaborators = append(p.Collaborators, userID)
}

// Business logic methods for Task

// ToggleCompleted flips the completion flag. Applying it twice restores
// the original state.
func (t *Task) ToggleCompleted() {
	t.Completed = !t.Completed
}

// Business logic methods for Invitation

// IsSettled reports whether the invitation reached a terminal state.
func (i *Invitation) IsSettled() bool {
	return i.Status != InvitationStatusPending
}

// Accept transitions the invitation to accepted.
func (i *Invitation) Accept() error {
	if i.IsSettled() {
		return ErrInvitationSettled
	}
	i.Status = InvitationStatusAccepted
	now := time.Now()
	i.RespondedAt = &now
	return nil
}

// Decline transitions the invitation to declined.
func (i *Invitation) Decline() error {
	if i.IsSettled() {
		return ErrInvitationSettled
	}
	i.Status = InvitationStatusDeclined
	now := time.Now()
	i.RespondedAt = &now
	return nil
}

// IsValid reports whether the status is one of the known states.
func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusDeclined:
		return true
	default:
		return false
	}
}

// ValidateOrder checks that submitted is an exact permutation of
// current. Ordering lists are display state only, so a reorder must
// never add or drop membership.
func ValidateOrder(submitted, current []uuid.UUID) error {
	if len(submitted) != len(current) {
		return ErrOrderMismatch
	}

	seen := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		seen[id] = true
	}

	for _, id := range submitted {
		if !seen[id] {
			return ErrOrderMismatch
		}
		// Guard against duplicates in the submitted list.
		delete(seen, id)
	}

	if len(seen) != 0 {
		return ErrOrderMismatch
	}
	return nil
}

// SortByOrder arranges items according to the stored ordering list.
// Members missing from the ordering keep their insertion order after
// the ranked ones; ordering entries that no longer exist are ignored.
func SortByOrder[T any](items []T, order []uuid.UUID, idOf func(T) uuid.UUID) []T {
	if len(order) == 0 {
		return items
	}

	rank := make(map[uuid.UUID]int, len(order))
	for i, id := range order {
		rank[id] = i
	}

	sorted := make([]T, len(items))
	copy(sorted, items)

	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0; j-- {
			a, aOK := rank[idOf(sorted[j-1])]
			b, bOK := rank[idOf(sorted[j])]
			swap := false
			switch {
			case aOK && bOK:
				swap = b < a
			case !aOK && bOK:
				swap = true
			}
			if !swap {
				break
			}
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}

	return sorted
}
