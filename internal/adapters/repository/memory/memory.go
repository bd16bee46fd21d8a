// Package memory provides in-memory implementations of the repository
// ports. They back the test suites and are handy for local development
// without a database. All implementations are safe for concurrent use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/ports"
)

// UserRepository is an in-memory ports.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*entities.User
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*entities.User)}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return entities.ErrEmailTaken
		}
		if u.Username == user.Username {
			return entities.ErrUsernameTaken
		}
	}

	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	return r.find(func(u *entities.User) bool {
		return u.Username == identifier || u.Email == identifier
	})
}

func (r *UserRepository) find(match func(*entities.User) bool) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if match(u) {
			return cloneUser(u), nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.ID]
	if !ok {
		return entities.ErrUserNotFound
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *UserRepository) SetProjectOrder(ctx context.Context, userID uuid.UUID, order []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}

	user.ProjectOrder = append([]uuid.UUID(nil), order...)
	user.UpdatedAt = time.Now()
	return nil
}

// ProjectRepository is an in-memory ports.ProjectRepository. Deleting a
// project cascades into the task, note and invitation repositories it
// was wired with, mirroring the foreign keys of the SQL schema.
type ProjectRepository struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*entities.Project

	tasks       *TaskRepository
	notes       *NoteRepository
	invitations *InvitationRepository
}

// NewProjectRepository creates an empty in-memory project repository.
// The sibling repositories may be nil when cascade behavior is not
// under test.
func NewProjectRepository(tasks *TaskRepository, notes *NoteRepository, invitations *InvitationRepository) *ProjectRepository {
	return &ProjectRepository{
		projects:    make(map[uuid.UUID]*entities.Project),
		tasks:       tasks,
		notes:       notes,
		invitations: invitations,
	}
}

func (r *ProjectRepository) Create(ctx context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects[project.ID] = cloneProject(project)
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	project, ok := r.projects[id]
	if !ok {
		return nil, entities.ErrProjectNotFound
	}
	return cloneProject(project), nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *entities.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.projects[project.ID]
	if !ok {
		return entities.ErrProjectNotFound
	}

	stored.Name = project.Name
	stored.Note = project.Note
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	if _, ok := r.projects[id]; !ok {
		r.mu.Unlock()
		return entities.ErrProjectNotFound
	}
	delete(r.projects, id)
	r.mu.Unlock()

	if r.tasks != nil {
		for _, task := range r.tasks.snapshotForProject(id) {
			_ = r.tasks.Delete(ctx, task.ID)
			if r.notes != nil {
				r.notes.deleteForTask(task.ID)
			}
		}
	}
	if r.invitations != nil {
		r.invitations.deleteForProject(id)
	}

	return nil
}

func (r *ProjectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var projects []*entities.Project
	for _, p := range r.projects {
		if p.CanView(userID) {
			projects = append(projects, cloneProject(p))
		}
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})

	return projects, nil
}

func (r *ProjectRepository) SetTaskOrder(ctx context.Context, projectID uuid.UUID, order []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return entities.ErrProjectNotFound
	}

	project.TaskOrder = append([]uuid.UUID(nil), order...)
	project.UpdatedAt = time.Now()
	return nil
}

func (r *ProjectRepository) AddCollaborator(ctx context.Context, projectID, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	project, ok := r.projects[projectID]
	if !ok {
		return entities.ErrProjectNotFound
	}

	project.AddCollaborator(userID)
	project.UpdatedAt = time.Now()
	return nil
}

// TaskRepository is an in-memory ports.TaskRepository.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*entities.Task
}

// NewTaskRepository creates an empty in-memory task repository.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[uuid.UUID]*entities.Task)}
}

func (r *TaskRepository) Create(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, ok := r.tasks[id]
	if !ok {
		return nil, entities.ErrTaskNotFound
	}
	clone := *task
	return &clone, nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entities.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.tasks[task.ID]
	if !ok {
		return entities.ErrTaskNotFound
	}

	stored.Name = task.Name
	stored.Completed = task.Completed
	stored.Position = task.Position
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return entities.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) ListForProject(ctx context.Context, projectID uuid.UUID) ([]*entities.Task, error) {
	return r.snapshotForProject(projectID), nil
}

func (r *TaskRepository) CountForProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (r *TaskRepository) snapshotForProject(projectID uuid.UUID) []*entities.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var tasks []*entities.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			clone := *t
			tasks = append(tasks, &clone)
		}
	}

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Position != tasks[j].Position {
			return tasks[i].Position < tasks[j].Position
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})

	return tasks
}

// NoteRepository is an in-memory ports.NoteRepository.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*entities.Note
}

// NewNoteRepository creates an empty in-memory note repository.
func NewNoteRepository() *NoteRepository {
	return &NoteRepository{notes: make(map[uuid.UUID]*entities.Note)}
}

func (r *NoteRepository) Create(ctx context.Context, note *entities.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *note
	r.notes[note.ID] = &clone
	return nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok {
		return nil, entities.ErrNoteNotFound
	}
	clone := *note
	return &clone, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.notes[id]; !ok {
		return entities.ErrNoteNotFound
	}
	delete(r.notes, id)
	return nil
}

func (r *NoteRepository) ListForTask(ctx context.Context, taskID uuid.UUID) ([]*entities.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var notes []*entities.Note
	for _, n := range r.notes {
		if n.TaskID == taskID {
			clone := *n
			notes = append(notes, &clone)
		}
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})

	return notes, nil
}

func (r *NoteRepository) deleteForTask(taskID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notes {
		if n.TaskID == taskID {
			delete(r.notes, id)
		}
	}
}

// InvitationRepository is an in-memory ports.InvitationRepository.
type InvitationRepository struct {
	mu          sync.RWMutex
	invitations map[uuid.UUID]*entities.Invitation
}

// NewInvitationRepository creates an empty in-memory invitation repository.
func NewInvitationRepository() *InvitationRepository {
	return &InvitationRepository{invitations: make(map[uuid.UUID]*entities.Invitation)}
}

func (r *InvitationRepository) Create(ctx context.Context, invitation *entities.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *invitation
	r.invitations[invitation.ID] = &clone
	return nil
}

func (r *InvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	invitation, ok := r.invitations[id]
	if !ok {
		return nil, entities.ErrInvitationNotFound
	}
	clone := *invitation
	return &clone, nil
}

func (r *InvitationRepository) Update(ctx context.Context, invitation *entities.Invitation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.invitations[invitation.ID]
	if !ok {
		return entities.ErrInvitationNotFound
	}

	stored.Status = invitation.Status
	stored.RespondedAt = invitation.RespondedAt
	return nil
}

func (r *InvitationRepository) ListForRecipient(ctx context.Context, userID uuid.UUID, status *entities.InvitationStatus) ([]*entities.Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var invitations []*entities.Invitation
	for _, inv := range r.invitations {
		if inv.RecipientID != userID {
			continue
		}
		if status != nil && inv.Status != *status {
			continue
		}
		clone := *inv
		invitations = append(invitations, &clone)
	}

	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})

	return invitations, nil
}

func (r *InvitationRepository) HasPending(ctx context.Context, recipientID, projectID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, inv := range r.invitations {
		if inv.RecipientID == recipientID && inv.ProjectID == projectID && inv.Status == entities.InvitationStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *InvitationRepository) deleteForProject(projectID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, inv := range r.invitations {
		if inv.ProjectID == projectID {
			delete(r.invitations, id)
		}
	}
}

// AuthRepository is an in-memory ports.AuthRepository.
type AuthRepository struct {
	mu     sync.Mutex
	nextID int
	tokens map[string]*ports.RefreshToken
}

// NewAuthRepository creates an empty in-memory auth repository.
func NewAuthRepository() *AuthRepository {
	return &AuthRepository{tokens: make(map[string]*ports.RefreshToken)}
}

func (r *AuthRepository) CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.tokens[tokenHash] = &ports.RefreshToken{
		ID:        r.nextID,
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *AuthRepository) GetRefreshToken(ctx context.Context, tokenHash string) (*ports.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	token, ok := r.tokens[tokenHash]
	if !ok {
		return nil, fmt.Errorf("refresh token not found")
	}
	clone := *token
	return &clone, nil
}

func (r *AuthRepository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token, ok := r.tokens[tokenHash]; ok && token.RevokedAt == nil {
		now := time.Now()
		token.RevokedAt = &now
	}
	return nil
}

func (r *AuthRepository) RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for _, token := range r.tokens {
		if token.UserID == userID && token.RevokedAt == nil {
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *AuthRepository) CleanupExpiredTokens(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for hash, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, hash)
		}
	}
	return nil
}

func cloneUser(u *entities.User) *entities.User {
	clone := *u
	clone.ProjectOrder = append([]uuid.UUID(nil), u.ProjectOrder...)
	return &clone
}

func cloneProject(p *entities.Project) *entities.Project {
	clone := *p
	clone.Collaborators = append([]uuid.UUID(nil), p.Collaborators...)
	clone.TaskOrder = append([]uuid.UUID(nil), p.TaskOrder...)
	return &clone
}
