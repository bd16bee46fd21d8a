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

const projectListTTL = 5 * time.Minute

// projectListKey is the cache key for a user's project listing.
func projectListKey(userID uuid.UUID) string {
	return fmt.Sprintf("projects:user:%s", userID)
}

// ProjectService handles project operations and is the single
// authority for task ordering within a project.
type ProjectService struct {
	projectRepo ports.ProjectRepository
	taskRepo    ports.TaskRepository
	userRepo    ports.UserRepository
	cache       ports.CacheRepository
	logger      *logger.Logger
}

// NewProjectService creates a new project service. cache may be nil to
// disable caching.
func NewProjectService(projectRepo ports.ProjectRepository, taskRepo ports.TaskRepository, userRepo ports.UserRepository, cache ports.CacheRepository, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CreateProject creates a project owned by ownerID and appends it to
// the owner's project display order.
func (s *ProjectService) CreateProject(ctx context.Context, ownerID uuid.UUID, req ports.CreateProjectRequest) (*entities.Project, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	project := &entities.Project{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		Name:          req.Name,
		Note:          req.Note,
		Collaborators: []uuid.UUID{},
		TaskOrder:     []uuid.UUID{},
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := s.userRepo.SetProjectOrder(ctx, ownerID, append(owner.ProjectOrder, project.ID)); err != nil {
		s.logger.Warn("Failed to append project to owner order", "error", err, "project_id", project.ID)
	}

	s.invalidateListing(ctx, ownerID)

	s.logger.Info("Project created", "project_id", project.ID, "owner_id", ownerID)

	return project, nil
}

// GetProject returns the project if the caller owns or collaborates on it.
func (s *ProjectService) GetProject(ctx context.Context, callerID, id uuid.UUID) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(callerID) {
		return nil, entities.ErrProjectNotFound
	}

	return project, nil
}

// UpdateProject renames the project or replaces its note. Only the
// owner may update; a collaborator gets the same not-found answer as a
// stranger.
func (s *ProjectService) UpdateProject(ctx context.Context, callerID, id uuid.UUID, req ports.UpdateProjectRequest) (*entities.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if !project.IsOwner(callerID) {
		return nil, entities.ErrProjectNotFound
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Note != nil {
		project.Note = req.Note
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}

	s.invalidateMembers(ctx, project)

	s.logger.Info("Project updated", "project_id", project.ID, "owner_id", callerID)

	return project, nil
}

// DeleteProject removes the project. Tasks, their notes and pending
// invitations cascade with it.
func (s *ProjectService) DeleteProject(ctx context.Context, callerID, id uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if !project.IsOwner(callerID) {
		return entities.ErrProjectNotFound
	}

	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	s.invalidateMembers(ctx, project)

	s.logger.Info("Project deleted", "project_id", id, "owner_id", callerID)

	return nil
}

// ListProjects returns the projects the user owns or collaborates on,
// arranged by the user's stored project order.
func (s *ProjectService) ListProjects(ctx context.Context, userID uuid.UUID) ([]*entities.Project, error) {
	if s.cache != nil {
		var cached []*entities.Project
		if err := s.cache.Get(ctx, projectListKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	projects, err := s.projectRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	projects = entities.SortByOrder(projects, user.ProjectOrder, func(p *entities.Project) uuid.UUID {
		return p.ID
	})

	if s.cache != nil {
		if err := s.cache.Set(ctx, projectListKey(userID), projects, projectListTTL); err != nil {
			s.logger.Debug("Failed to cache project listing", "error", err, "user_id", userID)
		}
	}

	return projects, nil
}

// SetTaskOrder replaces the project's task display order. Owner and
// collaborators may reorder; the submitted list must be an exact
// permutation of the project's current task ids.
func (s *ProjectService) SetTaskOrder(ctx context.Context, callerID, projectID uuid.UUID, order []uuid.UUID) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(callerID) {
		return entities.ErrProjectNotFound
	}

	tasks, err := s.taskRepo.ListForProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}

	current := make([]uuid.UUID, len(tasks))
	for i, t := range tasks {
		current[i] = t.ID
	}

	if err := entities.ValidateOrder(order, current); err != nil {
		return err
	}

	if err := s.projectRepo.SetTaskOrder(ctx, projectID, order); err != nil {
		return fmt.Errorf("set task order: %w", err)
	}

	s.invalidateMembers(ctx, project)

	s.logger.Info("Task order updated", "project_id", projectID, "user_id", callerID, "tasks", len(order))

	return nil
}

// invalidateListing drops one user's cached project listing.
func (s *ProjectService) invalidateListing(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, projectListKey(userID)); err != nil {
		s.logger.Debug("Failed to invalidate project listing", "error", err, "user_id", userID)
	}
}

// invalidateMembers drops the cached listings of everyone who can see
// the project.
func (s *ProjectService) invalidateMembers(ctx context.Context, project *entities.Project) {
	s.invalidateListing(ctx, project.OwnerID)
	for _, id := range project.Collaborators {
		s.invalidateListing(ctx, id)
	}
}
