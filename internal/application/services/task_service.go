package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewboard/core/internal/domain/entities"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// TaskService handles task and note operations. Any project member
// (owner or collaborator) may create, update, toggle and delete tasks.
type TaskService struct {
	taskRepo    ports.TaskRepository
	projectRepo ports.ProjectRepository
	noteRepo    ports.NoteRepository
	cache       ports.CacheRepository
	logger      *logger.Logger
}

// NewTaskService creates a new task service. cache may be nil to
// disable caching.
func NewTaskService(taskRepo ports.TaskRepository, projectRepo ports.ProjectRepository, noteRepo ports.NoteRepository, cache ports.CacheRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		noteRepo:    noteRepo,
		cache:       cache,
		logger:      logger,
	}
}

// CreateTask creates a task under a project and appends its id to the
// project's task display order.
func (s *TaskService) CreateTask(ctx context.Context, callerID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, entities.ErrEmptyName
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(callerID) {
		return nil, entities.ErrProjectNotFound
	}

	position, err := s.taskRepo.CountForProject(ctx, req.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	task := &entities.Task{
		ID:        uuid.New(),
		OwnerID:   callerID,
		ProjectID: req.ProjectID,
		Name:      req.Name,
		Completed: false,
		Position:  position,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	// Second store write, not atomic with the first. A failure here
	// leaves the task present but unranked, which SortByOrder tolerates.
	if err := s.projectRepo.SetTaskOrder(ctx, project.ID, append(project.TaskOrder, task.ID)); err != nil {
		s.logger.Warn("Failed to append task to project order", "error", err, "task_id", task.ID)
	}

	s.invalidateMembers(ctx, project)

	s.logger.Info("Task created", "task_id", task.ID, "project_id", project.ID, "user_id", callerID)

	return task, nil
}

// GetTask returns the task if the caller can see its project.
func (s *TaskService) GetTask(ctx context.Context, callerID, id uuid.UUID) (*entities.Task, error) {
	task, _, err := s.authorizedTask(ctx, callerID, id)
	return task, err
}

// RenameTask replaces the task's name.
func (s *TaskService) RenameTask(ctx context.Context, callerID, id uuid.UUID, name string) (*entities.Task, error) {
	if strings.TrimSpace(name) == "" {
		return nil, entities.ErrEmptyName
	}

	task, _, err := s.authorizedTask(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	task.Name = name
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info("Task renamed", "task_id", task.ID, "user_id", callerID)

	return task, nil
}

// ToggleTask flips the task's completion flag.
func (s *TaskService) ToggleTask(ctx context.Context, callerID, id uuid.UUID) (*entities.Task, error) {
	task, _, err := s.authorizedTask(ctx, callerID, id)
	if err != nil {
		return nil, err
	}

	task.ToggleCompleted()
	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	s.logger.Info("Task toggled", "task_id", task.ID, "completed", task.Completed, "user_id", callerID)

	return task, nil
}

// DeleteTask removes the task, its notes, and its entry in the
// project's task order.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, id uuid.UUID) error {
	task, project, err := s.authorizedTask(ctx, callerID, id)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	order := make([]uuid.UUID, 0, len(project.TaskOrder))
	for _, tid := range project.TaskOrder {
		if tid != task.ID {
			order = append(order, tid)
		}
	}
	if len(order) != len(project.TaskOrder) {
		if err := s.projectRepo.SetTaskOrder(ctx, project.ID, order); err != nil {
			s.logger.Warn("Failed to drop task from project order", "error", err, "task_id", task.ID)
		}
	}

	s.invalidateMembers(ctx, project)

	s.logger.Info("Task deleted", "task_id", task.ID, "project_id", project.ID, "user_id", callerID)

	return nil
}

// ListTasks returns the project's tasks arranged by the project's task
// order, falling back to creation position.
func (s *TaskService) ListTasks(ctx context.Context, callerID, projectID uuid.UUID) ([]*entities.Task, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(callerID) {
		return nil, entities.ErrProjectNotFound
	}

	tasks, err := s.taskRepo.ListForProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	return entities.SortByOrder(tasks, project.TaskOrder, func(t *entities.Task) uuid.UUID {
		return t.ID
	}), nil
}

// AddNote attaches a note to the task. Notes are immutable after
// creation.
func (s *TaskService) AddNote(ctx context.Context, callerID, taskID uuid.UUID, content string) (*entities.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, entities.ErrEmptyName
	}

	task, _, err := s.authorizedTask(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}

	note := &entities.Note{
		ID:        uuid.New(),
		TaskID:    task.ID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.noteRepo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("Note added", "note_id", note.ID, "task_id", task.ID, "user_id", callerID)

	return note, nil
}

// ListNotes returns the task's notes in creation order.
func (s *TaskService) ListNotes(ctx context.Context, callerID, taskID uuid.UUID) ([]*entities.Note, error) {
	task, _, err := s.authorizedTask(ctx, callerID, taskID)
	if err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.ListForTask(ctx, task.ID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

// DeleteNote removes a note. Deletion is the only mutation notes allow.
func (s *TaskService) DeleteNote(ctx context.Context, callerID, noteID uuid.UUID) error {
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		return fmt.Errorf("get note: %w", err)
	}

	if _, _, err := s.authorizedTask(ctx, callerID, note.TaskID); err != nil {
		return entities.ErrNoteNotFound
	}

	if err := s.noteRepo.Delete(ctx, noteID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info("Note deleted", "note_id", noteID, "user_id", callerID)

	return nil
}

// authorizedTask loads a task and its project and checks the caller
// can see them. Inaccessible tasks answer not-found.
func (s *TaskService) authorizedTask(ctx context.Context, callerID, taskID uuid.UUID) (*entities.Task, *entities.Project, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, nil, fmt.Errorf("get task: %w", err)
	}

	project, err := s.projectRepo.GetByID(ctx, task.ProjectID)
	if err != nil {
		return nil, nil, fmt.Errorf("get project: %w", err)
	}

	if !project.CanView(callerID) {
		return nil, nil, entities.ErrTaskNotFound
	}

	return task, project, nil
}

func (s *TaskService) invalidateMembers(ctx context.Context, project *entities.Project) {
	if s.cache == nil {
		return
	}
	keys := append([]uuid.UUID{project.OwnerID}, project.Collaborators...)
	for _, id := range keys {
		if err := s.cache.Delete(ctx, projectListKey(id)); err != nil {
			s.logger.Debug("Failed to invalidate project listing", "error", err, "user_id", id)
		}
	}
}
