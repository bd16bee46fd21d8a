package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crewboard/core/internal/application/services"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// TaskHandler handles task and note requests
type TaskHandler struct {
	taskService *services.TaskService
	logger      *logger.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService *services.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		logger:      logger,
	}
}

// CreateTask godoc
// @Summary Create a task
// @Description Add a task to a project the current user owns or collaborates on
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create task failed", "error", err, "user_id", userID, "project_id", req.ProjectID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask godoc
// @Summary Get task by ID
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), userID, taskID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// RenameTask godoc
// @Summary Rename a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.RenameTaskRequest true "New name"
// @Success 200 {object} entities.Task
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) RenameTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.RenameTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.RenameTask(c.Request().Context(), userID, taskID, req.Name)
	if err != nil {
		h.logger.Error("Rename task failed", "error", err, "user_id", userID, "task_id", taskID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// ToggleTask godoc
// @Summary Toggle task completion
// @Description Flip the task between completed and not completed
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/toggle [put]
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.ToggleTask(c.Request().Context(), userID, taskID)
	if err != nil {
		h.logger.Error("Toggle task failed", "error", err, "user_id", userID, "task_id", taskID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Delete a task together with its notes
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), userID, taskID); err != nil {
		h.logger.Error("Delete task failed", "error", err, "user_id", userID, "task_id", taskID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task deleted"})
}

// AddNote godoc
// @Summary Add a note to a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ports.AddNoteRequest true "Note content"
// @Success 201 {object} entities.Note
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/notes [post]
func (h *TaskHandler) AddNote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.AddNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.taskService.AddNote(c.Request().Context(), userID, taskID, req.Content)
	if err != nil {
		h.logger.Error("Add note failed", "error", err, "user_id", userID, "task_id", taskID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, note)
}

// ListNotes godoc
// @Summary List a task's notes
// @Description List the task's notes in chronological order
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {array} entities.Note
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /tasks/{id}/notes [get]
func (h *TaskHandler) ListNotes(c echo.Context) error {
	userID := getUserIDFromContext(c)

	taskID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	notes, err := h.taskService.ListNotes(c.Request().Context(), userID, taskID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, notes)
}

// DeleteNote godoc
// @Summary Delete a note
// @Tags notes
// @Produce json
// @Param id path string true "Note ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /notes/{id} [delete]
func (h *TaskHandler) DeleteNote(c echo.Context) error {
	userID := getUserIDFromContext(c)

	noteID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteNote(c.Request().Context(), userID, noteID); err != nil {
		h.logger.Error("Delete note failed", "error", err, "user_id", userID, "note_id", noteID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Note deleted"})
}
