package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crewboard/core/internal/application/services"
	"github.com/crewboard/core/internal/infrastructure/logger"
	"github.com/crewboard/core/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
		logger:         logger,
	}
}

// CreateProject godoc
// @Summary Create a new project
// @Description Create a project owned by the current user
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project data"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create project failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, project)
}

// ListProjects godoc
// @Summary List projects
// @Description List all projects the current user owns or collaborates on, in the user's stored order
// @Tags projects
// @Produce json
// @Success 200 {array} entities.Project
// @Failure 401 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projects, err := h.projectService.ListProjects(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List projects failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projectID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	project, err := h.projectService.GetProject(c.Request().Context(), userID, projectID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Description Rename a project or change its note. Owner only.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projectID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), userID, projectID, req)
	if err != nil {
		h.logger.Error("Update project failed", "error", err, "user_id", userID, "project_id", projectID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Description Delete a project with its tasks, notes and invitations. Owner only.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projectID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.projectService.DeleteProject(c.Request().Context(), userID, projectID); err != nil {
		h.logger.Error("Delete project failed", "error", err, "user_id", userID, "project_id", projectID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Project deleted"})
}

// SetTaskOrder godoc
// @Summary Reorder a project's tasks
// @Description Replace the stored task ordering. The submitted list must contain exactly the IDs of the project's tasks.
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.TaskOrderRequest true "Task IDs in the desired order"
// @Success 200 {object} ports.MessageResponse
// @Failure 400 {object} ports.ErrorResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/task-order [put]
func (h *ProjectHandler) SetTaskOrder(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projectID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.TaskOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.projectService.SetTaskOrder(c.Request().Context(), userID, projectID, req.TaskOrder); err != nil {
		h.logger.Error("Set task order failed", "error", err, "user_id", userID, "project_id", projectID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Task order updated"})
}

// ListProjectTasks godoc
// @Summary List a project's tasks
// @Description List the project's tasks in the project's stored order
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} entities.Task
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /projects/{id}/tasks [get]
func (h *ProjectHandler) ListProjectTasks(c echo.Context) error {
	userID := getUserIDFromContext(c)

	projectID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.Request().Context(), userID, projectID)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, tasks)
}
