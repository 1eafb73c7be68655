package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/24kewang/schedule-manager/internal/application/services"
	"github.com/24kewang/schedule-manager/internal/infrastructure/logger"
	"github.com/24kewang/schedule-manager/internal/ports"
)

// TaskHandler handles task-related requests
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

// CourseTasksResponse groups a course's decorated tasks by type.
type CourseTasksResponse struct {
	Assignments []ports.TaskView `json:"assignments"`
	Assessments []ports.TaskView `json:"assessments"`
}

// CreateTask handles task creation
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body ports.CreateTaskRequest true "Task data"
// @Success 201 {object} entities.Task
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
		h.logger.Error("Create task failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a single task
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id} [get]
func (h *TaskHandler) GetTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.GetTask(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// UpdateTask handles task updates
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body ports.UpdateTaskRequest true "Task data"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	var req ports.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), userID, id, req)
	if err != nil {
		h.logger.Error("Update task failed", "error", err, "task_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DeleteTask handles task deletion
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Security BearerAuth
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), userID, id); err != nil {
		h.logger.Error("Delete task failed", "error", err, "task_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// ToggleComplete flips the completion flag of an assignment
// @Summary Toggle task completion
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/complete [post]
func (h *TaskHandler) ToggleComplete(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.ToggleComplete(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// ToggleStar flips the starred flag of a task
// @Summary Toggle task star
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/star [post]
func (h *TaskHandler) ToggleStar(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.ToggleStar(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, task)
}

// DuplicateTask creates a copy of an existing task
// @Summary Duplicate a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 201 {object} entities.Task
// @Security BearerAuth
// @Router /tasks/{id}/duplicate [post]
func (h *TaskHandler) DuplicateTask(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid task ID")
	}

	task, err := h.taskService.DuplicateTask(c.Request().Context(), userID, id)
	if err != nil {
		h.logger.Error("Duplicate task failed", "error", err, "task_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, task)
}

// ListCourseTasks returns a course's tasks, sorted, filtered and decorated
// @Summary List tasks for a course
// @Tags tasks
// @Produce json
// @Param id path string true "Course ID"
// @Param statuses query string false "Comma-separated status filter"
// @Param starred query bool false "Starred tasks only"
// @Success 200 {object} CourseTasksResponse
// @Security BearerAuth
// @Router /courses/{id}/tasks [get]
func (h *TaskHandler) ListCourseTasks(c echo.Context) error {
	userID := getUserIDFromContext(c)

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course ID")
	}

	assignments, assessments, err := h.taskService.ListCourseTasks(c.Request().Context(), userID, courseID, time.Now(), taskListFilter(c))
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, CourseTasksResponse{
		Assignments: assignments,
		Assessments: assessments,
	})
}
