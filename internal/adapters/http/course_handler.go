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

// CourseHandler handles course-related requests
type CourseHandler struct {
	courseService *services.CourseService
	logger        *logger.Logger
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(courseService *services.CourseService, logger *logger.Logger) *CourseHandler {
	return &CourseHandler{
		courseService: courseService,
		logger:        logger,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Tags courses
// @Accept json
// @Produce json
// @Param course body ports.CreateCourseRequest true "Course data"
// @Success 201 {object} entities.Course
// @Security BearerAuth
// @Router /courses [post]
func (h *CourseHandler) CreateCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	var req ports.CreateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.CreateCourse(c.Request().Context(), userID, req)
	if err != nil {
		h.logger.Error("Create course failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, course)
}

// ListCourses returns the user's courses in display order
// @Summary List courses
// @Tags courses
// @Produce json
// @Success 200 {array} entities.Course
// @Security BearerAuth
// @Router /courses [get]
func (h *CourseHandler) ListCourses(c echo.Context) error {
	userID := getUserIDFromContext(c)

	courses, err := h.courseService.ListCourses(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("List courses failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, courses)
}

// ListCourseViews returns courses with their decorated task lists
// @Summary List courses with tasks
// @Tags courses
// @Produce json
// @Param statuses query string false "Comma-separated status filter"
// @Param starred query bool false "Starred tasks only"
// @Success 200 {array} ports.CourseView
// @Security BearerAuth
// @Router /courses/views [get]
func (h *CourseHandler) ListCourseViews(c echo.Context) error {
	userID := getUserIDFromContext(c)

	views, err := h.courseService.ListCourseViews(c.Request().Context(), userID, time.Now(), taskListFilter(c))
	if err != nil {
		h.logger.Error("List course views failed", "error", err, "user_id", userID)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, views)
}

// GetCourse returns a single course
// @Summary Get a course
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} entities.Course
// @Security BearerAuth
// @Router /courses/{id} [get]
func (h *CourseHandler) GetCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course ID")
	}

	course, err := h.courseService.GetCourse(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, course)
}

// UpdateCourse handles course updates
// @Summary Update a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param course body ports.UpdateCourseRequest true "Course data"
// @Success 200 {object} entities.Course
// @Security BearerAuth
// @Router /courses/{id} [put]
func (h *CourseHandler) UpdateCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course ID")
	}

	var req ports.UpdateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.courseService.UpdateCourse(c.Request().Context(), userID, id, req)
	if err != nil {
		h.logger.Error("Update course failed", "error", err, "course_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, course)
}

// DeleteCourse handles course deletion
// @Summary Delete a course and its tasks
// @Tags courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} MessageResponse
// @Security BearerAuth
// @Router /courses/{id} [delete]
func (h *CourseHandler) DeleteCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course ID")
	}

	if err := h.courseService.DeleteCourse(c.Request().Context(), userID, id); err != nil {
		h.logger.Error("Delete course failed", "error", err, "course_id", id)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Course deleted successfully"})
}

// MoveCourse moves a course to a new position in the display order
// @Summary Move a course
// @Tags courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param move body ports.MoveCourseRequest true "Target index"
// @Success 200 {array} entities.Course
// @Security BearerAuth
// @Router /courses/{id}/move [post]
func (h *CourseHandler) MoveCourse(c echo.Context) error {
	userID := getUserIDFromContext(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid course ID")
	}

	var req ports.MoveCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	courses, err := h.courseService.MoveCourse(c.Request().Context(), userID, id, req.TargetIndex)
	if err != nil {
		h.logger.Error("Move course failed", "error", err, "course_id", id, "target_index", req.TargetIndex)
		return domainError(err)
	}

	return c.JSON(http.StatusOK, courses)
}
