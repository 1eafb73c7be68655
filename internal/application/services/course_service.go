package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/domain/scheduling"
	"github.com/24kewang/schedule-manager/internal/infrastructure/logger"
	"github.com/24kewang/schedule-manager/internal/ports"
)

const courseCacheTTL = 5 * time.Minute

// CourseService handles course CRUD and display-order moves
type CourseService struct {
	courseRepo ports.CourseRepository
	taskRepo   ports.TaskRepository
	cache      ports.CacheRepository
	logger     *logger.Logger
}

// NewCourseService creates a new course service. cache may be nil, in which
// case listings always hit the store.
func NewCourseService(courseRepo ports.CourseRepository, taskRepo ports.TaskRepository, cache ports.CacheRepository, logger *logger.Logger) *CourseService {
	return &CourseService{
		courseRepo: courseRepo,
		taskRepo:   taskRepo,
		cache:      cache,
		logger:     logger,
	}
}

// CreateCourse creates a course for the user. New courses take position key
// zero, which places them ahead of every renumbered course.
func (s *CourseService) CreateCourse(ctx context.Context, userID uuid.UUID, req ports.CreateCourseRequest) (*entities.Course, error) {
	initialPosition := int64(0)
	course := &entities.Course{
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		DisplayOrder: &initialPosition,
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.invalidateListing(ctx, userID)
	s.logger.Info("Course created", "course_id", course.ID, "user_id", userID)

	return course, nil
}

// ListCourses returns the user's courses in display order: position key
// ascending, unkeyed courses last, newest first among ties.
func (s *CourseService) ListCourses(ctx context.Context, userID uuid.UUID) ([]*entities.Course, error) {
	if s.cache != nil {
		var cached []*entities.Course
		if err := s.cache.Get(ctx, courseListKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, courseListKey(userID), courses, courseCacheTTL); err != nil {
			s.logger.Warn("Failed to cache course listing", "error", err, "user_id", userID)
		}
	}

	return courses, nil
}

// ListCourseViews returns the user's courses with their tasks sorted,
// filtered and decorated for display.
func (s *CourseService) ListCourseViews(ctx context.Context, userID uuid.UUID, now time.Time, filter ports.TaskListFilter) ([]ports.CourseView, error) {
	courses, err := s.ListCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	byCourse := make(map[uuid.UUID][]entities.Task, len(courses))
	for _, t := range tasks {
		byCourse[t.CourseID] = append(byCourse[t.CourseID], *t)
	}

	views := make([]ports.CourseView, len(courses))
	for i, course := range courses {
		assignments, assessments := scheduling.SplitByType(byCourse[course.ID])
		views[i] = ports.CourseView{
			Course:      course,
			Assignments: buildAssignmentViews(assignments, now, filter),
			Assessments: buildAssessmentViews(assessments, now, filter),
		}
	}

	return views, nil
}

// GetCourse retrieves one of the user's courses
func (s *CourseService) GetCourse(ctx context.Context, userID, id uuid.UUID) (*entities.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, entities.ErrCourseNotFound
	}
	return course, nil
}

// UpdateCourse updates a course's title and description
func (s *CourseService) UpdateCourse(ctx context.Context, userID, id uuid.UUID, req ports.UpdateCourseRequest) (*entities.Course, error) {
	course, err := s.GetCourse(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = req.Description
	}

	if err := course.Validate(); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.invalidateListing(ctx, userID)
	s.logger.Info("Course updated", "course_id", course.ID, "user_id", userID)

	return course, nil
}

// DeleteCourse deletes a course. Its tasks go with it: the store cascades
// the delete over the foreign key.
func (s *CourseService) DeleteCourse(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetCourse(ctx, userID, id); err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	s.invalidateListing(ctx, userID)
	s.logger.Info("Course deleted", "course_id", id, "user_id", userID)

	return nil
}

// MoveCourse moves one course to targetIndex within the user's display
// order and persists the position keys the reorder engine computed. The
// plan is computed from a fresh listing, never from a stale snapshot. Most
// moves write a single key; a collapsed gap renumbers every course. A
// failed write does not abort the remaining writes in a renumber batch:
// any applied subset still moves the ordering toward consistency, and the
// listing returned afterward is the authoritative order either way.
func (s *CourseService) MoveCourse(ctx context.Context, userID, courseID uuid.UUID, targetIndex int) ([]*entities.Course, error) {
	courses, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	from := -1
	for i, c := range courses {
		if c.ID == courseID {
			from = i
			break
		}
	}
	if from == -1 {
		return nil, entities.ErrCourseNotFound
	}
	if targetIndex < 0 || targetIndex >= len(courses) {
		return nil, entities.ErrInvalidMoveIndex
	}

	plan := scheduling.PlanMove(scheduling.CourseItems(courses), from, targetIndex)
	if len(plan.Updates) == 0 {
		// Dropped back where it started: nothing to write.
		return courses, nil
	}

	var writeErrs []error
	for _, update := range plan.Updates {
		if err := s.courseRepo.UpdatePosition(ctx, update.ID, update.Position); err != nil {
			s.logger.Error("Position write failed", "course_id", update.ID, "position", update.Position, "error", err)
			writeErrs = append(writeErrs, fmt.Errorf("update position of %s: %w", update.ID, err))
		}
	}

	s.invalidateListing(ctx, userID)
	s.logger.Info("Course moved",
		"course_id", courseID,
		"target_index", targetIndex,
		"writes", len(plan.Updates),
		"renumbered", plan.Renumbered,
	)

	refreshed, err := s.courseRepo.ListByUser(ctx, userID)
	if err != nil {
		writeErrs = append(writeErrs, fmt.Errorf("failed to re-list courses: %w", err))
		return nil, errors.Join(writeErrs...)
	}

	if len(writeErrs) > 0 {
		return refreshed, errors.Join(writeErrs...)
	}
	return refreshed, nil
}

// invalidateListing drops the user's listing key along with any derived
// keys under the same prefix.
func (s *CourseService) invalidateListing(ctx context.Context, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, courseListKey(userID)+"*"); err != nil {
		s.logger.Warn("Failed to invalidate course listing cache", "error", err, "user_id", userID)
	}
}

func courseListKey(userID uuid.UUID) string {
	return "courses:" + userID.String()
}
