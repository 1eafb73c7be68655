package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/domain/scheduling"
	"github.com/24kewang/schedule-manager/internal/infrastructure/logger"
	"github.com/24kewang/schedule-manager/internal/ports"
)

// TaskService handles task-related operations
type TaskService struct {
	taskRepo   ports.TaskRepository
	courseRepo ports.CourseRepository
	logger     *logger.Logger
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo ports.TaskRepository, courseRepo ports.CourseRepository, logger *logger.Logger) *TaskService {
	return &TaskService{
		taskRepo:   taskRepo,
		courseRepo: courseRepo,
		logger:     logger,
	}
}

// CreateTask creates a task attached to one of the user's courses. New
// tasks start out incomplete and unstarred.
func (s *TaskService) CreateTask(ctx context.Context, userID uuid.UUID, req ports.CreateTaskRequest) (*entities.Task, error) {
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("invalid course id: %w", err)
	}

	if _, err := s.ownedCourse(ctx, userID, courseID); err != nil {
		return nil, err
	}

	task := &entities.Task{
		CourseID:    courseID,
		TaskType:    entities.TaskType(req.TaskType),
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		StartTime:   req.StartTime,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task created", "task_id", task.ID, "course_id", courseID, "type", task.TaskType)

	return task, nil
}

// GetTask retrieves one of the user's tasks
func (s *TaskService) GetTask(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.ownedCourse(ctx, userID, task.CourseID); err != nil {
		return nil, entities.ErrTaskNotFound
	}
	return task, nil
}

// UpdateTask updates a task's editable fields
func (s *TaskService) UpdateTask(ctx context.Context, userID, id uuid.UUID, req ports.UpdateTaskRequest) (*entities.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.StartDate != nil {
		task.StartDate = emptyToNil(req.StartDate)
	}
	if req.StartTime != nil {
		task.StartTime = emptyToNil(req.StartTime)
	}
	if req.DueDate != nil {
		task.DueDate = emptyToNil(req.DueDate)
	}
	if req.DueTime != nil {
		task.DueTime = emptyToNil(req.DueTime)
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task updated", "task_id", task.ID)

	return task, nil
}

// DeleteTask deletes one of the user's tasks
func (s *TaskService) DeleteTask(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetTask(ctx, userID, id); err != nil {
		return err
	}

	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task deleted", "task_id", id)

	return nil
}

// ToggleComplete flips an assignment's completion flag. Assessments carry
// no completion flag; they complete by their due date elapsing.
func (s *TaskService) ToggleComplete(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !task.IsAssignment() {
		return nil, entities.ErrAssessmentCompletion
	}

	task.IsCompleted = !task.IsCompleted
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task completion toggled", "task_id", task.ID, "is_completed", task.IsCompleted)

	return task, nil
}

// ToggleStar flips a task's starred flag
func (s *TaskService) ToggleStar(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	task.IsStarred = !task.IsStarred
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("Task star toggled", "task_id", task.ID, "is_starred", task.IsStarred)

	return task, nil
}

// DuplicateTask inserts a copy of the task with completion and star cleared
func (s *TaskService) DuplicateTask(ctx context.Context, userID, id uuid.UUID) (*entities.Task, error) {
	task, err := s.GetTask(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	copied := task.Duplicate()
	if err := s.taskRepo.Create(ctx, copied); err != nil {
		return nil, fmt.Errorf("failed to duplicate task: %w", err)
	}

	s.logger.Info("Task duplicated", "task_id", id, "copy_id", copied.ID)

	return copied, nil
}

// ListCourseTasks returns a course's tasks sorted, filtered and decorated
// for display, split into the assignment and assessment sections.
func (s *TaskService) ListCourseTasks(ctx context.Context, userID, courseID uuid.UUID, now time.Time, filter ports.TaskListFilter) (assignments, assessments []ports.TaskView, err error) {
	if _, err := s.ownedCourse(ctx, userID, courseID); err != nil {
		return nil, nil, err
	}

	tasks, err := s.taskRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	assignmentTasks, assessmentTasks := scheduling.SplitByType(derefTasks(tasks))
	return buildAssignmentViews(assignmentTasks, now, filter), buildAssessmentViews(assessmentTasks, now, filter), nil
}

func (s *TaskService) ownedCourse(ctx context.Context, userID, courseID uuid.UUID) (*entities.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.UserID != userID {
		return nil, entities.ErrCourseNotFound
	}
	return course, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
