package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrTaskNotFound         = errors.New("task not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrEmptyTitle           = errors.New("course title must not be empty")
	ErrEmptyName            = errors.New("task name must not be empty")
	ErrInvalidTaskType      = errors.New("invalid task type")
	ErrAssessmentCompletion = errors.New("assessments have no completion flag")
	ErrInvalidMoveIndex     = errors.New("move index out of range")
)

// Enums and types
type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

type TaskType string

const (
	TaskTypeAssignment TaskType = "assignment"
	TaskTypeAssessment TaskType = "assessment"
)

// User represents an account that owns courses
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	Username     string     `json:"username" db:"username"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         UserRole   `json:"role" db:"role"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" db:"deleted_at"`
}

// Course represents a course owned by a user. DisplayOrder is the position
// key used for drag-and-drop ordering: courses with a key sort ascending by
// it, courses without one sort after all keyed courses, newest first.
type Course struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Title        string    `json:"title" db:"title"`
	Description  *string   `json:"description" db:"description"`
	DisplayOrder *int64    `json:"display_order" db:"display_order"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Task represents an assignment or assessment attached to a course.
// Dates and times are stored exactly as entered (YYYY-MM-DD / HH:MM[:SS])
// and interpreted as local wall-clock values, never zone-aware instants.
type Task struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CourseID    uuid.UUID `json:"course_id" db:"course_id"`
	TaskType    TaskType  `json:"task_type" db:"task_type"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	StartDate   *string   `json:"start_date" db:"start_date"`
	StartTime   *string   `json:"start_time" db:"start_time"`
	DueDate     *string   `json:"due_date" db:"due_date"`
	DueTime     *string   `json:"due_time" db:"due_time"`
	IsCompleted bool      `json:"is_completed" db:"is_completed"`
	IsStarred   bool      `json:"is_starred" db:"is_starred"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Validate checks the invariants a course must satisfy before it is stored.
func (c *Course) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Validate checks the invariants a task must satisfy before it is stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.TaskType.IsValid() {
		return ErrInvalidTaskType
	}
	return nil
}

// IsAssignment reports whether the task carries a completion checkbox.
func (t *Task) IsAssignment() bool {
	return t.TaskType == TaskTypeAssignment
}

// Duplicate returns a copy of the task ready for insertion: fresh identity,
// completion and star cleared.
func (t *Task) Duplicate() *Task {
	copied := *t
	copied.ID = uuid.Nil
	copied.IsCompleted = false
	copied.IsStarred = false
	return &copied
}

func (ur UserRole) IsValid() bool {
	switch ur {
	case UserRoleAdmin, UserRoleStudent:
		return true
	default:
		return false
	}
}

func (tt TaskType) IsValid() bool {
	switch tt {
	case TaskTypeAssignment, TaskTypeAssessment:
		return true
	default:
		return false
	}
}
