package ports

import (
	"github.com/24kewang/schedule-manager/internal/domain/entities"
)

// SessionProvider exposes the signed-in identity to the transport layer.
// It is the server-side counterpart of a client session: the middleware
// resolves the current user from the bearer token on every request.
type SessionProvider interface {
	ValidateToken(token string) (*Claims, error)
}

// Claims is the identity carried by an access token
type Claims struct {
	UserID string            `json:"user_id"`
	Email  string            `json:"email"`
	Role   entities.UserRole `json:"role"`
}

// Auth request/response types

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

// Course request types

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description"`
}

// MoveCourseRequest asks for a single-item drag move to TargetIndex within
// the user's current display order.
type MoveCourseRequest struct {
	TargetIndex int `json:"target_index" validate:"min=0"`
}

// Task request types

type CreateTaskRequest struct {
	CourseID    string  `json:"course_id" validate:"required,uuid"`
	TaskType    string  `json:"task_type" validate:"required,oneof=assignment assessment"`
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time"`
	DueDate     *string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	DueTime     *string `json:"due_time"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1"`
	Description *string `json:"description"`
	StartDate   *string `json:"start_date"`
	StartTime   *string `json:"start_time"`
	DueDate     *string `json:"due_date"`
	DueTime     *string `json:"due_time"`
}

// TaskView is a task decorated with the derived display attributes the
// client renders: status category, due label and its severity band.
type TaskView struct {
	*entities.Task
	Status         string  `json:"status"`
	DueLabel       *string `json:"due_label"`
	Severity       string  `json:"due_severity"`
	DueDateLabel   *string `json:"due_date_label"`
	StartDateLabel *string `json:"start_date_label"`
}

// CourseView is a course with its tasks sorted and decorated for display,
// split into the two sections the client shows.
type CourseView struct {
	*entities.Course
	Assignments []TaskView `json:"assignments"`
	Assessments []TaskView `json:"assessments"`
}

// TaskListFilter narrows a decorated task listing. Statuses holds allowed
// status names ("overdue", "imminent", ...); empty means all. Filtering
// never changes the relative order of the surviving tasks.
type TaskListFilter struct {
	Statuses    []string
	StarredOnly bool
}
