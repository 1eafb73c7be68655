package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/24kewang/schedule-manager/internal/domain/entities"
	"github.com/24kewang/schedule-manager/internal/ports"
)

// TaskRepositoryImpl implements the TaskRepository interface
type TaskRepositoryImpl struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *sqlx.DB) ports.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *entities.Task) error {
	query := `
		INSERT INTO tasks (id, course_id, task_type, name, description,
			start_date, start_time, due_date, due_time, is_completed, is_starred)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at`

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.CourseID, task.TaskType, task.Name, task.Description,
		task.StartDate, task.StartTime, task.DueDate, task.DueTime,
		task.IsCompleted, task.IsStarred,
	).Scan(&task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	query := `
		SELECT id, course_id, task_type, name, description, start_date, start_time,
			due_date, due_time, is_completed, is_starred, created_at, updated_at
		FROM tasks
		WHERE id = $1`

	var task entities.Task
	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task by id: %w", err)
	}

	return &task, nil
}

// ListByCourse returns a course's tasks in ascending due-date order with
// undated tasks first. Due dates are stored as YYYY-MM-DD text, so the
// lexicographic order is the chronological one.
func (r *TaskRepositoryImpl) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT id, course_id, task_type, name, description, start_date, start_time,
			due_date, due_time, is_completed, is_starred, created_at, updated_at
		FROM tasks
		WHERE course_id = $1
		ORDER BY due_date ASC NULLS FIRST, due_time ASC NULLS FIRST`

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by course: %w", err)
	}

	return tasks, nil
}

// ListByUser returns every task across the user's courses, due date
// ascending, undated first.
func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Task, error) {
	query := `
		SELECT t.id, t.course_id, t.task_type, t.name, t.description, t.start_date,
			t.start_time, t.due_date, t.due_time, t.is_completed, t.is_starred,
			t.created_at, t.updated_at
		FROM tasks t
		JOIN courses c ON c.id = t.course_id
		WHERE c.user_id = $1
		ORDER BY t.due_date ASC NULLS FIRST, t.due_time ASC NULLS FIRST`

	tasks := []*entities.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks by user: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepositoryImpl) Update(ctx context.Context, task *entities.Task) error {
	query := `
		UPDATE tasks
		SET name = $2, description = $3, start_date = $4, start_time = $5,
			due_date = $6, due_time = $7, is_completed = $8, is_starred = $9,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		task.ID, task.Name, task.Description, task.StartDate, task.StartTime,
		task.DueDate, task.DueTime, task.IsCompleted, task.IsStarred,
	).Scan(&task.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrTaskNotFound
		}
		return fmt.Errorf("update task: %w", err)
	}

	return nil
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM tasks WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrTaskNotFound
	}

	return nil
}
