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

// CourseRepositoryImpl implements the CourseRepository interface
type CourseRepositoryImpl struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sqlx.DB) ports.CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

func (r *CourseRepositoryImpl) Create(ctx context.Context, course *entities.Course) error {
	query := `
		INSERT INTO courses (id, user_id, title, description, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}

	err := r.db.QueryRowContext(ctx, query,
		course.ID, course.UserID, course.Title, course.Description, course.DisplayOrder,
	).Scan(&course.CreatedAt, &course.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	return nil
}

func (r *CourseRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Course, error) {
	query := `
		SELECT id, user_id, title, description, display_order, created_at, updated_at
		FROM courses
		WHERE id = $1`

	var course entities.Course
	err := r.db.GetContext(ctx, &course, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course by id: %w", err)
	}

	return &course, nil
}

// ListByUser returns the user's courses in display order: position key
// ascending with NULL keys last, ties broken by newest first.
func (r *CourseRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Course, error) {
	query := `
		SELECT id, user_id, title, description, display_order, created_at, updated_at
		FROM courses
		WHERE user_id = $1
		ORDER BY display_order ASC NULLS LAST, created_at DESC`

	courses := []*entities.Course{}
	err := r.db.SelectContext(ctx, &courses, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepositoryImpl) Update(ctx context.Context, course *entities.Course) error {
	query := `
		UPDATE courses
		SET title = $2, description = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query,
		course.ID, course.Title, course.Description,
	).Scan(&course.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrCourseNotFound
		}
		return fmt.Errorf("update course: %w", err)
	}

	return nil
}

// UpdatePosition writes a single position key. Reorder moves issue one of
// these per affected course.
func (r *CourseRepositoryImpl) UpdatePosition(ctx context.Context, id uuid.UUID, position int64) error {
	query := `
		UPDATE courses
		SET display_order = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, position)
	if err != nil {
		return fmt.Errorf("update course position: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrCourseNotFound
	}

	return nil
}

// Delete removes a course. The tasks foreign key cascades, so the course's
// tasks are deleted with it.
func (r *CourseRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM courses WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return entities.ErrCourseNotFound
	}

	return nil
}
