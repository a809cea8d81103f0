package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
)

type CoursePostgres struct {
	db *pgxpool.Pool
}

func NewCoursePostgres(db *pgxpool.Pool) *CoursePostgres {
	return &CoursePostgres{db: db}
}

// CourseByID loads the course together with its current module/lesson shape.
// Progress denominators always come from this load, never from a snapshot.
func (r *CoursePostgres) CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	query := `
    SELECT id, title, description, instructor_id, instructor_name,
           enrolled_count, is_published, created_at, updated_at
      FROM courses
     WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.Title, &course.Description, &course.InstructorID,
		&course.InstructorName, &course.EnrolledCount, &course.IsPublished,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to load course: %w", err)
	}

	modules, err := r.modulesByCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Modules = modules
	return &course, nil
}

func (r *CoursePostgres) modulesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Module, error) {
	query := `
    SELECT id, course_id, title, module_order
      FROM modules
     WHERE course_id = $1
     ORDER BY module_order
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query modules: %w", err)
	}
	defer rows.Close()

	var modules []models.Module
	byID := make(map[uuid.UUID]int)
	for rows.Next() {
		var m models.Module
		if err := rows.Scan(&m.ID, &m.CourseID, &m.Title, &m.Order); err != nil {
			return nil, err
		}
		byID[m.ID] = len(modules)
		modules = append(modules, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lessonQuery := `
    SELECT id, course_id, module_id, title, content_kind, lesson_order, quiz_id
      FROM lessons
     WHERE course_id = $1
     ORDER BY lesson_order
    `
	lessonRows, err := r.db.Query(ctx, lessonQuery, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer lessonRows.Close()

	for lessonRows.Next() {
		var l models.Lesson
		if err := lessonRows.Scan(&l.ID, &l.CourseID, &l.ModuleID, &l.Title,
			&l.ContentKind, &l.Order, &l.QuizID); err != nil {
			return nil, err
		}
		if i, ok := byID[l.ModuleID]; ok {
			modules[i].Lessons = append(modules[i].Lessons, l)
		}
	}
	if err := lessonRows.Err(); err != nil {
		return nil, err
	}
	return modules, nil
}
