package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
)

type EnrollmentPostgres struct {
	db *pgxpool.Pool
}

func NewEnrollmentPostgres(db *pgxpool.Pool) *EnrollmentPostgres {
	return &EnrollmentPostgres{db: db}
}

// CreateEnrollment is a compare-and-create under the unique
// (course_id, user_id) index. Racing calls converge on one row, and the
// enrolled counter moves only for the insert that actually landed.
func (r *EnrollmentPostgres) CreateEnrollment(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
    INSERT INTO enrollments (id, course_id, user_id, progress, enrolled_at)
    VALUES ($1, $2, $3, 0, $4)
    ON CONFLICT (course_id, user_id) DO NOTHING
    `
	tag, err := tx.Exec(ctx, insertQuery, uuid.New(), courseID, userID, time.Now().UTC())
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert enrollment: %w", err)
	}
	created := tag.RowsAffected() == 1

	if created {
		countQuery := `UPDATE courses SET enrolled_count = enrolled_count + 1 WHERE id = $1`
		if _, err := tx.Exec(ctx, countQuery, courseID); err != nil {
			return nil, false, fmt.Errorf("failed to increment enrolled count: %w", err)
		}
	}

	enrollment, err := scanEnrollment(ctx, tx, courseID, userID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return enrollment, created, nil
}

func (r *EnrollmentPostgres) EnrollmentByCourseUser(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	return scanEnrollment(ctx, r.db, courseID, userID)
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanEnrollment(ctx context.Context, q queryer, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	var e models.Enrollment
	query := `
    SELECT id, course_id, user_id, progress, enrolled_at, completed_at, certificate_id
      FROM enrollments
     WHERE course_id = $1 AND user_id = $2
    `
	err := q.QueryRow(ctx, query, courseID, userID).Scan(
		&e.ID, &e.CourseID, &e.UserID, &e.Progress,
		&e.EnrolledAt, &e.CompletedAt, &e.CertificateID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("failed to load enrollment: %w", err)
	}

	lessonQuery := `
    SELECT lesson_id FROM enrollment_lessons WHERE enrollment_id = $1 ORDER BY completed_at
    `
	rows, err := q.Query(ctx, lessonQuery, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lessonID uuid.UUID
		if err := rows.Scan(&lessonID); err != nil {
			return nil, err
		}
		e.CompletedLessons = append(e.CompletedLessons, lessonID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &e, nil
}

// RecordLessonCompletion adds the lesson to the completed set and writes the
// recomputed progress in a single transaction: if any step fails, the
// completed set stays untouched. The insert has set semantics, the count runs
// inside the transaction so it sees the own insert, and the count joins
// lessons so ids of since-deleted lessons never inflate the numerator.
func (r *EnrollmentPostgres) RecordLessonCompletion(ctx context.Context, enrollmentID, courseID, lessonID uuid.UUID, progressOf func(completedCount int) int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
    INSERT INTO enrollment_lessons (enrollment_id, lesson_id, completed_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (enrollment_id, lesson_id) DO NOTHING
    `
	if _, err := tx.Exec(ctx, insertQuery, enrollmentID, lessonID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record completed lesson: %w", err)
	}

	var count int
	countQuery := `
    SELECT COUNT(*)
      FROM enrollment_lessons el
      JOIN lessons l ON l.id = el.lesson_id AND l.course_id = $2
     WHERE el.enrollment_id = $1
    `
	if err := tx.QueryRow(ctx, countQuery, enrollmentID, courseID).Scan(&count); err != nil {
		return fmt.Errorf("failed to count completed lessons: %w", err)
	}

	progressQuery := `UPDATE enrollments SET progress = $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, progressQuery, enrollmentID, progressOf(count)); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *EnrollmentPostgres) ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Enrollment, error) {
	query := `
    SELECT id, course_id, user_id, progress, enrolled_at, completed_at, certificate_id
      FROM enrollments
     WHERE course_id = $1
     ORDER BY enrolled_at
    `
	return r.listEnrollments(ctx, query, courseID)
}

func (r *EnrollmentPostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	query := `
    SELECT id, course_id, user_id, progress, enrolled_at, completed_at, certificate_id
      FROM enrollments
     WHERE user_id = $1
     ORDER BY enrolled_at
    `
	return r.listEnrollments(ctx, query, userID)
}

func (r *EnrollmentPostgres) listEnrollments(ctx context.Context, query string, arg any) ([]models.Enrollment, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []models.Enrollment
	for rows.Next() {
		var e models.Enrollment
		if err := rows.Scan(&e.ID, &e.CourseID, &e.UserID, &e.Progress,
			&e.EnrolledAt, &e.CompletedAt, &e.CertificateID); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}
