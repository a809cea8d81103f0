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

type CertificatePostgres struct {
	db *pgxpool.Pool
}

func NewCertificatePostgres(db *pgxpool.Pool) *CertificatePostgres {
	return &CertificatePostgres{db: db}
}

// CreateCertificate inserts the certificate and stamps the enrollment in one
// transaction. The unique (course_id, user_id) index is the at-most-one
// guarantee: the loser of a race gets ErrCertificateAlreadyIssued.
func (r *CertificatePostgres) CreateCertificate(ctx context.Context, cert *models.Certificate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertQuery := `
    INSERT INTO certificates (id, course_id, user_id, student_name, course_title, instructor_name, issued_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err = tx.Exec(ctx, insertQuery,
		cert.ID, cert.CourseID, cert.UserID, cert.StudentName,
		cert.CourseTitle, cert.InstructorName, cert.IssuedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return app_errors.ErrCertificateAlreadyIssued
		}
		return fmt.Errorf("failed to insert certificate: %w", err)
	}

	stampQuery := `
    UPDATE enrollments SET completed_at = $3, certificate_id = $4
     WHERE course_id = $1 AND user_id = $2
    `
	if _, err := tx.Exec(ctx, stampQuery, cert.CourseID, cert.UserID, cert.IssuedAt, cert.ID); err != nil {
		return fmt.Errorf("failed to stamp enrollment: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *CertificatePostgres) CertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	query := `
    SELECT id, course_id, user_id, student_name, course_title, instructor_name, issued_at
      FROM certificates
     WHERE id = $1
    `
	return r.scanOne(ctx, query, id)
}

func (r *CertificatePostgres) CertificateByCourseUser(ctx context.Context, courseID, userID uuid.UUID) (*models.Certificate, error) {
	query := `
    SELECT id, course_id, user_id, student_name, course_title, instructor_name, issued_at
      FROM certificates
     WHERE course_id = $1 AND user_id = $2
    `
	return r.scanOne(ctx, query, courseID, userID)
}

func (r *CertificatePostgres) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Certificate, error) {
	query := `
    SELECT id, course_id, user_id, student_name, course_title, instructor_name, issued_at
      FROM certificates
     WHERE user_id = $1
     ORDER BY issued_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query certificates: %w", err)
	}
	defer rows.Close()

	var certs []models.Certificate
	for rows.Next() {
		var c models.Certificate
		if err := rows.Scan(&c.ID, &c.CourseID, &c.UserID, &c.StudentName,
			&c.CourseTitle, &c.InstructorName, &c.IssuedAt); err != nil {
			return nil, err
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func (r *CertificatePostgres) scanOne(ctx context.Context, query string, args ...any) (*models.Certificate, error) {
	var c models.Certificate
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&c.ID, &c.CourseID, &c.UserID, &c.StudentName,
		&c.CourseTitle, &c.InstructorName, &c.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrCertificateNotFound
		}
		return nil, fmt.Errorf("failed to load certificate: %w", err)
	}
	return &c, nil
}
