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

type AttemptPostgres struct {
	db *pgxpool.Pool
}

func NewAttemptPostgres(db *pgxpool.Pool) *AttemptPostgres {
	return &AttemptPostgres{db: db}
}

// AppendAttempt inserts a new attempt row. Attempts are history: nothing here
// updates or deletes.
func (r *AttemptPostgres) AppendAttempt(ctx context.Context, attempt *models.QuizAttempt) error {
	query := `
    INSERT INTO quiz_attempts (id, quiz_id, user_id, answers, score, passed, attempted_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.Exec(ctx, query,
		attempt.ID, attempt.QuizID, attempt.UserID, attempt.Answers,
		attempt.Score, attempt.Passed, attempt.AttemptedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append quiz attempt: %w", err)
	}
	return nil
}

func (r *AttemptPostgres) AttemptsByQuizUser(ctx context.Context, quizID, userID uuid.UUID) ([]models.QuizAttempt, error) {
	query := `
    SELECT id, quiz_id, user_id, answers, score, passed, attempted_at
      FROM quiz_attempts
     WHERE quiz_id = $1 AND user_id = $2
     ORDER BY attempted_at
    `
	rows, err := r.db.Query(ctx, query, quizID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.QuizAttempt
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Answers,
			&a.Score, &a.Passed, &a.AttemptedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// BestAttempt: highest score wins, ties go to the earliest attempt so the
// result is deterministic.
func (r *AttemptPostgres) BestAttempt(ctx context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error) {
	var a models.QuizAttempt
	query := `
    SELECT id, quiz_id, user_id, answers, score, passed, attempted_at
      FROM quiz_attempts
     WHERE quiz_id = $1 AND user_id = $2
     ORDER BY score DESC, attempted_at ASC
     LIMIT 1
    `
	err := r.db.QueryRow(ctx, query, quizID, userID).Scan(
		&a.ID, &a.QuizID, &a.UserID, &a.Answers,
		&a.Score, &a.Passed, &a.AttemptedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to load best attempt: %w", err)
	}
	return &a, nil
}
