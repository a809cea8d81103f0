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

type QuizPostgres struct {
	db *pgxpool.Pool
}

func NewQuizPostgres(db *pgxpool.Pool) *QuizPostgres {
	return &QuizPostgres{db: db}
}

func (r *QuizPostgres) QuizByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	query := `
    SELECT id, course_id, lesson_id, title, passing_score
      FROM quizzes
     WHERE id = $1
    `
	err := r.db.QueryRow(ctx, query, id).Scan(
		&quiz.ID, &quiz.CourseID, &quiz.LessonID, &quiz.Title, &quiz.PassingScore,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}

	questions, err := r.questionsByQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	quiz.Questions = questions
	return &quiz, nil
}

func (r *QuizPostgres) QuizByLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error) {
	var id uuid.UUID
	query := `SELECT id FROM quizzes WHERE lesson_id = $1`
	if err := r.db.QueryRow(ctx, query, lessonID).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, app_errors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to look up quiz by lesson: %w", err)
	}
	return r.QuizByID(ctx, id)
}

// QuizzesByCourse loads every quiz of the course with its questions. The
// completion evaluator needs all of them: a single failed quiz holds the
// whole course back.
func (r *QuizPostgres) QuizzesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Quiz, error) {
	query := `
    SELECT id, course_id, lesson_id, title, passing_score
      FROM quizzes
     WHERE course_id = $1
    `
	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []models.Quiz
	for rows.Next() {
		var q models.Quiz
		if err := rows.Scan(&q.ID, &q.CourseID, &q.LessonID, &q.Title, &q.PassingScore); err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range quizzes {
		questions, err := r.questionsByQuiz(ctx, quizzes[i].ID)
		if err != nil {
			return nil, err
		}
		quizzes[i].Questions = questions
	}
	return quizzes, nil
}

func (r *QuizPostgres) questionsByQuiz(ctx context.Context, quizID uuid.UUID) ([]models.Question, error) {
	query := `
    SELECT id, quiz_id, prompt, question_type, options, correct_answer, question_order
      FROM questions
     WHERE quiz_id = $1
     ORDER BY question_order
    `
	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Prompt, &q.Type,
			&q.Options, &q.CorrectAnswer, &q.Order); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
