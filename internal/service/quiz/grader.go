package quiz

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type quizRepo interface {
	QuizByID(ctx context.Context, id uuid.UUID) (*models.Quiz, error)
	QuizByLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error)
}

type attemptRepo interface {
	AppendAttempt(ctx context.Context, attempt *models.QuizAttempt) error
	AttemptsByQuizUser(ctx context.Context, quizID, userID uuid.UUID) ([]models.QuizAttempt, error)
	BestAttempt(ctx context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error)
}

type QuizGrader struct {
	log         logger.Log
	quizRepo    quizRepo
	attemptRepo attemptRepo
}

func NewQuizGrader(log logger.Log, q quizRepo, a attemptRepo) *QuizGrader {
	return &QuizGrader{
		log:         log,
		quizRepo:    q,
		attemptRepo: a,
	}
}

// Grade scores answers against the quiz. Each question is single-correct-
// choice; a missing or unanswered entry counts wrong. Deterministic and pure.
// A quiz with no questions is a configuration error, not a zero score.
func Grade(quiz *models.Quiz, answers map[uuid.UUID]int) (score int, passed bool, err error) {
	if len(quiz.Questions) == 0 {
		return 0, false, app_errors.ErrInvalidQuiz
	}

	correct := 0
	for _, question := range quiz.Questions {
		selected, ok := answers[question.ID]
		if !ok || selected == models.AnswerUnanswered {
			continue
		}
		if selected == question.CorrectAnswer {
			correct++
		}
	}

	score = int(math.Round(100 * float64(correct) / float64(len(quiz.Questions))))
	passed = score >= quiz.PassingScore
	return score, passed, nil
}

// RecordAttempt grades and appends an immutable attempt. Prior attempts are
// never touched; history is cumulative. Nothing is recorded when grading
// fails.
func (s *QuizGrader) RecordAttempt(ctx context.Context, quizID, userID uuid.UUID, answers map[uuid.UUID]int) (*models.QuizAttempt, error) {
	quiz, err := s.quizRepo.QuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	score, passed, err := Grade(quiz, answers)
	if err != nil {
		return nil, err
	}

	attempt := &models.QuizAttempt{
		ID:          uuid.New(),
		QuizID:      quizID,
		UserID:      userID,
		Answers:     answers,
		Score:       score,
		Passed:      passed,
		AttemptedAt: time.Now().UTC(),
	}
	if err := s.attemptRepo.AppendAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	s.log.Info("quiz attempt recorded",
		"quiz_id", quizID,
		"user_id", userID,
		"score", score,
		"passed", passed,
	)
	return attempt, nil
}

// BestAttempt returns the highest-scoring attempt; the earliest attempt wins
// a tie. ErrAttemptNotFound when the user has no attempts on file.
func (s *QuizGrader) BestAttempt(ctx context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error) {
	return s.attemptRepo.BestAttempt(ctx, quizID, userID)
}

func (s *QuizGrader) Attempts(ctx context.Context, quizID, userID uuid.UUID) ([]models.QuizAttempt, error) {
	if _, err := s.quizRepo.QuizByID(ctx, quizID); err != nil {
		return nil, err
	}
	return s.attemptRepo.AttemptsByQuizUser(ctx, quizID, userID)
}

func (s *QuizGrader) QuizByID(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error) {
	return s.quizRepo.QuizByID(ctx, quizID)
}

func (s *QuizGrader) QuizForLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error) {
	return s.quizRepo.QuizByLesson(ctx, lessonID)
}
