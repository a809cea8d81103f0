package quiz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

func buildQuiz(questionCount, passingScore int) *models.Quiz {
	quiz := &models.Quiz{
		ID:           uuid.New(),
		CourseID:     uuid.New(),
		LessonID:     uuid.New(),
		Title:        "Checkpoint",
		PassingScore: passingScore,
	}
	for i := 0; i < questionCount; i++ {
		quiz.Questions = append(quiz.Questions, models.Question{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			Prompt:        "pick the first option",
			Type:          models.QuestionTypeSingleChoice,
			Options:       []string{"right", "wrong", "also wrong"},
			CorrectAnswer: 0,
			Order:         i + 1,
		})
	}
	return quiz
}

// answersFor answers the first n questions correctly and the rest wrong.
func answersFor(quiz *models.Quiz, correct int) map[uuid.UUID]int {
	answers := make(map[uuid.UUID]int)
	for i, q := range quiz.Questions {
		if i < correct {
			answers[q.ID] = q.CorrectAnswer
		} else {
			answers[q.ID] = q.CorrectAnswer + 1
		}
	}
	return answers
}

func TestGrade_FourOfFivePasses(t *testing.T) {
	quiz := buildQuiz(5, 70)

	score, passed, err := Grade(quiz, answersFor(quiz, 4))
	require.NoError(t, err)
	assert.Equal(t, 80, score)
	assert.True(t, passed)
}

func TestGrade_ThreeOfFiveFails(t *testing.T) {
	quiz := buildQuiz(5, 70)

	score, passed, err := Grade(quiz, answersFor(quiz, 3))
	require.NoError(t, err)
	assert.Equal(t, 60, score)
	assert.False(t, passed)
}

func TestGrade_ExactThresholdPasses(t *testing.T) {
	quiz := buildQuiz(5, 80)

	score, passed, err := Grade(quiz, answersFor(quiz, 4))
	require.NoError(t, err)
	assert.Equal(t, 80, score)
	assert.True(t, passed)
}

func TestGrade_UnansweredCountsWrong(t *testing.T) {
	quiz := buildQuiz(4, 50)

	answers := answersFor(quiz, 2)
	answers[quiz.Questions[2].ID] = models.AnswerUnanswered
	delete(answers, quiz.Questions[3].ID)

	score, passed, err := Grade(quiz, answers)
	require.NoError(t, err)
	assert.Equal(t, 50, score)
	assert.True(t, passed)
}

func TestGrade_AllUnanswered(t *testing.T) {
	quiz := buildQuiz(4, 50)

	score, passed, err := Grade(quiz, map[uuid.UUID]int{})
	require.NoError(t, err)
	assert.Equal(t, 0, score)
	assert.False(t, passed)
}

func TestGrade_EmptyQuizIsInvalid(t *testing.T) {
	quiz := buildQuiz(0, 70)

	_, _, err := Grade(quiz, map[uuid.UUID]int{})
	assert.ErrorIs(t, err, app_errors.ErrInvalidQuiz)
}

func TestGrade_Deterministic(t *testing.T) {
	quiz := buildQuiz(3, 70)
	answers := answersFor(quiz, 2)

	s1, p1, err := Grade(quiz, answers)
	require.NoError(t, err)
	s2, p2, err := Grade(quiz, answers)
	require.NoError(t, err)
	assert.Equal(t, s1, s2)
	assert.Equal(t, p1, p2)
}

type fakeQuizRepo struct {
	quiz *models.Quiz
}

func (f *fakeQuizRepo) QuizByID(_ context.Context, id uuid.UUID) (*models.Quiz, error) {
	if f.quiz == nil || f.quiz.ID != id {
		return nil, app_errors.ErrQuizNotFound
	}
	return f.quiz, nil
}

func (f *fakeQuizRepo) QuizByLesson(_ context.Context, lessonID uuid.UUID) (*models.Quiz, error) {
	if f.quiz == nil || f.quiz.LessonID != lessonID {
		return nil, app_errors.ErrQuizNotFound
	}
	return f.quiz, nil
}

type fakeAttemptRepo struct {
	attempts []models.QuizAttempt
}

func (f *fakeAttemptRepo) AppendAttempt(_ context.Context, attempt *models.QuizAttempt) error {
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) AttemptsByQuizUser(_ context.Context, quizID, userID uuid.UUID) ([]models.QuizAttempt, error) {
	var out []models.QuizAttempt
	for _, a := range f.attempts {
		if a.QuizID == quizID && a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttemptRepo) BestAttempt(_ context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error) {
	var best *models.QuizAttempt
	for i := range f.attempts {
		a := &f.attempts[i]
		if a.QuizID != quizID || a.UserID != userID {
			continue
		}
		if best == nil || a.Score > best.Score ||
			(a.Score == best.Score && a.AttemptedAt.Before(best.AttemptedAt)) {
			best = a
		}
	}
	if best == nil {
		return nil, app_errors.ErrAttemptNotFound
	}
	return best, nil
}

func TestRecordAttempt_AppendsHistory(t *testing.T) {
	quiz := buildQuiz(5, 70)
	attempts := &fakeAttemptRepo{}
	grader := NewQuizGrader(logger.NewNop(), &fakeQuizRepo{quiz: quiz}, attempts)
	userID := uuid.New()
	ctx := context.Background()

	first, err := grader.RecordAttempt(ctx, quiz.ID, userID, answersFor(quiz, 3))
	require.NoError(t, err)
	assert.Equal(t, 60, first.Score)
	assert.False(t, first.Passed)

	second, err := grader.RecordAttempt(ctx, quiz.ID, userID, answersFor(quiz, 5))
	require.NoError(t, err)
	assert.Equal(t, 100, second.Score)
	assert.True(t, second.Passed)

	history, err := grader.Attempts(ctx, quiz.ID, userID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
	assert.NotEqual(t, history[0].ID, history[1].ID)
}

func TestRecordAttempt_InvalidQuizRecordsNothing(t *testing.T) {
	quiz := buildQuiz(0, 70)
	attempts := &fakeAttemptRepo{}
	grader := NewQuizGrader(logger.NewNop(), &fakeQuizRepo{quiz: quiz}, attempts)

	_, err := grader.RecordAttempt(context.Background(), quiz.ID, uuid.New(), map[uuid.UUID]int{})
	assert.ErrorIs(t, err, app_errors.ErrInvalidQuiz)
	assert.Empty(t, attempts.attempts)
}

func TestBestAttempt_HighestScoreWins(t *testing.T) {
	quiz := buildQuiz(5, 70)
	userID := uuid.New()
	now := time.Now().UTC()
	attempts := &fakeAttemptRepo{attempts: []models.QuizAttempt{
		{ID: uuid.New(), QuizID: quiz.ID, UserID: userID, Score: 60, AttemptedAt: now},
		{ID: uuid.New(), QuizID: quiz.ID, UserID: userID, Score: 80, Passed: true, AttemptedAt: now.Add(time.Minute)},
		{ID: uuid.New(), QuizID: quiz.ID, UserID: userID, Score: 40, AttemptedAt: now.Add(2 * time.Minute)},
	}}
	grader := NewQuizGrader(logger.NewNop(), &fakeQuizRepo{quiz: quiz}, attempts)

	best, err := grader.BestAttempt(context.Background(), quiz.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, 80, best.Score)
}

func TestBestAttempt_TieGoesToEarliest(t *testing.T) {
	quiz := buildQuiz(5, 70)
	userID := uuid.New()
	now := time.Now().UTC()
	earlier := models.QuizAttempt{ID: uuid.New(), QuizID: quiz.ID, UserID: userID, Score: 80, Passed: true, AttemptedAt: now}
	later := models.QuizAttempt{ID: uuid.New(), QuizID: quiz.ID, UserID: userID, Score: 80, Passed: true, AttemptedAt: now.Add(time.Hour)}
	attempts := &fakeAttemptRepo{attempts: []models.QuizAttempt{later, earlier}}
	grader := NewQuizGrader(logger.NewNop(), &fakeQuizRepo{quiz: quiz}, attempts)

	best, err := grader.BestAttempt(context.Background(), quiz.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, earlier.ID, best.ID)
}

func TestBestAttempt_NoAttempts(t *testing.T) {
	quiz := buildQuiz(5, 70)
	grader := NewQuizGrader(logger.NewNop(), &fakeQuizRepo{quiz: quiz}, &fakeAttemptRepo{})

	_, err := grader.BestAttempt(context.Background(), quiz.ID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrAttemptNotFound)
}
