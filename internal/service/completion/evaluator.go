package completion

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	EnrollmentByCourseUser(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error)
}

type quizRepo interface {
	QuizzesByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Quiz, error)
}

type attemptRepo interface {
	BestAttempt(ctx context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error)
}

type statusCache interface {
	Get(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error)
	Set(ctx context.Context, courseID, userID uuid.UUID, status models.CompletionStatus) error
}

// Evaluate derives the completion tuple from already-loaded state. It never
// mutates the enrollment; callers re-run it around every mutating event to
// detect the completed transition.
//
// lessonsCompleted intersects the completed set with the current lesson set,
// and isCompleted uses >= so a denominator that shrank after completions does
// not un-complete the course. quizzesPassed is vacuously true for a course
// with no quizzes.
func Evaluate(enrollment *models.Enrollment, course *models.Course, quizzes []models.Quiz, best map[uuid.UUID]*models.QuizAttempt) models.CompletionStatus {
	if enrollment == nil || course == nil {
		return models.CompletionStatus{}
	}

	current := course.LessonSet()
	completed := 0
	for _, lessonID := range enrollment.CompletedLessons {
		if _, ok := current[lessonID]; ok {
			completed++
		}
	}

	quizzesPassed := true
	for _, q := range quizzes {
		attempt, ok := best[q.ID]
		if !ok || attempt == nil || !attempt.Passed {
			quizzesPassed = false
			break
		}
	}

	total := course.TotalLessons()
	return models.CompletionStatus{
		LessonsCompleted: completed,
		TotalLessons:     total,
		QuizzesPassed:    quizzesPassed,
		IsCompleted:      completed >= total && quizzesPassed,
	}
}

// CompletionService loads the collaborators and evaluates. Status serves
// through the cache for UI polling; Compute always goes to the store and is
// what the learning flow uses around mutating events.
type CompletionService struct {
	log            logger.Log
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
	quizRepo       quizRepo
	attemptRepo    attemptRepo
	cache          statusCache
}

func NewCompletionService(log logger.Log, c courseRepo, e enrollmentRepo, q quizRepo, a attemptRepo, cache statusCache) *CompletionService {
	return &CompletionService{
		log:            log,
		courseRepo:     c,
		enrollmentRepo: e,
		quizRepo:       q,
		attemptRepo:    a,
		cache:          cache,
	}
}

func (s *CompletionService) Status(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error) {
	if s.cache != nil {
		if status, err := s.cache.Get(ctx, courseID, userID); err == nil {
			return status, nil
		}
	}

	status, err := s.Compute(ctx, courseID, userID)
	if err != nil {
		return models.CompletionStatus{}, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, courseID, userID, status); err != nil {
			s.log.Warn("failed to cache completion status", logger.Err(err))
		}
	}
	return status, nil
}

func (s *CompletionService) Compute(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return models.CompletionStatus{}, err
	}
	enrollment, err := s.enrollmentRepo.EnrollmentByCourseUser(ctx, courseID, userID)
	if err != nil {
		return models.CompletionStatus{}, err
	}
	quizzes, err := s.quizRepo.QuizzesByCourse(ctx, courseID)
	if err != nil {
		return models.CompletionStatus{}, err
	}

	best := make(map[uuid.UUID]*models.QuizAttempt, len(quizzes))
	for _, q := range quizzes {
		attempt, err := s.attemptRepo.BestAttempt(ctx, q.ID, userID)
		if err != nil {
			if errors.Is(err, app_errors.ErrAttemptNotFound) {
				continue
			}
			return models.CompletionStatus{}, err
		}
		best[q.ID] = attempt
	}

	return Evaluate(enrollment, course, quizzes, best), nil
}
