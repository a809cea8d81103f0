package learning

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

type progressTracker interface {
	MarkLessonComplete(ctx context.Context, courseID, lessonID, userID uuid.UUID) (*models.Enrollment, error)
}

type quizGrader interface {
	QuizByID(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error)
	RecordAttempt(ctx context.Context, quizID, userID uuid.UUID, answers map[uuid.UUID]int) (*models.QuizAttempt, error)
}

type completionEvaluator interface {
	Compute(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error)
}

type certificateIssuer interface {
	Issue(ctx context.Context, course *models.Course, userID uuid.UUID, studentName string) (*models.Certificate, error)
	CertificateForCourse(ctx context.Context, courseID, userID uuid.UUID) (*models.Certificate, error)
}

type statusCache interface {
	Invalidate(ctx context.Context, courseID, userID uuid.UUID) error
}

// LessonResult is what a lesson-completion event produces: the updated
// enrollment, the completion tuple after the event, and the certificate when
// the event completed the course.
type LessonResult struct {
	Enrollment  *models.Enrollment      `json:"enrollment"`
	Status      models.CompletionStatus `json:"status"`
	Certificate *models.Certificate     `json:"certificate,omitempty"`
}

type QuizResult struct {
	Attempt     *models.QuizAttempt      `json:"attempt"`
	Status      *models.CompletionStatus `json:"status,omitempty"`
	Certificate *models.Certificate      `json:"certificate,omitempty"`
}

// LearningFlow wraps every mutating learner event with a before/after
// completion evaluation. Issuance happens only on the false-to-true
// transition, never on every call, which together with the store's unique
// index keeps certificates at-most-one per (course, user).
type LearningFlow struct {
	log        logger.Log
	courseRepo courseRepo
	tracker    progressTracker
	grader     quizGrader
	evaluator  completionEvaluator
	issuer     certificateIssuer
	cache      statusCache
}

func NewLearningFlow(log logger.Log, c courseRepo, t progressTracker, g quizGrader,
	e completionEvaluator, i certificateIssuer, cache statusCache,
) *LearningFlow {
	return &LearningFlow{
		log:        log,
		courseRepo: c,
		tracker:    t,
		grader:     g,
		evaluator:  e,
		issuer:     i,
		cache:      cache,
	}
}

func (s *LearningFlow) CompleteLesson(ctx context.Context, courseID, lessonID, userID uuid.UUID, studentName string) (*LessonResult, error) {
	before, err := s.evaluator.Compute(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.tracker.MarkLessonComplete(ctx, courseID, lessonID, userID)
	if err != nil {
		return nil, err
	}

	after, err := s.evaluator.Compute(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	result := &LessonResult{Enrollment: enrollment, Status: after}
	if !before.IsCompleted && after.IsCompleted {
		cert, err := s.issueOnce(ctx, courseID, userID, studentName)
		if err != nil {
			return nil, err
		}
		result.Certificate = cert
	}

	s.invalidate(ctx, courseID, userID)
	return result, nil
}

func (s *LearningFlow) SubmitQuiz(ctx context.Context, quizID, userID uuid.UUID, studentName string, answers map[uuid.UUID]int) (*QuizResult, error) {
	qz, err := s.grader.QuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	// The before-status must be read before the attempt lands, or a passing
	// attempt could hide the transition. A learner attempting a quiz without
	// an enrollment still gets the attempt recorded; there is just no course
	// completion to track.
	enrolled := true
	before, err := s.evaluator.Compute(ctx, qz.CourseID, userID)
	if err != nil {
		if !errors.Is(err, app_errors.ErrEnrollmentNotFound) {
			return nil, err
		}
		enrolled = false
	}

	attempt, err := s.grader.RecordAttempt(ctx, quizID, userID, answers)
	if err != nil {
		return nil, err
	}

	result := &QuizResult{Attempt: attempt}
	if !enrolled {
		return result, nil
	}

	after, err := s.evaluator.Compute(ctx, qz.CourseID, userID)
	if err != nil {
		return nil, err
	}
	result.Status = &after

	if !before.IsCompleted && after.IsCompleted {
		cert, err := s.issueOnce(ctx, qz.CourseID, userID, studentName)
		if err != nil {
			return nil, err
		}
		result.Certificate = cert
	}

	s.invalidate(ctx, qz.CourseID, userID)
	return result, nil
}

// issueOnce treats the uniqueness race as success: when a concurrent event
// already minted the certificate, the existing one is fetched and returned.
func (s *LearningFlow) issueOnce(ctx context.Context, courseID, userID uuid.UUID, studentName string) (*models.Certificate, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	cert, err := s.issuer.Issue(ctx, course, userID, studentName)
	if err != nil {
		if errors.Is(err, app_errors.ErrCertificateAlreadyIssued) {
			return s.issuer.CertificateForCourse(ctx, courseID, userID)
		}
		return nil, err
	}
	return cert, nil
}

func (s *LearningFlow) invalidate(ctx context.Context, courseID, userID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, courseID, userID); err != nil {
		s.log.Warn("failed to invalidate status cache", logger.Err(err))
	}
}
