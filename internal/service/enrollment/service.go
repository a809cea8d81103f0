package enrollment

import (
	"context"

	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type courseRepo interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type enrollmentRepo interface {
	CreateEnrollment(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, bool, error)
	EnrollmentByCourseUser(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID uuid.UUID) ([]models.Enrollment, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error)
}

type EnrollmentService struct {
	log            logger.Log
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
}

func NewEnrollmentService(log logger.Log, c courseRepo, e enrollmentRepo) *EnrollmentService {
	return &EnrollmentService{
		log:            log,
		courseRepo:     c,
		enrollmentRepo: e,
	}
}

// Enroll is idempotent: a second call for the same pair returns the existing
// enrollment, and the course's enrolled counter moves only on first creation.
// Returns ErrCourseNotFound when courseID does not resolve.
func (s *EnrollmentService) Enroll(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	enrollment, created, err := s.enrollmentRepo.CreateEnrollment(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	if created {
		s.log.Info("user enrolled in course",
			"course_id", courseID,
			"user_id", userID,
		)
	}
	return enrollment, nil
}

func (s *EnrollmentService) GetEnrollment(ctx context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	return s.enrollmentRepo.EnrollmentByCourseUser(ctx, courseID, userID)
}

func (s *EnrollmentService) ListCourseEnrollments(ctx context.Context, courseID uuid.UUID) ([]models.Enrollment, error) {
	if _, err := s.courseRepo.CourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.enrollmentRepo.ListByCourse(ctx, courseID)
}

func (s *EnrollmentService) ListUserEnrollments(ctx context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	return s.enrollmentRepo.ListByUser(ctx, userID)
}
