package certificate

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type certificateRepo interface {
	CreateCertificate(ctx context.Context, cert *models.Certificate) error
	CertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error)
	CertificateByCourseUser(ctx context.Context, courseID, userID uuid.UUID) (*models.Certificate, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Certificate, error)
}

type CertificateIssuer struct {
	log  logger.Log
	repo certificateRepo
}

func NewCertificateIssuer(log logger.Log, repo certificateRepo) *CertificateIssuer {
	return &CertificateIssuer{
		log:  log,
		repo: repo,
	}
}

// Issue mints the certificate for (course, user), capturing course title and
// instructor name as they are right now so later edits never rewrite an
// issued certificate. The store's unique pair index makes this at-most-once:
// a second call fails with ErrCertificateAlreadyIssued, which callers treat
// as success by fetching the existing certificate.
func (s *CertificateIssuer) Issue(ctx context.Context, course *models.Course, userID uuid.UUID, studentName string) (*models.Certificate, error) {
	cert := &models.Certificate{
		ID:             uuid.New(),
		CourseID:       course.ID,
		UserID:         userID,
		StudentName:    studentName,
		CourseTitle:    course.Title,
		InstructorName: course.InstructorName,
		IssuedAt:       time.Now().UTC(),
	}

	if err := s.repo.CreateCertificate(ctx, cert); err != nil {
		return nil, err
	}

	s.log.Info("certificate issued",
		"certificate_id", cert.ID,
		"course_id", course.ID,
		"user_id", userID,
	)
	return cert, nil
}

func (s *CertificateIssuer) CertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	return s.repo.CertificateByID(ctx, id)
}

func (s *CertificateIssuer) CertificateForCourse(ctx context.Context, courseID, userID uuid.UUID) (*models.Certificate, error) {
	return s.repo.CertificateByCourseUser(ctx, courseID, userID)
}

func (s *CertificateIssuer) ListUserCertificates(ctx context.Context, userID uuid.UUID) ([]models.Certificate, error) {
	return s.repo.ListByUser(ctx, userID)
}
