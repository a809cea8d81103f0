package enrollment

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

type fakeCourseRepo struct {
	course *models.Course
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	if f.course == nil || f.course.ID != id {
		return nil, app_errors.ErrCourseNotFound
	}
	return f.course, nil
}

// fakeEnrollmentRepo mirrors the store's compare-and-create contract: one
// row per (course, user), counter bumped only when the row is new.
type fakeEnrollmentRepo struct {
	rows          map[string]*models.Enrollment
	enrolledCount int
}

func key(courseID, userID uuid.UUID) string {
	return courseID.String() + ":" + userID.String()
}

func (f *fakeEnrollmentRepo) CreateEnrollment(_ context.Context, courseID, userID uuid.UUID) (*models.Enrollment, bool, error) {
	if f.rows == nil {
		f.rows = make(map[string]*models.Enrollment)
	}
	if existing, ok := f.rows[key(courseID, userID)]; ok {
		return existing, false, nil
	}
	e := &models.Enrollment{
		ID:         uuid.New(),
		CourseID:   courseID,
		UserID:     userID,
		EnrolledAt: time.Now().UTC(),
	}
	f.rows[key(courseID, userID)] = e
	f.enrolledCount++
	return e, true, nil
}

func (f *fakeEnrollmentRepo) EnrollmentByCourseUser(_ context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	e, ok := f.rows[key(courseID, userID)]
	if !ok {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentRepo) ListByCourse(_ context.Context, courseID uuid.UUID) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range f.rows {
		if e.CourseID == courseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Enrollment, error) {
	var out []models.Enrollment
	for _, e := range f.rows {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func newService(course *models.Course) (*EnrollmentService, *fakeEnrollmentRepo) {
	repo := &fakeEnrollmentRepo{}
	return NewEnrollmentService(logger.NewNop(), &fakeCourseRepo{course: course}, repo), repo
}

func TestEnroll_CreatesOnce(t *testing.T) {
	course := &models.Course{ID: uuid.New(), Title: "Go Fundamentals"}
	svc, repo := newService(course)
	userID := uuid.New()
	ctx := context.Background()

	first, err := svc.Enroll(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, course.ID, first.CourseID)
	assert.Equal(t, userID, first.UserID)

	second, err := svc.Enroll(ctx, course.ID, userID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.enrolledCount, "counter must move only on first creation")
}

func TestEnroll_UnknownCourse(t *testing.T) {
	svc, repo := newService(nil)

	_, err := svc.Enroll(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
	assert.Empty(t, repo.rows)
}

func TestGetEnrollment_NotEnrolled(t *testing.T) {
	course := &models.Course{ID: uuid.New()}
	svc, _ := newService(course)

	_, err := svc.GetEnrollment(context.Background(), course.ID, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrEnrollmentNotFound)
}

func TestListCourseEnrollments(t *testing.T) {
	course := &models.Course{ID: uuid.New()}
	svc, _ := newService(course)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Enroll(ctx, course.ID, uuid.New())
		require.NoError(t, err)
	}

	roster, err := svc.ListCourseEnrollments(ctx, course.ID)
	require.NoError(t, err)
	assert.Len(t, roster, 3)

	_, err = svc.ListCourseEnrollments(ctx, uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}

func TestListUserEnrollments(t *testing.T) {
	course := &models.Course{ID: uuid.New()}
	svc, _ := newService(course)
	userID := uuid.New()
	ctx := context.Background()

	_, err := svc.Enroll(ctx, course.ID, userID)
	require.NoError(t, err)
	_, err = svc.Enroll(ctx, course.ID, uuid.New())
	require.NoError(t, err)

	mine, err := svc.ListUserEnrollments(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, userID, mine[0].UserID)
}
