package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irabtech/lms/internal/app_errors"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

func buildCourse(lessonCount int) *models.Course {
	course := &models.Course{
		ID:    uuid.New(),
		Title: "Go Fundamentals",
	}
	module := models.Module{
		ID:       uuid.New(),
		CourseID: course.ID,
		Title:    "Basics",
		Order:    1,
	}
	for i := 0; i < lessonCount; i++ {
		module.Lessons = append(module.Lessons, models.Lesson{
			ID:          uuid.New(),
			CourseID:    course.ID,
			ModuleID:    module.ID,
			Title:       "Lesson",
			ContentKind: models.ContentKindText,
			Order:       i + 1,
		})
	}
	course.Modules = []models.Module{module}
	return course
}

func enrollmentFor(course *models.Course, completed int) *models.Enrollment {
	e := &models.Enrollment{
		ID:       uuid.New(),
		CourseID: course.ID,
		UserID:   uuid.New(),
	}
	for i := 0; i < completed; i++ {
		e.CompletedLessons = append(e.CompletedLessons, course.Modules[0].Lessons[i].ID)
	}
	return e
}

func TestEvaluate_NoQuizzesVacuouslyPassed(t *testing.T) {
	course := buildCourse(2)
	enrollment := enrollmentFor(course, 2)

	status := Evaluate(enrollment, course, nil, nil)
	assert.True(t, status.QuizzesPassed)
	assert.True(t, status.IsCompleted)
	assert.Equal(t, 2, status.LessonsCompleted)
	assert.Equal(t, 2, status.TotalLessons)
}

func TestEvaluate_FailedQuizBlocksCompletion(t *testing.T) {
	course := buildCourse(2)
	enrollment := enrollmentFor(course, 2)
	quiz := models.Quiz{ID: uuid.New(), CourseID: course.ID, PassingScore: 70}
	best := map[uuid.UUID]*models.QuizAttempt{
		quiz.ID: {ID: uuid.New(), QuizID: quiz.ID, Score: 60, Passed: false},
	}

	status := Evaluate(enrollment, course, []models.Quiz{quiz}, best)
	assert.False(t, status.QuizzesPassed)
	assert.False(t, status.IsCompleted)
}

func TestEvaluate_QuizWithoutAttemptBlocksCompletion(t *testing.T) {
	course := buildCourse(1)
	enrollment := enrollmentFor(course, 1)
	quiz := models.Quiz{ID: uuid.New(), CourseID: course.ID, PassingScore: 70}

	status := Evaluate(enrollment, course, []models.Quiz{quiz}, nil)
	assert.False(t, status.QuizzesPassed)
	assert.False(t, status.IsCompleted)
}

func TestEvaluate_RemovedLessonDoesNotUncomplete(t *testing.T) {
	course := buildCourse(3)
	enrollment := enrollmentFor(course, 3)

	// drop the last lesson after all three were completed
	course.Modules[0].Lessons = course.Modules[0].Lessons[:2]

	status := Evaluate(enrollment, course, nil, nil)
	assert.Equal(t, 2, status.LessonsCompleted)
	assert.Equal(t, 2, status.TotalLessons)
	assert.True(t, status.IsCompleted)
}

func TestEvaluate_AddedLessonReopensCourse(t *testing.T) {
	course := buildCourse(2)
	enrollment := enrollmentFor(course, 2)
	course.Modules[0].Lessons = append(course.Modules[0].Lessons, models.Lesson{
		ID: uuid.New(), CourseID: course.ID, ModuleID: course.Modules[0].ID, Order: 3,
	})

	status := Evaluate(enrollment, course, nil, nil)
	assert.Equal(t, 2, status.LessonsCompleted)
	assert.Equal(t, 3, status.TotalLessons)
	assert.False(t, status.IsCompleted)
}

func TestEvaluate_NilInputsYieldZeroStatus(t *testing.T) {
	assert.Equal(t, models.CompletionStatus{}, Evaluate(nil, buildCourse(1), nil, nil))
	assert.Equal(t, models.CompletionStatus{}, Evaluate(&models.Enrollment{}, nil, nil, nil))
}

type fakeCourseRepo struct {
	course *models.Course
}

func (f *fakeCourseRepo) CourseByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	if f.course == nil || f.course.ID != id {
		return nil, app_errors.ErrCourseNotFound
	}
	return f.course, nil
}

type fakeEnrollmentRepo struct {
	enrollment *models.Enrollment
}

func (f *fakeEnrollmentRepo) EnrollmentByCourseUser(_ context.Context, courseID, userID uuid.UUID) (*models.Enrollment, error) {
	if f.enrollment == nil || f.enrollment.CourseID != courseID || f.enrollment.UserID != userID {
		return nil, app_errors.ErrEnrollmentNotFound
	}
	return f.enrollment, nil
}

type fakeQuizRepo struct {
	quizzes []models.Quiz
}

func (f *fakeQuizRepo) QuizzesByCourse(_ context.Context, courseID uuid.UUID) ([]models.Quiz, error) {
	var out []models.Quiz
	for _, q := range f.quizzes {
		if q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

type fakeAttemptRepo struct {
	best map[uuid.UUID]*models.QuizAttempt
}

func (f *fakeAttemptRepo) BestAttempt(_ context.Context, quizID, _ uuid.UUID) (*models.QuizAttempt, error) {
	attempt, ok := f.best[quizID]
	if !ok {
		return nil, app_errors.ErrAttemptNotFound
	}
	return attempt, nil
}

var errCacheMiss = errors.New("status cache: miss")

type fakeCache struct {
	store map[string]models.CompletionStatus
	gets  int
	sets  int
}

func (f *fakeCache) key(courseID, userID uuid.UUID) string {
	return courseID.String() + ":" + userID.String()
}

func (f *fakeCache) Get(_ context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error) {
	f.gets++
	status, ok := f.store[f.key(courseID, userID)]
	if !ok {
		return models.CompletionStatus{}, errCacheMiss
	}
	return status, nil
}

func (f *fakeCache) Set(_ context.Context, courseID, userID uuid.UUID, status models.CompletionStatus) error {
	f.sets++
	if f.store == nil {
		f.store = make(map[string]models.CompletionStatus)
	}
	f.store[f.key(courseID, userID)] = status
	return nil
}

func TestCompute_MissingAttemptIsNotAnError(t *testing.T) {
	course := buildCourse(1)
	enrollment := enrollmentFor(course, 1)
	quiz := models.Quiz{ID: uuid.New(), CourseID: course.ID, PassingScore: 70}

	svc := NewCompletionService(
		logger.NewNop(),
		&fakeCourseRepo{course: course},
		&fakeEnrollmentRepo{enrollment: enrollment},
		&fakeQuizRepo{quizzes: []models.Quiz{quiz}},
		&fakeAttemptRepo{},
		nil,
	)

	status, err := svc.Compute(context.Background(), course.ID, enrollment.UserID)
	require.NoError(t, err)
	assert.False(t, status.QuizzesPassed)
	assert.False(t, status.IsCompleted)
}

func TestStatus_ServesFromCacheAfterFirstCompute(t *testing.T) {
	course := buildCourse(2)
	enrollment := enrollmentFor(course, 1)
	cache := &fakeCache{}

	svc := NewCompletionService(
		logger.NewNop(),
		&fakeCourseRepo{course: course},
		&fakeEnrollmentRepo{enrollment: enrollment},
		&fakeQuizRepo{},
		&fakeAttemptRepo{},
		cache,
	)
	ctx := context.Background()

	first, err := svc.Status(ctx, course.ID, enrollment.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := svc.Status(ctx, course.ID, enrollment.UserID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second read should come from the cache")
}

func TestStatus_UnknownCourseSurfacesNotFound(t *testing.T) {
	svc := NewCompletionService(
		logger.NewNop(),
		&fakeCourseRepo{},
		&fakeEnrollmentRepo{},
		&fakeQuizRepo{},
		&fakeAttemptRepo{},
		nil,
	)

	_, err := svc.Status(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, app_errors.ErrCourseNotFound)
}
