package progress

import (
	"context"
	"math"

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
	RecordLessonCompletion(ctx context.Context, enrollmentID, courseID, lessonID uuid.UUID, progressOf func(completedCount int) int) error
}

// ProgressTracker maintains the derived progress percentage on an enrollment.
// The denominator is the course shape at call time, so adding lessons to a
// course lowers everyone's percentage on the next recompute. That is intended:
// progress is relative to the current course, not a snapshot.
type ProgressTracker struct {
	log            logger.Log
	courseRepo     courseRepo
	enrollmentRepo enrollmentRepo
}

func NewProgressTracker(log logger.Log, c courseRepo, e enrollmentRepo) *ProgressTracker {
	return &ProgressTracker{
		log:            log,
		courseRepo:     c,
		enrollmentRepo: e,
	}
}

// MarkLessonComplete adds the lesson to the completed set and recomputes
// progress. Re-completing a lesson is a no-op: the set never double-counts.
func (s *ProgressTracker) MarkLessonComplete(ctx context.Context, courseID, lessonID, userID uuid.UUID) (*models.Enrollment, error) {
	course, err := s.courseRepo.CourseByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if _, ok := course.LessonSet()[lessonID]; !ok {
		return nil, app_errors.ErrLessonNotFound
	}

	enrollment, err := s.enrollmentRepo.EnrollmentByCourseUser(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}

	// Insert, fresh count, and progress write land atomically: a failed
	// recompute leaves the completed set untouched. Concurrent completions of
	// different lessons are a set-union, so whoever writes progress last still
	// derives it from a count that includes both inserts.
	total := course.TotalLessons()
	err = s.enrollmentRepo.RecordLessonCompletion(ctx, enrollment.ID, courseID, lessonID,
		func(completedCount int) int {
			return ComputeProgress(completedCount, total)
		})
	if err != nil {
		return nil, err
	}

	updated, err := s.enrollmentRepo.EnrollmentByCourseUser(ctx, courseID, userID)
	if err != nil {
		return nil, err
	}
	s.log.Debug("lesson marked complete",
		"course_id", courseID,
		"lesson_id", lessonID,
		"user_id", userID,
		"progress", updated.Progress,
	)
	return updated, nil
}

// ComputeProgress rounds to the nearest integer, halves away from zero.
// A course with no lessons has progress 0, never a division by zero.
func ComputeProgress(completedCount, totalLessons int) int {
	if totalLessons == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completedCount) / float64(totalLessons)))
}
