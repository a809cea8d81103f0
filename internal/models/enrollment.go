package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment binds one learner to one course. There is at most one per
// (course, user) pair; Enroll returns the existing row instead of failing.
type Enrollment struct {
	ID               uuid.UUID   `json:"id"`
	CourseID         uuid.UUID   `json:"course_id"`
	UserID           uuid.UUID   `json:"user_id"`
	CompletedLessons []uuid.UUID `json:"completed_lessons"`
	Progress         int         `json:"progress"`
	EnrolledAt       time.Time   `json:"enrolled_at"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
	CertificateID    *uuid.UUID  `json:"certificate_id,omitempty"`
}

// HasCompleted reports whether lessonID is already in the completed set.
func (e *Enrollment) HasCompleted(lessonID uuid.UUID) bool {
	for _, id := range e.CompletedLessons {
		if id == lessonID {
			return true
		}
	}
	return false
}
