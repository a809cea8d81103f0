package models

import (
	"time"

	"github.com/google/uuid"
)

// Certificate is immutable proof of completion. Learner and course display
// data are captured at issuance so later edits do not rewrite issued
// certificates.
type Certificate struct {
	ID             uuid.UUID `json:"id"`
	CourseID       uuid.UUID `json:"course_id"`
	UserID         uuid.UUID `json:"user_id"`
	StudentName    string    `json:"student_name"`
	CourseTitle    string    `json:"course_title"`
	InstructorName string    `json:"instructor_name"`
	IssuedAt       time.Time `json:"issued_at"`
}
