package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ContentKindVideo = "video"
	ContentKindText  = "text"
	ContentKindQuiz  = "quiz"
)

type Course struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	InstructorID   uuid.UUID `json:"instructor_id"`
	InstructorName string    `json:"instructor_name"`
	EnrolledCount  int       `json:"enrolled_count"`
	IsPublished    bool      `json:"is_published"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	Modules        []Module  `json:"modules"`
}

type Module struct {
	ID       uuid.UUID `json:"id"`
	CourseID uuid.UUID `json:"course_id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	Lessons  []Lesson  `json:"lessons"`
}

type Lesson struct {
	ID          uuid.UUID  `json:"id"`
	CourseID    uuid.UUID  `json:"course_id"`
	ModuleID    uuid.UUID  `json:"module_id"`
	Title       string     `json:"title"`
	ContentKind string     `json:"content_kind"`
	Order       int        `json:"order"`
	QuizID      *uuid.UUID `json:"quiz_id,omitempty"`
}

// TotalLessons is the lesson count over the course shape as loaded. Progress is
// always recomputed against this, never against a snapshot taken at enrollment.
func (c *Course) TotalLessons() int {
	total := 0
	for _, m := range c.Modules {
		total += len(m.Lessons)
	}
	return total
}

// LessonSet returns the ids of all lessons currently in the course.
func (c *Course) LessonSet() map[uuid.UUID]struct{} {
	set := make(map[uuid.UUID]struct{}, len(c.Modules))
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			set[l.ID] = struct{}{}
		}
	}
	return set
}
