package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	QuestionTypeSingleChoice = "single_choice"
	QuestionTypeTrueFalse    = "true_false"
)

// AnswerUnanswered marks a question the learner skipped. Skipped and missing
// answers are both scored as wrong.
const AnswerUnanswered = -1

type Quiz struct {
	ID           uuid.UUID  `json:"id"`
	CourseID     uuid.UUID  `json:"course_id"`
	LessonID     uuid.UUID  `json:"lesson_id"`
	Title        string     `json:"title"`
	PassingScore int        `json:"passing_score"`
	Questions    []Question `json:"questions"`
}

// Question is scored as single-correct-choice regardless of type; true/false
// is just a two-option question.
type Question struct {
	ID            uuid.UUID `json:"id"`
	QuizID        uuid.UUID `json:"quiz_id"`
	Prompt        string    `json:"prompt"`
	Type          string    `json:"type"`
	Options       []string  `json:"options"`
	CorrectAnswer int       `json:"correct_answer"`
	Order         int       `json:"order"`
}

// QuizAttempt is append-only history: once recorded it is never edited or
// replaced by later attempts.
type QuizAttempt struct {
	ID          uuid.UUID         `json:"id"`
	QuizID      uuid.UUID         `json:"quiz_id"`
	UserID      uuid.UUID         `json:"user_id"`
	Answers     map[uuid.UUID]int `json:"answers"`
	Score       int               `json:"score"`
	Passed      bool              `json:"passed"`
	AttemptedAt time.Time         `json:"attempted_at"`
}
