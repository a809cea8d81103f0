package models

// CompletionStatus is the tuple consumed by UI progress bars and by the
// learning flow to detect the completed transition.
type CompletionStatus struct {
	LessonsCompleted int  `json:"lessons_completed"`
	TotalLessons     int  `json:"total_lessons"`
	QuizzesPassed    bool `json:"quizzes_passed"`
	IsCompleted      bool `json:"is_completed"`
}
