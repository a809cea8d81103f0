package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/delivery/http/controllers/middleware"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type QuizService interface {
	QuizByID(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error)
	QuizForLesson(ctx context.Context, lessonID uuid.UUID) (*models.Quiz, error)
	Attempts(ctx context.Context, quizID, userID uuid.UUID) ([]models.QuizAttempt, error)
	BestAttempt(ctx context.Context, quizID, userID uuid.UUID) (*models.QuizAttempt, error)
}

type QuizHandler struct {
	log     logger.Log
	service QuizService
}

func NewQuizHandler(log logger.Log, s QuizService) *QuizHandler {
	return &QuizHandler{
		log:     log,
		service: s,
	}
}

// quizView omits correct answers; learners only see prompts and options.
type quizView struct {
	ID           uuid.UUID      `json:"id"`
	CourseID     uuid.UUID      `json:"course_id"`
	LessonID     uuid.UUID      `json:"lesson_id"`
	Title        string         `json:"title"`
	PassingScore int            `json:"passing_score"`
	Questions    []questionView `json:"questions"`
}

type questionView struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"prompt"`
	Type    string    `json:"type"`
	Options []string  `json:"options"`
	Order   int       `json:"order"`
}

func toQuizView(quiz *models.Quiz) quizView {
	view := quizView{
		ID:           quiz.ID,
		CourseID:     quiz.CourseID,
		LessonID:     quiz.LessonID,
		Title:        quiz.Title,
		PassingScore: quiz.PassingScore,
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, questionView{
			ID:      q.ID,
			Prompt:  q.Prompt,
			Type:    q.Type,
			Options: q.Options,
			Order:   q.Order,
		})
	}
	return view
}

func (h *QuizHandler) QuizByID(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz_id"})
		return
	}

	quiz, err := h.service.QuizByID(c.Request.Context(), quizID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuizView(quiz))
}

func (h *QuizHandler) QuizForLesson(c *gin.Context) {
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	quiz, err := h.service.QuizForLesson(c.Request.Context(), lessonID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuizView(quiz))
}

func (h *QuizHandler) Attempts(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz_id"})
		return
	}

	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	attempts, err := h.service.Attempts(c.Request.Context(), quizID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attempts": attempts})
}

func (h *QuizHandler) BestAttempt(c *gin.Context) {
	quizID, err := uuid.Parse(c.Param("quiz_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quiz_id"})
		return
	}

	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	attempt, err := h.service.BestAttempt(c.Request.Context(), quizID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}
