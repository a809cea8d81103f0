package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/delivery/http/controllers/middleware"
	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/internal/service/learning"
	"github.com/irabtech/lms/pkg/logger"
)

type LearningService interface {
	CompleteLesson(ctx context.Context, courseID, lessonID, userID uuid.UUID, studentName string) (*learning.LessonResult, error)
	SubmitQuiz(ctx context.Context, quizID, userID uuid.UUID, studentName string, answers map[uuid.UUID]int) (*learning.QuizResult, error)
}

type CompletionService interface {
	Status(ctx context.Context, courseID, userID uuid.UUID) (models.CompletionStatus, error)
}

type LearningHandler struct {
	log        logger.Log
	flow       LearningService
	completion CompletionService
}

func NewLearningHandler(log logger.Log, flow LearningService, completion CompletionService) *LearningHandler {
	return &LearningHandler{
		log:        log,
		flow:       flow,
		completion: completion,
	}
}

func (h *LearningHandler) CompleteLesson(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}
	lessonID, err := uuid.Parse(c.Param("lesson_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lesson_id"})
		return
	}

	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.flow.CompleteLesson(c.Request.Context(), courseID, lessonID, userID, middleware.ClientName(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Answers may be empty or absent: an all-unanswered submission is a valid
// attempt and is scored as all wrong.
type submitQuizRequest struct {
	Answers map[uuid.UUID]int `json:"answers"`
}

func (h *LearningHandler) SubmitQuiz(c *gin.Context) {
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

	var req submitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.flow.SubmitQuiz(c.Request.Context(), quizID, userID, middleware.ClientName(c), req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LearningHandler) CompletionStatus(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	status, err := h.completion.Status(c.Request.Context(), courseID, userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
