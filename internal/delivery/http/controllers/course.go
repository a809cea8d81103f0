package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/irabtech/lms/internal/models"
	"github.com/irabtech/lms/pkg/logger"
)

type CourseService interface {
	CourseByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
}

type CourseHandler struct {
	log  logger.Log
	repo CourseService
}

func NewCourseHandler(log logger.Log, repo CourseService) *CourseHandler {
	return &CourseHandler{
		log:  log,
		repo: repo,
	}
}

func (h *CourseHandler) CourseByID(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("course_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course_id"})
		return
	}

	course, err := h.repo.CourseByID(c.Request.Context(), courseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}
