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

type CertificateService interface {
	CertificateByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error)
	ListUserCertificates(ctx context.Context, userID uuid.UUID) ([]models.Certificate, error)
}

type CertificateHandler struct {
	log     logger.Log
	service CertificateService
}

func NewCertificateHandler(log logger.Log, s CertificateService) *CertificateHandler {
	return &CertificateHandler{
		log:     log,
		service: s,
	}
}

// CertificateByID is public: certificates carry their display data and are
// meant to be shared by link.
func (h *CertificateHandler) CertificateByID(c *gin.Context) {
	certID, err := uuid.Parse(c.Param("certificate_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid certificate_id"})
		return
	}

	cert, err := h.service.CertificateByID(c.Request.Context(), certID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cert)
}

func (h *CertificateHandler) ListUserCertificates(c *gin.Context) {
	userID, ok := middleware.ClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	certs, err := h.service.ListUserCertificates(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"certificates": certs})
}
