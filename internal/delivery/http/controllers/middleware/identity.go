package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/irabtech/lms/internal/service/identity"
	"github.com/irabtech/lms/pkg/logger"
)

type tokenParser interface {
	AccessClaims(tokenStr string) (*identity.AccessTokenClaims, error)
}

type IdentityProvider struct {
	log    logger.Log
	parser tokenParser
}

func NewIdentityProvider(log logger.Log, p tokenParser) *IdentityProvider {
	return &IdentityProvider{
		log:    log,
		parser: p,
	}
}

// Identity resolves the learner from the access token and puts the id,
// display name, and roles on the context. It only consumes an identity the
// auth layer already established.
func (m *IdentityProvider) Identity(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = parts[1]
	}
	if token == "" {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	claims, err := m.parser.AccessClaims(token)
	if err != nil {
		m.log.Info("failed to parse access token", logger.Err(err))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
		return
	}

	c.Set(ClientIDCtx, claims.UserID)
	c.Set(ClientNameCtx, claims.DisplayName)
	c.Set(ClientRolesCtx, claims.Roles)
	c.Next()
}
