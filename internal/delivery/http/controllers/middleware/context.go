package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	ClientIDCtx    = "client_id"
	ClientNameCtx  = "client_name"
	ClientRolesCtx = "client_roles"
)

// ClientID returns the authenticated learner id the identity middleware put
// on the request.
func ClientID(c *gin.Context) (uuid.UUID, bool) {
	raw, ok := c.Get(ClientIDCtx)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := raw.(uuid.UUID)
	return id, ok
}

// ClientName returns the display name used for certificate captions.
func ClientName(c *gin.Context) string {
	raw, ok := c.Get(ClientNameCtx)
	if !ok {
		return ""
	}
	name, _ := raw.(string)
	return name
}
