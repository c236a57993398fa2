package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bloomwell/bloom-backend/internal/pkg/ctxutil"
)

// currentUserID reads the authenticated user from the request context.
// RequireAuth guarantees it is set on protected routes.
func currentUserID(c *gin.Context) uuid.UUID {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}
