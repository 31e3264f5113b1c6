package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/groupspend/groupspend/internal/common"
	"github.com/groupspend/groupspend/internal/server/models"
)

const currentUserKey = "currentUser"
const requestIDKey = "requestID"

// requestIDMiddleware tags every request with a uuid, echoed in the
// X-Request-Id response header and attached to log lines.
func (s *Server) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-Id", id)
		c.Next()
	}
}

// authMiddleware resolves the authenticated user from the bearer token and
// aborts with 401 when the token is missing or invalid. Handlers behind it
// can rely on currentUser being set.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		if !strings.HasPrefix(header, common.BearerPrefix) {
			respondError(c, http.StatusUnauthorized, "CREDENTIALS_ERROR", "missing bearer token")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, common.BearerPrefix)

		user, err := s.auth.AuthenticateToken(c.Request.Context(), token)
		if err != nil {
			s.respondServiceError(c, err)
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the user resolved by authMiddleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
