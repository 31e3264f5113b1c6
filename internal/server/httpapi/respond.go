package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/groupspend/groupspend/internal/common"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": errorResponse{Code: code, Message: message}})
}

// respondServiceError translates service error kinds into protocol status
// codes. The message never says more than the kind already does.
func (s *Server) respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		respondError(c, http.StatusUnauthorized, "CREDENTIALS_ERROR", "could not validate credentials")
	case errors.Is(err, common.ErrUnauthorized):
		respondError(c, http.StatusForbidden, "FORBIDDEN", "operation not permitted")
	case errors.Is(err, common.ErrDoesNotExist), errors.Is(err, common.ErrorNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", "requested entity does not exist")
	case errors.Is(err, common.ErrUsernameExists):
		respondError(c, http.StatusConflict, "USERNAME_EXISTS", "username already exists")
	case errors.Is(err, common.ErrAlreadyMember):
		respondError(c, http.StatusConflict, "ALREADY_MEMBER", "user is already a group member")
	case errors.Is(err, common.ErrInternalInconsistency):
		s.logger.Error(c.Request.Context(), "internal inconsistency", "error", err.Error(), "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err.Error(), "request_id", c.GetString(requestIDKey))
		respondError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "internal server error")
	}
}
