package http

import (
	"errors"
	"net/http"

	"postcraft/services/post/internal/entity"

	"github.com/gin-gonic/gin"
)

func identityFrom(c *gin.Context) entity.Identity {
	return entity.Identity{
		UserID: c.GetString("user_id"),
		Role:   c.GetString("user_role"),
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var ve *entity.ValidationError
	var re *entity.RemoteServiceError
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.As(err, &re):
		return http.StatusBadGateway
	case errors.Is(err, entity.ErrSessionNotFound), errors.Is(err, entity.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrSessionClosed):
		return http.StatusGone
	case errors.Is(err, entity.ErrSubmitInProgress), errors.Is(err, entity.ErrOperationPending):
		return http.StatusConflict
	case errors.Is(err, entity.ErrDirectoryLoading):
		return http.StatusServiceUnavailable
	case errors.Is(err, entity.ErrUnknownPlatform):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)

	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		c.JSON(status, gin.H{"error": ve.Error(), "kind": ve.Kind, "field": ve.Field})
		return
	}
	var re *entity.RemoteServiceError
	if errors.As(err, &re) {
		c.JSON(status, gin.H{"error": "Upstream service failed. Please try again.", "kind": re.Kind})
		return
	}
	if errors.Is(err, entity.ErrDirectoryLoading) {
		c.Header("Retry-After", "1")
	}
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
