package handler

import (
	"errors"
	"net/http"

	"github.com/dondoffy/contract-copilot-canvas/pkg/logger"
	"github.com/dondoffy/contract-copilot-canvas/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrSectionNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyMessage),
		errors.Is(err, service.ErrInvalidVersion),
		errors.Is(err, service.ErrUnsupportedFileType),
		errors.Is(err, service.ErrNoFiles):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrTooManyPending):
		return http.StatusTooManyRequests
	case errors.Is(err, service.ErrNotStored):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "request failed", "error", err)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
