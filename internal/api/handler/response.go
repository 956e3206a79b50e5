package handler

import (
	"errors"
	"io"
	"net/http"
	"smart_parking_booking/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// bindOptionalJSON treats an empty body as "{}" so the service reports which
// fields are missing.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, service.ErrRetryable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes the client-safe message of a service error. Causes
// stay in the logs.
func respondServiceError(c *gin.Context, logger *zerolog.Logger, err error) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		respondError(c, statusFor(svcErr), svcErr.Message)
		return
	}
	logger.Error().Err(err).Str("path", c.FullPath()).Msg("unclassified handler error")
	respondError(c, http.StatusInternalServerError, "Internal server error")
}
