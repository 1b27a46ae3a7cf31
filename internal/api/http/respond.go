package http

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/devcatalog/projects-api/internal/apperrors"
)

// ErrorResponse is the single error body shape used by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes the JSON error body for err and aborts the request. Store
// errors are logged with full detail before being surfaced generically.
func Error(c *gin.Context, err error) {
	var store *apperrors.StoreError
	if errors.As(err, &store) {
		slog.Error("database error",
			"error", store.Err,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)
	}

	status, msg := apperrors.Status(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
