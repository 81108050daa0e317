package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecomstack/product-service/internal/core/logger"
	"github.com/ecomstack/product-service/internal/core/serviceerrors"
)

// ErrorResponse is the uniform failure envelope for every route. Errors is
// populated only for validation failures, one entry per violated field.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
	Errors    []string  `json:"errors,omitempty"`
}

// HandleError is the single translation point from orchestrator failures to
// HTTP responses. Unexpected faults are logged with full detail but surface
// as an opaque 500.
func HandleError(c *gin.Context, err error) {
	path := c.Request.URL.Path

	var svcErr *serviceerrors.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.Kind {
		case serviceerrors.KindValidationFailed:
			respond(c, http.StatusBadRequest, "Validation Failed", svcErr.Message, path, svcErr.Violations)
			return
		case serviceerrors.KindNotFound:
			respond(c, http.StatusNotFound, "Not Found", svcErr.Message, path, nil)
			return
		case serviceerrors.KindInvalidRequest:
			respond(c, http.StatusBadRequest, "Bad Request", svcErr.Message, path, nil)
			return
		}
	}

	logger.Error(c.Request.Context(), "unexpected error", err, map[string]any{
		"path": path,
	})
	respond(c, http.StatusInternalServerError, "Internal Server Error",
		"An unexpected error occurred. Please try again later.", path, nil)
}

func respond(c *gin.Context, status int, label, message, path string, violations []string) {
	c.JSON(status, ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     label,
		Message:   message,
		Path:      path,
		Errors:    violations,
	})
}
