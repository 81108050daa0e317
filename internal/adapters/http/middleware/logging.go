package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ecomstack/product-service/internal/core/logger"
)

// LogRequest emits one structured entry per request. Severity follows the
// status code class so 4xx and 5xx responses stand out in the log stream.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		attrs := map[string]any{
			"http.method":      c.Request.Method,
			"http.path":        c.Request.URL.Path,
			"http.route":       c.FullPath(),
			"http.status_code": statusCode,
			"http.duration_ms": duration.Milliseconds(),
		}

		if contentLength := c.Request.Header.Get("Content-Length"); contentLength != "" {
			if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
				attrs["http.request_size"] = size
			}
		}
		if responseSize := c.Writer.Size(); responseSize > 0 {
			attrs["http.response_size"] = responseSize
		}

		level := logger.LogLevelInfo
		if statusCode >= 500 {
			level = logger.LogLevelError
		} else if statusCode >= 400 {
			level = logger.LogLevelWarn
		}

		logger.Log(c.Request.Context(), logger.LogEntry{
			Level:      level,
			Message:    "HTTP Request",
			Attributes: attrs,
		})
	}
}
