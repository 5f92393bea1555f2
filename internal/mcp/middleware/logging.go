package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/honeycarbs/jobapply-gateway/pkg/logging"
)

// Logging emits one structured log line per request.
func Logging(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := []any{
			"request_id", RequestIDFromContext(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", float64(latency.Microseconds()) / 1000.0,
			"client_ip", c.ClientIP(),
		}
		if tool, ok := c.Get(ToolKey); ok {
			fields = append(fields, "tool", tool)
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("request.complete", fields...)
			return
		}
		logger.Info("request.complete", fields...)
	}
}

// ToolKey is set by the invoke handler so request logs name the tool
const ToolKey = "tool"
