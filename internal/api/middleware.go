package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/your-org/acs/internal/observability"
)

// RecoveryMiddleware converts panics into the legacy 500 envelope.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		slog.Error("panic recovered", "error", err, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// LoggingMiddleware logs each request with slog.
func LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		slog.Info("request",
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration", duration.String(),
			"ip", c.ClientIP(),
		)

		// Metric label uses the route template so card numbers and user
		// ids don't fan out into per-value series.
		labelPath := c.FullPath()
		if labelPath == "" {
			labelPath = path
		}
		observability.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			labelPath,
			fmt.Sprintf("%d", status),
		).Observe(duration.Seconds())
	}
}
