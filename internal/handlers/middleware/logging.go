package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/ciaopet-backend/internal/domain/ports"
)

// RequestLogger registra cada requisição processada com status e latência
func RequestLogger(logger ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []any{
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"ip", c.ClientIP(),
			"latency", time.Since(start),
			"user_agent", c.Request.UserAgent(),
		}
		if principal, ok := CurrentPrincipal(c); ok {
			fields = append(fields, "user_id", principal.User.ID)
		}
		if len(c.Errors) > 0 {
			fields = append(fields, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request failed", fields...)
		case status >= 400:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request processed", fields...)
		}
	}
}
