package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"story-engine/pkg/logger"
)

// DefaultAuditSkipPaths 默认不记录访问日志的路径
var DefaultAuditSkipPaths = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
}

// Audit 访问日志中间件；5xx 记为 warn，其余为 info
func Audit(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		fields := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}
		if id, ok := c.Get(AccountIDKey); ok {
			fields = append(fields, "account_id", id)
		}

		if c.Writer.Status() >= 500 {
			logger.Warn(c.Request.Context(), "api request", fields...)
			return
		}
		logger.Info(c.Request.Context(), "api request", fields...)
	}
}
