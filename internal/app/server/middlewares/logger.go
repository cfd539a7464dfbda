package middlewares

import (
	"time"

	"github.com/gin-gonic/gin"

	"ban/healthsense/pkg/logger"
)

// Logger 访问日志
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		ctx := c.Request.Context()
		switch {
		case status >= 500:
			log.Errorf(ctx, "[HTTP] %s %s %d %v", c.Request.Method, path, status, time.Since(start))
		case status >= 400:
			log.Warnf(ctx, "[HTTP] %s %s %d %v", c.Request.Method, path, status, time.Since(start))
		default:
			log.Infof(ctx, "[HTTP] %s %s %d %v", c.Request.Method, path, status, time.Since(start))
		}
	}
}
