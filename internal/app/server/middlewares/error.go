package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ban/healthsense/internal/app/pkg/ginx"
	"ban/healthsense/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// Handler 已写出响应时只记录错误；未写出时按 500 兜底
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			log.Errorf(c.Request.Context(), "[HTTP] %s %s error: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
		if !c.Writer.Written() {
			ginx.InternalError(c, "internal server error")
		}
	}
}

// Recovery 捕获 panic，返回 500
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "[HTTP] panic recovered: %s %s: %v", c.Request.Method, c.Request.URL.Path, r)
				if !c.Writer.Written() {
					ginx.Error(c, http.StatusInternalServerError, "internal server error")
				}
				c.Abort()
			}
		}()
		c.Next()
	}
}
