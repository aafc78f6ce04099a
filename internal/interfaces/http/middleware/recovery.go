package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"story-engine/internal/interfaces/http/dto"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
)

// Recovery Panic 恢复中间件
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					fmt.Errorf("%v", r),
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
				)
				dto.Abort(c, apperrors.ErrInternalError)
			}
		}()

		c.Next()
	}
}
