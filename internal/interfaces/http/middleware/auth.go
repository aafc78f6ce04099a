// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"story-engine/internal/interfaces/http/dto"
	"story-engine/pkg/logger"
	"story-engine/pkg/utils"
)

const (
	// AccountIDKey gin.Context 中当前账户 ID 的键
	AccountIDKey = "account_id"
	// AccessTokenCookie 访问令牌 Cookie 名
	AccessTokenCookie = "access_token"
)

// Authenticator 校验访问令牌（含注销检查）
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*utils.Claims, error)
}

// Auth 认证中间件：令牌取自 Authorization: Bearer 或 access_token Cookie
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := authenticator.Authenticate(c.Request.Context(), TokenFromRequest(c))
		if err != nil {
			dto.Abort(c, err)
			return
		}

		c.Set(AccountIDKey, claims.AccountID)
		ctx := logger.WithContext(c.Request.Context(), logger.AccountIDKey, claims.AccountID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// TokenFromRequest 提取访问令牌，Header 优先
func TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if token, err := c.Cookie(AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// AccountID 返回认证中间件注入的账户 ID
func AccountID(c *gin.Context) uint {
	return c.GetUint(AccountIDKey)
}
