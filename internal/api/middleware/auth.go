package middleware

import (
	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/pkg/response"
	"Postcraft/internal/pkg/security"
	"Postcraft/internal/service"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 验证 JWT，并以账号状态为准注入用户身份与角色
func AuthMiddleware(accounts *service.AccountHolder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "missing or malformed token")
			c.Abort()
			return
		}

		ctx := c.Request.Context()
		value, err := redis.GetValue(ctx, consts.TokenBlacklistKey+signature)
		if err != nil {
			log.ErrorContext(ctx, "check token blacklist failed", "err", err)
			response.Fail(c, response.InternalServerError, "unexpected error")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, response.Unauthorized, "token is invalid or expired")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "token is invalid or expired")
			c.Abort()
			return
		}

		state, err := accounts.Get(ctx, claims.UserID)
		if err != nil {
			log.ErrorContext(ctx, "load account state failed", "user_id", claims.UserID, "err", err)
			response.Fail(c, response.InternalServerError, "unexpected error")
			c.Abort()
			return
		}
		if !state.Exists {
			response.Fail(c, response.Unauthorized, "token is invalid or expired")
			c.Abort()
			return
		}
		if state.Disabled {
			response.Error(c, service.ErrUserDisabled)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", state.Role)
		c.Set("token", tokenString)

		newCtx := context.WithValue(ctx, "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
