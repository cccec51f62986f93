package service

import (
	"context"
	"time"

	"Postcraft/internal/pkg/consts"
	"Postcraft/internal/pkg/redis"
	"Postcraft/internal/pkg/security"
)

type AuthService interface {
	Logout(ctx context.Context, token string) error
}

type authServiceImpl struct{}

func NewAuthService() AuthService {
	return &authServiceImpl{}
}

// Logout 把 token 签名加入黑名单，直到 token 自然过期
func (s *authServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	ttl := security.ExpireDuration()
	if claims, err := security.ValidateToken(token); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, true, ttl)
}
