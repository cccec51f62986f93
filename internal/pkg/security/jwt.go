package security

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"Postcraft/internal/api/config"

	"github.com/golang-jwt/jwt/v5"
)

const (
	defaultExpire = 72 * time.Hour
	defaultIssuer = "postcraft"
)

var (
	mu        sync.RWMutex
	jwtSecret []byte
	jwtIssuer = defaultIssuer
	jwtExpire = defaultExpire
)

var ErrSecretNotConfigured = errors.New("jwt secret is not configured")

// Configure 使用配置初始化签名参数，启动时调用一次
func Configure(cfg config.JWTConfig) {
	mu.Lock()
	defer mu.Unlock()
	jwtSecret = []byte(cfg.Secret)
	jwtIssuer = defaultIssuer
	if cfg.Issuer != "" {
		jwtIssuer = cfg.Issuer
	}
	jwtExpire = defaultExpire
	if cfg.ExpireHours > 0 {
		jwtExpire = time.Duration(cfg.ExpireHours) * time.Hour
	}
}

// ExpireDuration Token 有效期
func ExpireDuration() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return jwtExpire
}

func signingParams() ([]byte, string, time.Duration) {
	mu.RLock()
	defer mu.RUnlock()
	return jwtSecret, jwtIssuer, jwtExpire
}

// GenerateToken 生成一个新的 JWT Token
func GenerateToken(userID uint64, role string) (string, error) {
	secret, issuer, expire := signingParams()
	if len(secret) == 0 {
		return "", ErrSecretNotConfigured
	}

	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken 验证 Token 字符串并解析出 Claims
func ValidateToken(tokenString string) (*UserClaims, error) {
	secret, issuer, _ := signingParams()
	if len(secret) == 0 {
		return nil, ErrSecretNotConfigured
	}

	claims := &UserClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid or expired")
	}

	return claims, nil
}

// ExtractSignature 从 Token 字符串中提取签名
func ExtractSignature(tokenString string) (string, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[2] == "" {
		return "", errors.New("malformed token")
	}
	return parts[2], nil
}
