package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
)

const (
	tokenTypeAccess = "access"
	tokenSnippetLen = 20
)

var (
	ErrInvalidJWTToken = errors.New("invalid jwt token")
	ErrMissingSecret   = errors.New("jwt secret key is not configured")
)

// TokenService verifies bearer tokens issued by the account service.
type TokenService interface {
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, userID string, ttl time.Duration) (string, error)
}

type tokenServiceImpl struct {
	secret []byte
}

// NewTokenService creates a TokenService signing and verifying with cfg.SecretKey.
func NewTokenService(cfg config.JWTConfig) (TokenService, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}
	return &tokenServiceImpl{secret: []byte(cfg.SecretKey)}, nil
}

// CreateJWT issues an HS256 access token for userID.
func (s *tokenServiceImpl) CreateJWT(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := dto.AuthClaims{
		UserID:    userID,
		TokenType: tokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateJWT parses tokenString and returns its claims when the signature,
// expiry and token type all check out.
func (s *tokenServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		snippet := tokenString[:min(len(tokenString), tokenSnippetLen)] + "..."
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err), zap.String("token_snippet", snippet))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err), zap.String("token_snippet", snippet))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidJWTToken
	}
	if claims.TokenType != tokenTypeAccess {
		return nil, fmt.Errorf("%w: expected access token, got %q", ErrInvalidJWTToken, claims.TokenType)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user_id", ErrInvalidJWTToken)
	}
	return claims, nil
}
