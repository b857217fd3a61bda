package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	code := m.Run()
	_ = logger.Sync()
	os.Exit(code)
}

// ManualMockTokenService is a function-field mock of service.TokenService.
type ManualMockTokenService struct {
	ValidateJWTFunc func(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
}

func (m *ManualMockTokenService) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	if m.ValidateJWTFunc != nil {
		return m.ValidateJWTFunc(ctx, tokenString)
	}
	return nil, errors.New("ValidateJWTFunc not set on mock")
}

func (m *ManualMockTokenService) CreateJWT(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	panic("not implemented in mock")
}

func acceptOnly(valid string) *ManualMockTokenService {
	return &ManualMockTokenService{
		ValidateJWTFunc: func(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
			if tokenString == valid {
				return &dto.AuthClaims{UserID: "user123", TokenType: "access"}, nil
			}
			return nil, errors.New("invalid jwt token")
		},
	}
}

func newAuthApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/test", handler, func(c *fiber.Ctx) error {
		return c.SendString("user=" + middleware.UserID(c))
	})
	return app
}

func TestOptionalAuth(t *testing.T) {
	app := newAuthApp(middleware.OptionalAuth(acceptOnly("valid_access_token")))

	tests := []struct {
		name       string
		authHeader string
		wantBody   string
	}{
		{"No Auth Header", "", "user="},
		{"Valid Access Token", "Bearer valid_access_token", "user=user123"},
		{"Invalid Token", "Bearer expired", "user="},
		{"Wrong Scheme", "Basic dXNlcjpwYXNz", "user="},
		{"Empty Bearer", "Bearer ", "user="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestProtected(t *testing.T) {
	app := newAuthApp(middleware.Protected(acceptOnly("valid_access_token")))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantBody   string
	}{
		{"No Auth Header", "", fiber.StatusUnauthorized, ""},
		{"Wrong Scheme", "Token abc", fiber.StatusUnauthorized, ""},
		{"Invalid Token", "Bearer nope", fiber.StatusUnauthorized, ""},
		{"Valid Access Token", "Bearer valid_access_token", fiber.StatusOK, "user=user123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set(middleware.AuthorizationHeader, tt.authHeader)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.wantBody, string(body))
			}
		})
	}
}
