package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/service"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// bearerToken returns the token from an Authorization header, or "" when the
// header is absent or not a bearer credential.
func bearerToken(c *fiber.Ctx) (string, string) {
	authHeader := c.Get(AuthorizationHeader)
	if authHeader == "" {
		return "", "MISSING_AUTH_HEADER"
	}
	if !strings.HasPrefix(authHeader, BearerSchema) {
		return "", "INVALID_AUTH_SCHEME"
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
	if token == "" {
		return "", "EMPTY_TOKEN"
	}
	return token, ""
}

// Protected requires a valid access token and stores its user ID in locals.
func Protected(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := bearerToken(c)
		if problem != "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    problem,
				Message: "A bearer access token is required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := tokenService.ValidateJWT(c.Context(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// OptionalAuth sets the user ID when a valid access token is presented and
// otherwise lets the request through anonymously.
func OptionalAuth(tokenService service.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, problem := bearerToken(c)
		if problem != "" {
			if problem != "MISSING_AUTH_HEADER" {
				logger.Get().Debug("OptionalAuth: unusable Authorization header, proceeding as anonymous.", zap.String("reason", problem))
			}
			return c.Next()
		}

		claims, err := tokenService.ValidateJWT(c.Context(), token)
		if err != nil {
			logger.Get().Debug("OptionalAuth: JWT validation failed, proceeding as anonymous.", zap.Error(err))
			return c.Next()
		}

		c.Locals(UserIDKey, claims.UserID)
		return c.Next()
	}
}

// UserID returns the authenticated user ID from locals, or "".
func UserID(c *fiber.Ctx) string {
	if id, ok := c.Locals(UserIDKey).(string); ok {
		return id
	}
	return ""
}
