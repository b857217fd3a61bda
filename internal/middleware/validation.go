package middleware

import (
	"github.com/gofiber/fiber/v2"

	"wiki-quiz/internal/validation"
)

// Locals keys set by ValidationMiddleware.
const (
	SkipKey   = "validated_skip"
	LimitKey  = "validated_limit"
	QuizIDKey = "validated_quiz_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidatePagination validates the skip and limit query parameters.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		skip, limit, errors := vm.validator.ValidatePagination(c.Query("skip"), c.Query("limit"))
		if len(errors) > 0 {
			return errors
		}
		c.Locals(SkipKey, skip)
		c.Locals(LimitKey, limit)
		return c.Next()
	}
}

// ValidateQuizID validates the :id path parameter.
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateQuizID(id); len(errors) > 0 {
			return errors
		}
		c.Locals(QuizIDKey, id)
		return c.Next()
	}
}

// Pagination returns the validated skip and limit, defaulting when the
// middleware did not run.
func Pagination(c *fiber.Ctx) (int, int) {
	skip, _ := c.Locals(SkipKey).(int)
	limit, ok := c.Locals(LimitKey).(int)
	if !ok {
		limit = validation.DefaultLimit
	}
	return skip, limit
}
