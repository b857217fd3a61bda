package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/validation"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Builds 5 to 8 multiple-choice questions plus related topics for the article. Previously generated quizzes are returned with is_cached=true.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Param Authorization header string false "Bearer access token"
// @Success 200 {object} dto.WikiQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Debug("Failed to parse generate request", zap.Error(err))
		return domain.NewInvalidInputError("Request body must be JSON with a url field")
	}
	if errs := h.validator.ValidateWikiURL(req.URL); len(errs) > 0 {
		if errs[0].Code == domain.CodeInvalidFormat {
			return domain.NewInvalidURLError(strings.TrimSpace(req.URL))
		}
		return errs
	}

	resp, err := h.service.GenerateQuiz(c.UserContext(), req.URL, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary List generated quizzes
// @Description Returns quizzes newest first
// @Tags quiz
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(100)
// @Success 200 {array} dto.WikiQuizListItem
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/list [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	skip, limit := middleware.Pagination(c)
	items, err := h.service.ListQuizzes(c.UserContext(), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.WikiQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.GetQuiz(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Removes the quiz, its history entries and its cache entry
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.service.DeleteQuiz(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Quiz deleted successfully"})
}

// GetHistory godoc
// @Summary Get the caller's quiz history
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size (1-100)" default(100)
// @Success 200 {array} dto.QuizHistoryItem
// @Failure 401 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	skip, limit := middleware.Pagination(c)
	items, err := h.service.GetHistory(c.UserContext(), middleware.UserID(c), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// Health godoc
// @Summary Health check
// @Description Reports liveness and which question generator is active
// @Tags system
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(h.service.Health(c.UserContext()))
}

// Index lists the available endpoints.
func (h *QuizHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Wiki Quiz API",
		"docs":    "/swagger/index.html",
		"endpoints": fiber.Map{
			"generate_quiz": "POST /api/quiz/generate",
			"list_quizzes":  "GET /api/quiz/list",
			"get_quiz":      "GET /api/quiz/{quiz_id}",
			"delete_quiz":   "DELETE /api/quiz/{quiz_id}",
			"history":       "GET /api/history",
			"health":        "GET /api/health",
		},
	})
}

// RegisterRoutes mounts the quiz API on router.
func (h *QuizHandler) RegisterRoutes(router fiber.Router, tokenService service.TokenService) {
	vm := middleware.NewValidationMiddleware()

	quiz := router.Group("/quiz")
	quiz.Post("/generate", middleware.OptionalAuth(tokenService), h.GenerateQuiz)
	quiz.Get("/list", vm.ValidatePagination(), h.ListQuizzes)
	quiz.Get("/:id", vm.ValidateQuizID(), h.GetQuiz)
	quiz.Delete("/:id", vm.ValidateQuizID(), h.DeleteQuiz)

	router.Get("/history", middleware.Protected(tokenService), vm.ValidatePagination(), h.GetHistory)
	router.Get("/health", h.Health)
}
