package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
)

// Supported generator providers.
const (
	ProviderNone   = "none"
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

const defaultCallTimeout = 60 * time.Second

// Caller is the part of a langchaingo model the generator needs.
type Caller interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// LangChainGenerator produces quiz questions and related topics with a
// language model. Quota, timeout and unparseable responses are reported as
// GENERATOR_UNAVAILABLE so callers can stop using it.
type LangChainGenerator struct {
	model   Caller
	timeout time.Duration
}

// NewLangChainGenerator wraps model. A non-positive timeout uses the default.
func NewLangChainGenerator(model Caller, timeout time.Duration) *LangChainGenerator {
	if timeout <= 0 {
		timeout = defaultCallTimeout
	}
	return &LangChainGenerator{model: model, timeout: timeout}
}

// NewFromConfig builds the configured primary generator. It returns nil, nil
// when no provider is configured.
func NewFromConfig(cfg config.GeneratorConfig) (domain.QuestionGenerator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderNone:
		return nil, nil
	case ProviderOllama:
		model, err := ollama.New(
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewLangChainGenerator(model, cfg.Timeout), nil
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key cannot be empty")
		}
		opts := []openai.Option{openai.WithToken(cfg.APIKey)}
		if cfg.Model != "" {
			opts = append(opts, openai.WithModel(cfg.Model))
		}
		if cfg.ServerURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.ServerURL))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create openai client: %w", err)
		}
		return NewLangChainGenerator(model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}

// GenerateQuestions asks the model for a quiz. Candidates are returned
// unvalidated.
func (g *LangChainGenerator) GenerateQuestions(ctx context.Context, title, fullText string) ([]domain.CandidateQuestion, error) {
	l := logger.Get()
	l.Info("Generating quiz with language model", zap.String("title", title), zap.Int("content_length", len(fullText)))

	response, err := g.call(ctx, fmt.Sprintf(quizPrompt, title, fullText))
	if err != nil {
		return nil, err
	}

	candidates, err := parseQuestions(response)
	if err != nil {
		l.Error("Failed to extract quiz JSON from model response",
			zap.Error(err),
			zap.String("response_preview", preview(response)))
		return nil, domain.NewGeneratorUnavailableError(domain.GeneratorFailureParse, err)
	}

	l.Info("Model returned quiz candidates", zap.Int("count", len(candidates)))
	return candidates, nil
}

// GenerateTopics asks the model for related article titles.
func (g *LangChainGenerator) GenerateTopics(ctx context.Context, title, fullText string) ([]string, error) {
	response, err := g.call(ctx, fmt.Sprintf(topicsPrompt, title, fullText))
	if err != nil {
		return nil, err
	}

	topics, err := parseTopics(response)
	if err != nil {
		logger.Get().Error("Failed to extract topics JSON from model response",
			zap.Error(err),
			zap.String("response_preview", preview(response)))
		return nil, domain.NewGeneratorUnavailableError(domain.GeneratorFailureParse, err)
	}
	return topics, nil
}

func (g *LangChainGenerator) call(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := g.model.Call(ctx, prompt, llms.WithTemperature(0.2))
	if err != nil {
		if kind := classify(err); kind != "" {
			logger.Get().Warn("Language model unavailable", zap.String("kind", kind), zap.Error(err))
			return "", domain.NewGeneratorUnavailableError(kind, err)
		}
		logger.Get().Error("Language model call failed", zap.Error(err))
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	return response, nil
}

// classify maps a model error to a generator failure kind, or "" when the
// failure is not one that should disable the model.
func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.GeneratorFailureTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"), strings.Contains(msg, "deadline exceeded"):
		return domain.GeneratorFailureTimeout
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "429"),
		strings.Contains(msg, "exceeded"),
		strings.Contains(msg, "resource exhausted"),
		strings.Contains(msg, "resourceexhausted"):
		return domain.GeneratorFailureQuota
	}
	return ""
}

func preview(s string) string {
	if len(s) > 300 {
		return s[:300]
	}
	return s
}

var _ domain.QuestionGenerator = (*LangChainGenerator)(nil)
