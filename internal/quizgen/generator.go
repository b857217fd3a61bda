// Package quizgen turns normalized article text into validated quiz questions.
//
// A Generator prefers a pluggable primary strategy (usually a language model)
// and falls back to the deterministic Assembler whenever the primary is
// missing, fails, or produces too few valid questions. Quota, timeout and
// malformed-output failures switch the Generator to the Assembler permanently.
package quizgen

import (
	"context"

	"go.uber.org/zap"

	"wiki-quiz/internal/domain"
)

// Generator names reported by Mode.
const (
	ModePrimary  = "primary"
	ModeFallback = "fallback"
)

// Generator selects between the primary strategy and the Assembler.
type Generator struct {
	primary   domain.QuestionGenerator
	assembler *Assembler
	selection *Selection
	logger    *zap.Logger
}

// NewGenerator wires a Generator. primary may be nil, in which case every call
// uses the assembler. A nil selection starts a fresh one.
func NewGenerator(primary domain.QuestionGenerator, assembler *Assembler, selection *Selection, logger *zap.Logger) *Generator {
	if assembler == nil {
		assembler = NewAssembler(WithAssemblerLogger(logger))
	}
	if selection == nil {
		selection = NewSelection()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		primary:   primary,
		assembler: assembler,
		selection: selection,
		logger:    logger,
	}
}

// Mode reports which strategy new requests will use.
func (g *Generator) Mode() string {
	if g.usePrimary() {
		return ModePrimary
	}
	return ModeFallback
}

func (g *Generator) usePrimary() bool {
	return g.primary != nil && !g.selection.UsingFallback()
}

// handlePrimaryError logs a primary failure and flips the selection when the
// failure means the primary should not be retried.
func (g *Generator) handlePrimaryError(op string, err error) {
	if domain.IsCode(err, domain.CodeGeneratorUnavailable) {
		if g.selection.MarkFallback() {
			g.logger.Warn("Primary generator unavailable, switching to deterministic generator",
				zap.String("operation", op), zap.Error(err))
		}
		return
	}
	g.logger.Error("Primary generator failed, using deterministic generator for this request",
		zap.String("operation", op), zap.Error(err))
}

// GenerateQuiz returns 5 to 8 validated questions or an INSUFFICIENT_QUESTIONS error.
func (g *Generator) GenerateQuiz(ctx context.Context, title, fullText string) ([]domain.QuestionRecord, error) {
	if !g.usePrimary() {
		return g.assembler.Assemble(title, fullText)
	}

	candidates, err := g.primary.GenerateQuestions(ctx, title, fullText)
	if err != nil {
		g.handlePrimaryError("quiz", err)
		return g.assembler.Assemble(title, fullText)
	}

	records := Accept(candidates, domain.MaxQuizQuestions)
	if len(records) < domain.MinQuizQuestions {
		g.logger.Warn("Primary generator produced too few valid questions",
			zap.String("title", title),
			zap.Int("candidates", len(candidates)),
			zap.Int("count", len(records)))
		return g.assembler.Assemble(title, fullText)
	}

	g.logger.Info("Generated quiz with primary generator", zap.String("title", title), zap.Int("count", len(records)))
	return records, nil
}

// GenerateRelatedTopics always returns a topic list; primary failures fall
// back to FallbackTopics.
func (g *Generator) GenerateRelatedTopics(ctx context.Context, title, fullText string) []string {
	if !g.usePrimary() {
		return FallbackTopics(fullText)
	}

	raw, err := g.primary.GenerateTopics(ctx, title, fullText)
	if err != nil {
		g.handlePrimaryError("topics", err)
		return FallbackTopics(fullText)
	}

	topics := cleanTopics(raw)
	if len(topics) == 0 {
		return FallbackTopics(fullText)
	}
	return topics
}
