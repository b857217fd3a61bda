package quizgen

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"wiki-quiz/internal/domain"
)

// MaxSeeds bounds how many selected sentences the assembler synthesizes from.
const MaxSeeds = 8

// Assembler builds a quiz from article text without any external model.
type Assembler struct {
	seed   func() int64
	logger *zap.Logger
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithSeed fixes the shuffle seed so option order is reproducible.
func WithSeed(seed int64) AssemblerOption {
	return func(a *Assembler) {
		a.seed = func() int64 { return seed }
	}
}

// WithAssemblerLogger sets the logger for per-seed diagnostics.
func WithAssemblerLogger(logger *zap.Logger) AssemblerOption {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAssembler creates an Assembler seeded from the clock unless WithSeed is given.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		seed:   func() int64 { return time.Now().UnixNano() },
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns between MinQuizQuestions and MaxQuizQuestions validated
// questions, or an INSUFFICIENT_QUESTIONS error. It never returns a short quiz.
func (a *Assembler) Assemble(title, fullText string) ([]domain.QuestionRecord, error) {
	seeds := SelectSentences(fullText)
	if len(seeds) > MaxSeeds {
		seeds = seeds[:MaxSeeds]
	}

	synthesizers := NewSynthesizers(rand.New(rand.NewSource(a.seed())))
	records := make([]domain.QuestionRecord, 0, domain.MaxQuizQuestions)

	for i, seed := range seeds {
		if len(records) >= domain.MaxQuizQuestions {
			break
		}
		candidate := synthesizers.For(i).Synthesize(seed, i)
		if candidate == nil {
			a.logger.Debug("Seed sentence skipped", zap.Int("position", i))
			continue
		}
		if !Validate(*candidate) {
			a.logger.Debug("Synthesized question rejected", zap.Int("position", i))
			continue
		}
		records = append(records, Clean(*candidate))
	}

	if len(records) < domain.MinQuizQuestions {
		a.logger.Warn("Not enough questions assembled",
			zap.String("title", title),
			zap.Int("seeds", len(seeds)),
			zap.Int("count", len(records)))
		return nil, domain.NewInsufficientQuestionsError(len(records), domain.MinQuizQuestions)
	}

	a.logger.Info("Assembled quiz", zap.String("title", title), zap.Int("count", len(records)))
	return records, nil
}
