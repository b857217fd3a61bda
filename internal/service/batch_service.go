package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBatchConcurrency = 4

// BatchResult is the outcome of generating one URL.
type BatchResult struct {
	URL      string
	QuizID   string
	IsCached bool
	Err      error
}

// BatchReport summarises a batch run.
type BatchReport struct {
	Results   []BatchResult
	Generated int
	Cached    int
	Failed    int
}

// BatchService pre-generates quizzes so later requests hit storage.
type BatchService interface {
	GenerateAll(ctx context.Context, urls []string) *BatchReport
}

type batchService struct {
	quizService QuizService
	concurrency int
	logger      *zap.Logger
}

// NewBatchService creates a new instance of batchService.
func NewBatchService(quizService QuizService, concurrency int, logger *zap.Logger) BatchService {
	if concurrency <= 0 {
		concurrency = defaultBatchConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &batchService{
		quizService: quizService,
		concurrency: concurrency,
		logger:      logger,
	}
}

// GenerateAll runs every URL through the quiz service with bounded
// concurrency. A failing URL never stops the others; results keep input order.
func (s *batchService) GenerateAll(ctx context.Context, urls []string) *BatchReport {
	s.logger.Info("Starting batch quiz generation",
		zap.Int("count", len(urls)),
		zap.Int("concurrency", s.concurrency),
		zap.Time("start_time", time.Now()))

	report := &BatchReport{Results: make([]BatchResult, len(urls))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, url := range urls {
		g.Go(func() error {
			res := BatchResult{URL: url}
			resp, err := s.quizService.GenerateQuiz(gctx, url, "")
			if err != nil {
				res.Err = err
				s.logger.Error("Failed to generate quiz", zap.String("url", url), zap.Error(err))
			} else {
				res.QuizID = resp.ID
				res.IsCached = resp.IsCached
				s.logger.Info("Quiz ready",
					zap.String("url", url),
					zap.String("quiz_id", resp.ID),
					zap.Bool("is_cached", resp.IsCached))
			}

			mu.Lock()
			report.Results[i] = res
			switch {
			case res.Err != nil:
				report.Failed++
			case res.IsCached:
				report.Cached++
			default:
				report.Generated++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	s.logger.Info("Batch quiz generation completed",
		zap.Int("generated", report.Generated),
		zap.Int("cached", report.Cached),
		zap.Int("failed", report.Failed),
		zap.Time("end_time", time.Now()))
	return report
}
