package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/validation"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz returns the quiz for a Wikipedia article URL, building it
	// when no stored copy exists. userID may be empty for anonymous callers.
	GenerateQuiz(ctx context.Context, url, userID string) (*dto.WikiQuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.WikiQuizResponse, error)
	ListQuizzes(ctx context.Context, skip, limit int) ([]dto.WikiQuizListItem, error)
	DeleteQuiz(ctx context.Context, id string) error
	GetHistory(ctx context.Context, userID string, skip, limit int) ([]dto.QuizHistoryItem, error)
	Health(ctx context.Context) *dto.HealthResponse
}

// DocumentExtractor turns fetched markup into a Document.
type DocumentExtractor interface {
	Extract(rawMarkup, sourceURL string) (*domain.Document, error)
}

// QuizGenerator produces questions and related topics for a document.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, title, fullText string) ([]domain.QuestionRecord, error)
	GenerateRelatedTopics(ctx context.Context, title, fullText string) []string
	Mode() string
}

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

const (
	statusHealthy  = "healthy"
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type quizService struct {
	repo        domain.QuizRepository
	historyRepo domain.HistoryRepository
	txManager   domain.TransactionManager
	cache       domain.Cache
	fetcher     domain.SourceFetcher
	extractor   DocumentExtractor
	generator   QuizGenerator
	db          Pinger
	cfg         *config.Config
	inflight    singleflight.Group
}

// NewQuizService creates a new instance of quizService. cache and db may be nil.
func NewQuizService(
	repo domain.QuizRepository,
	historyRepo domain.HistoryRepository,
	txManager domain.TransactionManager,
	quizCache domain.Cache,
	fetcher domain.SourceFetcher,
	extractor DocumentExtractor,
	generator QuizGenerator,
	db Pinger,
	cfg *config.Config,
) QuizService {
	return &quizService{
		repo:        repo,
		historyRepo: historyRepo,
		txManager:   txManager,
		cache:       quizCache,
		fetcher:     fetcher,
		extractor:   extractor,
		generator:   generator,
		db:          db,
		cfg:         cfg,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, url, userID string) (*dto.WikiQuizResponse, error) {
	url = strings.TrimSpace(url)
	if !validation.IsWikiArticleURL(url) {
		return nil, domain.NewInvalidURLError(url)
	}
	appLogger := logger.Get()

	if resp := s.getCached(ctx, url); resp != nil {
		appLogger.Info("Quiz served from cache", zap.String("url", url), zap.String("quiz_id", resp.ID))
		s.recordHistory(ctx, userID, resp.ID)
		return resp, nil
	}

	stored, err := s.repo.GetQuizByURL(ctx, url)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up quiz", err)
	}
	if stored != nil && len(stored.Questions) > 0 {
		if err := s.repo.MarkCached(ctx, stored.ID); err != nil {
			appLogger.Warn("Failed to flag stored quiz as cached", zap.String("quiz_id", stored.ID), zap.Error(err))
		}
		stored.IsCached = true
		resp := dto.ToWikiQuizResponse(stored)
		s.setCached(ctx, url, resp)
		appLogger.Info("Quiz served from database", zap.String("url", url), zap.String("quiz_id", stored.ID))
		s.recordHistory(ctx, userID, stored.ID)
		return resp, nil
	}

	staleID := ""
	if stored != nil {
		staleID = stored.ID
	}

	v, err, shared := s.inflight.Do(url, func() (interface{}, error) {
		return s.buildQuiz(ctx, url, staleID)
	})
	if err != nil {
		return nil, err
	}
	quiz := v.(*domain.WikiQuiz)
	if shared {
		appLogger.Debug("Joined in-flight quiz generation", zap.String("url", url))
	}

	resp := dto.ToWikiQuizResponse(quiz)
	s.setCached(ctx, url, resp)
	s.recordHistory(ctx, userID, quiz.ID)
	return resp, nil
}

// buildQuiz fetches, extracts, generates and stores a new quiz. A stored quiz
// with staleID is replaced in the same transaction.
func (s *quizService) buildQuiz(ctx context.Context, url, staleID string) (*domain.WikiQuiz, error) {
	appLogger := logger.Get()
	start := time.Now()

	appLogger.Info("Fetching article", zap.String("url", url))
	raw, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, asDomainError(err, "Failed to fetch article")
	}

	doc, err := s.extractor.Extract(raw, url)
	if err != nil {
		return nil, asDomainError(err, "Failed to extract article")
	}

	var (
		questions []domain.QuestionRecord
		topics    []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.generator.GenerateQuiz(gctx, doc.Title, doc.FullText)
		return err
	})
	g.Go(func() error {
		topics = s.generator.GenerateRelatedTopics(gctx, doc.Title, doc.FullText)
		return nil
	})
	if err := g.Wait(); err != nil {
		appLogger.Error("Quiz generation failed", zap.String("url", url), zap.Error(err))
		return nil, asDomainError(err, "Failed to generate quiz")
	}

	quiz := domain.NewWikiQuiz(doc, questions, topics)
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if staleID != "" {
			if err := s.repo.DeleteQuiz(txCtx, staleID); err != nil {
				return err
			}
		}
		return s.repo.SaveQuiz(txCtx, quiz)
	})
	if err != nil {
		return nil, domain.NewInternalError("Failed to save quiz", err)
	}

	appLogger.Info("Quiz generated",
		zap.String("url", url),
		zap.String("quiz_id", quiz.ID),
		zap.Int("count", len(quiz.Questions)),
		zap.String("generator", s.generator.Mode()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return quiz, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.WikiQuizResponse, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return dto.ToWikiQuizResponse(quiz), nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context, skip, limit int) ([]dto.WikiQuizListItem, error) {
	quizzes, err := s.repo.ListQuizzes(ctx, skip, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	items := make([]dto.WikiQuizListItem, 0, len(quizzes))
	for _, q := range quizzes {
		items = append(items, dto.ToWikiQuizListItem(q))
	}
	return items, nil
}

// DeleteQuiz implements QuizService
func (s *quizService) DeleteQuiz(ctx context.Context, id string) error {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return domain.NewInternalError("Failed to get quiz", err)
	}
	if quiz == nil {
		return domain.NewQuizNotFoundError(id)
	}
	if err := s.repo.DeleteQuiz(ctx, id); err != nil {
		return domain.NewInternalError("Failed to delete quiz", err)
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.QuizURLKey(quiz.URL)); err != nil {
			logger.Get().Warn("Failed to invalidate cached quiz", zap.String("quiz_id", id), zap.Error(err))
		}
	}
	logger.Get().Info("Quiz deleted", zap.String("quiz_id", id), zap.String("url", quiz.URL))
	return nil
}

// GetHistory implements QuizService
func (s *quizService) GetHistory(ctx context.Context, userID string, skip, limit int) ([]dto.QuizHistoryItem, error) {
	if userID == "" {
		return nil, domain.NewUnauthorizedError("Authentication required")
	}
	entries, err := s.historyRepo.GetHistoryByUser(ctx, userID, skip, limit)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get history", err)
	}
	items := make([]dto.QuizHistoryItem, 0, len(entries))
	for _, h := range entries {
		items = append(items, dto.ToQuizHistoryItem(h))
	}
	return items, nil
}

// Health implements QuizService
func (s *quizService) Health(ctx context.Context) *dto.HealthResponse {
	resp := &dto.HealthResponse{
		Status:    statusHealthy,
		Generator: s.generator.Mode(),
		Database:  statusDisabled,
		Cache:     statusDisabled,
	}
	if s.db != nil {
		resp.Database = statusUp
		if err := s.db.PingContext(ctx); err != nil {
			logger.Get().Warn("Database ping failed", zap.Error(err))
			resp.Database = statusDown
		}
	}
	if s.cache != nil {
		resp.Cache = statusUp
		if err := s.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache ping failed", zap.Error(err))
			resp.Cache = statusDown
		}
	}
	return resp
}

// getCached returns the cached response for url, or nil on a miss or any cache error.
func (s *quizService) getCached(ctx context.Context, url string) *dto.WikiQuizResponse {
	if s.cache == nil {
		return nil
	}
	key := cache.QuizURLKey(url)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}
	var resp dto.WikiQuizResponse
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		logger.Get().Warn("Discarding malformed cache entry", zap.String("key", key), zap.Error(err))
		return nil
	}
	if len(resp.Quiz) == 0 {
		return nil
	}
	resp.IsCached = true
	return &resp
}

func (s *quizService) setCached(ctx context.Context, url string, resp *dto.WikiQuizResponse) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.String("quiz_id", resp.ID), zap.Error(err))
		return
	}
	var ttl time.Duration
	if s.cfg != nil {
		ttl = s.cfg.Cache.QuizTTL
	}
	if err := s.cache.Set(ctx, cache.QuizURLKey(url), string(data), ttl); err != nil {
		logger.Get().Warn("Cache write failed", zap.String("quiz_id", resp.ID), zap.Error(err))
	}
}

// recordHistory links an authenticated user to a quiz. Failures are logged only.
func (s *quizService) recordHistory(ctx context.Context, userID, quizID string) {
	if userID == "" || quizID == "" {
		return
	}
	if _, err := s.historyRepo.CreateHistory(ctx, userID, quizID); err != nil {
		logger.Get().Error("Failed to create history entry",
			zap.String("user_id", userID), zap.String("quiz_id", quizID), zap.Error(err))
	}
}

// asDomainError passes domain errors through and wraps anything else as internal.
func asDomainError(err error, message string) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	return domain.NewInternalError(message, err)
}
