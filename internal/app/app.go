// Package app wires the quiz pipeline from configuration. Both the API server
// and the batch generator start from Build.
package app

import (
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"wiki-quiz/internal/adapter"
	"wiki-quiz/internal/adapter/fetcher"
	"wiki-quiz/internal/adapter/llm"
	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/extract"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/quizgen"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"
)

// Components holds the long-lived objects built from configuration.
type Components struct {
	DB          *sqlx.DB
	Redis       *redis.Client
	Generator   *quizgen.Generator
	QuizService service.QuizService
}

// Build connects to Oracle and, when configured, Redis, then assembles the
// quiz service. A Redis failure is logged and the service runs uncached.
func Build(cfg *config.Config) (*Components, error) {
	appLogger := logger.Get()

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	var (
		redisClient *redis.Client
		quizCache   domain.Cache
	)
	if cfg.Redis.Address != "" {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			quizCache = adapter.NewRedisCacheAdapter(redisClient)
			appLogger.Info("Redis cache initialized", zap.String("address", cfg.Redis.Address))
		}
	} else {
		appLogger.Warn("Redis cache is not configured. Running without cache.")
	}

	primary, err := llm.NewFromConfig(cfg.Generator)
	if err != nil {
		db.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	if primary == nil {
		appLogger.Info("No primary generator configured, using deterministic generator")
	} else {
		appLogger.Info("Primary generator initialized",
			zap.String("provider", cfg.Generator.Provider),
			zap.String("model", cfg.Generator.Model))
	}

	generator := quizgen.NewGenerator(
		primary,
		quizgen.NewAssembler(quizgen.WithAssemblerLogger(appLogger)),
		quizgen.NewSelection(),
		appLogger,
	)

	quizService := service.NewQuizService(
		repository.NewQuizDatabaseAdapter(db),
		repository.NewHistoryDatabaseAdapter(db),
		repository.NewTransactionManagerAdapter(db),
		quizCache,
		fetcher.NewHTTPFetcher(cfg.Fetcher, nil),
		extract.New(extract.WithLogger(appLogger)),
		generator,
		db,
		cfg,
	)

	return &Components{
		DB:          db,
		Redis:       redisClient,
		Generator:   generator,
		QuizService: quizService,
	}, nil
}

// Close releases the database and Redis connections.
func (c *Components) Close() {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Get().Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Get().Warn("Failed to close database", zap.Error(err))
		}
	}
}
