package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetQuizByURL(ctx context.Context, url string) (*domain.WikiQuiz, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiQuiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.WikiQuiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WikiQuiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizzes(ctx context.Context, offset, limit int) ([]*domain.WikiQuiz, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WikiQuiz), args.Error(1)
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.WikiQuiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) MarkCached(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockHistoryRepository ---
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) CreateHistory(ctx context.Context, userID, quizID string) (*domain.QuizHistory, error) {
	args := m.Called(ctx, userID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizHistory), args.Error(1)
}

func (m *MockHistoryRepository) GetHistoryByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.QuizHistory, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.QuizHistory), args.Error(1)
}

// --- MockTransactionManager ---
// MockTransactionManager runs fn directly and returns its error.
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.Called(ctx)
	return fn(ctx)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockFetcher ---
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// --- MockExtractor ---
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(rawMarkup, sourceURL string) (*domain.Document, error) {
	args := m.Called(rawMarkup, sourceURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

// --- MockGenerator ---
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateQuiz(ctx context.Context, title, fullText string) ([]domain.QuestionRecord, error) {
	args := m.Called(ctx, title, fullText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuestionRecord), args.Error(1)
}

func (m *MockGenerator) GenerateRelatedTopics(ctx context.Context, title, fullText string) []string {
	args := m.Called(ctx, title, fullText)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}

func (m *MockGenerator) Mode() string {
	args := m.Called()
	return args.String(0)
}

// --- MockPinger ---
type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) PingContext(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- MockQuizService ---
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) GenerateQuiz(ctx context.Context, url, userID string) (*dto.WikiQuizResponse, error) {
	args := m.Called(ctx, url, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WikiQuizResponse), args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id string) (*dto.WikiQuizResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.WikiQuizResponse), args.Error(1)
}

func (m *MockQuizService) ListQuizzes(ctx context.Context, skip, limit int) ([]dto.WikiQuizListItem, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.WikiQuizListItem), args.Error(1)
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizService) GetHistory(ctx context.Context, userID string, skip, limit int) ([]dto.QuizHistoryItem, error) {
	args := m.Called(ctx, userID, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.QuizHistoryItem), args.Error(1)
}

func (m *MockQuizService) Health(ctx context.Context) *dto.HealthResponse {
	args := m.Called(ctx)
	return args.Get(0).(*dto.HealthResponse)
}
