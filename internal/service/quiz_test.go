package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "debug", Env: "test"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

const (
	turingURL = "https://en.wikipedia.org/wiki/Alan_Turing"
	quizTTL   = 30 * time.Minute
)

type serviceMocks struct {
	repo      *MockQuizRepository
	history   *MockHistoryRepository
	tx        *MockTransactionManager
	cache     *MockCache
	fetcher   *MockFetcher
	extractor *MockExtractor
	generator *MockGenerator
	db        *MockPinger
}

func newServiceMocks() *serviceMocks {
	return &serviceMocks{
		repo:      new(MockQuizRepository),
		history:   new(MockHistoryRepository),
		tx:        new(MockTransactionManager),
		cache:     new(MockCache),
		fetcher:   new(MockFetcher),
		extractor: new(MockExtractor),
		generator: new(MockGenerator),
		db:        new(MockPinger),
	}
}

func (m *serviceMocks) service() QuizService {
	cfg := &config.Config{Cache: config.CacheConfig{QuizTTL: quizTTL}}
	return NewQuizService(m.repo, m.history, m.tx, m.cache, m.fetcher, m.extractor, m.generator, m.db, cfg)
}

func (m *serviceMocks) assertExpectations(t *testing.T) {
	m.repo.AssertExpectations(t)
	m.history.AssertExpectations(t)
	m.tx.AssertExpectations(t)
	m.cache.AssertExpectations(t)
	m.fetcher.AssertExpectations(t)
	m.extractor.AssertExpectations(t)
	m.generator.AssertExpectations(t)
}

func sampleQuestions(n int) []domain.QuestionRecord {
	out := make([]domain.QuestionRecord, n)
	for i := range out {
		out[i] = domain.QuestionRecord{
			Question:    "Which field did Turing found?",
			Options:     []string{"Computer science", "Botany", "Geology", "Astronomy"},
			Answer:      "Computer science",
			Difficulty:  domain.DifficultyEasy,
			Explanation: "He is widely considered the father of computer science.",
		}
	}
	return out
}

func sampleDocument() *domain.Document {
	return &domain.Document{
		URL:         turingURL,
		Title:       "Alan Turing",
		Summary:     "Alan Turing was an English mathematician.",
		Sections:    []string{"Early life", "Career"},
		KeyEntities: domain.NewKeyEntities(),
		FullText:    "Alan Turing was an English mathematician and computer scientist.",
		RawMarkup:   "<html>turing</html>",
	}
}

func storedQuiz() *domain.WikiQuiz {
	return &domain.WikiQuiz{
		ID:            "01HSTORED",
		URL:           turingURL,
		Title:         "Alan Turing",
		KeyEntities:   domain.NewKeyEntities(),
		Questions:     sampleQuestions(5),
		RelatedTopics: []string{"Enigma machine"},
		CreatedAt:     time.Now(),
	}
}

func TestGenerateQuiz_InvalidURL(t *testing.T) {
	m := newServiceMocks()
	svc := m.service()

	for _, url := range []string{"", "https://example.com/wiki/Turing", "https://en.wikipedia.org/w/index.php"} {
		resp, err := svc.GenerateQuiz(context.Background(), url, "")
		assert.Nil(t, resp)
		assert.True(t, domain.IsCode(err, domain.CodeInvalidURL), "url %q", url)
	}
	m.assertExpectations(t)
}

func TestGenerateQuiz_CacheHit(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()

	cached, err := json.Marshal(dto.ToWikiQuizResponse(storedQuiz()))
	require.NoError(t, err)
	m.cache.On("Get", ctx, cache.QuizURLKey(turingURL)).Return(string(cached), nil).Once()
	m.history.On("CreateHistory", ctx, "user-1", "01HSTORED").Return(&domain.QuizHistory{ID: "h1"}, nil).Once()

	resp, err := m.service().GenerateQuiz(ctx, turingURL, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "01HSTORED", resp.ID)
	assert.True(t, resp.IsCached)
	assert.Len(t, resp.Quiz, 5)
	m.assertExpectations(t)
}

func TestGenerateQuiz_StoredQuiz(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()

	m.cache.On("Get", ctx, cache.QuizURLKey(turingURL)).Return("", domain.ErrCacheMiss).Once()
	m.repo.On("GetQuizByURL", ctx, turingURL).Return(storedQuiz(), nil).Once()
	m.repo.On("MarkCached", ctx, "01HSTORED").Return(nil).Once()
	m.cache.On("Set", ctx, cache.QuizURLKey(turingURL), mock.AnythingOfType("string"), quizTTL).Return(nil).Once()

	resp, err := m.service().GenerateQuiz(ctx, turingURL, "")
	require.NoError(t, err)
	assert.True(t, resp.IsCached)
	assert.Equal(t, "01HSTORED", resp.ID)
	m.assertExpectations(t)
}

func TestGenerateQuiz_FreshGeneration(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()
	doc := sampleDocument()

	m.cache.On("Get", ctx, cache.QuizURLKey(turingURL)).Return("", domain.ErrCacheMiss).Once()
	m.repo.On("GetQuizByURL", ctx, turingURL).Return(nil, nil).Once()
	m.fetcher.On("Fetch", ctx, turingURL).Return(doc.RawMarkup, nil).Once()
	m.extractor.On("Extract", doc.RawMarkup, turingURL).Return(doc, nil).Once()
	m.generator.On("GenerateQuiz", mock.Anything, doc.Title, doc.FullText).Return(sampleQuestions(6), nil).Once()
	m.generator.On("GenerateRelatedTopics", mock.Anything, doc.Title, doc.FullText).
		Return([]string{"Enigma machine", "Bletchley Park", "Turing test", "Computability", "Cryptanalysis"}).Once()
	m.generator.On("Mode").Return("fallback")
	m.tx.On("WithTransaction", ctx).Once()
	m.repo.On("SaveQuiz", mock.Anything, mock.AnythingOfType("*domain.WikiQuiz")).
		Run(func(args mock.Arguments) {
			q := args.Get(1).(*domain.WikiQuiz)
			q.ID = "01HNEW"
		}).Return(nil).Once()
	m.cache.On("Set", ctx, cache.QuizURLKey(turingURL), mock.AnythingOfType("string"), quizTTL).Return(nil).Once()
	m.history.On("CreateHistory", ctx, "user-1", "01HNEW").Return(&domain.QuizHistory{ID: "h1"}, nil).Once()

	resp, err := m.service().GenerateQuiz(ctx, "  "+turingURL+" ", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "01HNEW", resp.ID)
	assert.False(t, resp.IsCached)
	assert.Equal(t, "Alan Turing", resp.Title)
	assert.Len(t, resp.Quiz, 6)
	assert.Len(t, resp.RelatedTopics, 5)
	assert.Equal(t, []string{"Early life", "Career"}, resp.Sections)
	m.repo.AssertNotCalled(t, "DeleteQuiz", mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestGenerateQuiz_ReplacesStoredQuizWithoutQuestions(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()
	doc := sampleDocument()
	stale := storedQuiz()
	stale.Questions = nil

	m.cache.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss).Once()
	m.repo.On("GetQuizByURL", ctx, turingURL).Return(stale, nil).Once()
	m.fetcher.On("Fetch", ctx, turingURL).Return(doc.RawMarkup, nil).Once()
	m.extractor.On("Extract", doc.RawMarkup, turingURL).Return(doc, nil).Once()
	m.generator.On("GenerateQuiz", mock.Anything, doc.Title, doc.FullText).Return(sampleQuestions(5), nil).Once()
	m.generator.On("GenerateRelatedTopics", mock.Anything, doc.Title, doc.FullText).Return([]string{"History"}).Once()
	m.generator.On("Mode").Return("primary")
	m.tx.On("WithTransaction", ctx).Once()
	m.repo.On("DeleteQuiz", ctx, "01HSTORED").Return(nil).Once()
	m.repo.On("SaveQuiz", ctx, mock.AnythingOfType("*domain.WikiQuiz")).Return(nil).Once()
	m.cache.On("Set", ctx, mock.Anything, mock.Anything, quizTTL).Return(nil).Once()

	_, err := m.service().GenerateQuiz(ctx, turingURL, "")
	require.NoError(t, err)
	m.assertExpectations(t)
}

func TestGenerateQuiz_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch failure", func(t *testing.T) {
		m := newServiceMocks()
		m.cache.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss).Once()
		m.repo.On("GetQuizByURL", ctx, turingURL).Return(nil, nil).Once()
		m.fetcher.On("Fetch", ctx, turingURL).
			Return("", domain.NewFetchFailureError(turingURL, errors.New("status 404"))).Once()

		_, err := m.service().GenerateQuiz(ctx, turingURL, "")
		assert.True(t, domain.IsCode(err, domain.CodeFetchFailure))
		m.repo.AssertNotCalled(t, "SaveQuiz", mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})

	t.Run("insufficient questions", func(t *testing.T) {
		m := newServiceMocks()
		doc := sampleDocument()
		m.cache.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss).Once()
		m.repo.On("GetQuizByURL", ctx, turingURL).Return(nil, nil).Once()
		m.fetcher.On("Fetch", ctx, turingURL).Return(doc.RawMarkup, nil).Once()
		m.extractor.On("Extract", doc.RawMarkup, turingURL).Return(doc, nil).Once()
		m.generator.On("GenerateQuiz", mock.Anything, doc.Title, doc.FullText).
			Return(nil, domain.NewInsufficientQuestionsError(2, domain.MinQuizQuestions)).Once()
		m.generator.On("GenerateRelatedTopics", mock.Anything, doc.Title, doc.FullText).Return([]string{}).Maybe()

		_, err := m.service().GenerateQuiz(ctx, turingURL, "")
		assert.True(t, domain.IsCode(err, domain.CodeInsufficientQuestions))
		m.tx.AssertNotCalled(t, "WithTransaction", mock.Anything)
	})

	t.Run("repository lookup error", func(t *testing.T) {
		m := newServiceMocks()
		m.cache.On("Get", ctx, mock.Anything).Return("", errors.New("redis down")).Once()
		m.repo.On("GetQuizByURL", ctx, turingURL).Return(nil, errors.New("ORA-12541")).Once()

		_, err := m.service().GenerateQuiz(ctx, turingURL, "")
		assert.True(t, domain.IsCode(err, domain.CodeInternal))
		m.assertExpectations(t)
	})

	t.Run("save error", func(t *testing.T) {
		m := newServiceMocks()
		doc := sampleDocument()
		m.cache.On("Get", ctx, mock.Anything).Return("", domain.ErrCacheMiss).Once()
		m.repo.On("GetQuizByURL", ctx, turingURL).Return(nil, nil).Once()
		m.fetcher.On("Fetch", ctx, turingURL).Return(doc.RawMarkup, nil).Once()
		m.extractor.On("Extract", doc.RawMarkup, turingURL).Return(doc, nil).Once()
		m.generator.On("GenerateQuiz", mock.Anything, doc.Title, doc.FullText).Return(sampleQuestions(5), nil).Once()
		m.generator.On("GenerateRelatedTopics", mock.Anything, doc.Title, doc.FullText).Return([]string{"History"}).Once()
		m.tx.On("WithTransaction", ctx).Once()
		m.repo.On("SaveQuiz", ctx, mock.Anything).Return(errors.New("ORA-00001")).Once()

		_, err := m.service().GenerateQuiz(ctx, turingURL, "")
		assert.True(t, domain.IsCode(err, domain.CodeInternal))
		m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.assertExpectations(t)
	})
}

func TestGenerateQuiz_WithoutCache(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()
	cfg := &config.Config{}
	svc := NewQuizService(m.repo, m.history, m.tx, nil, m.fetcher, m.extractor, m.generator, nil, cfg)

	m.repo.On("GetQuizByURL", ctx, turingURL).Return(storedQuiz(), nil).Once()
	m.repo.On("MarkCached", ctx, "01HSTORED").Return(errors.New("ORA-00054")).Once()

	resp, err := svc.GenerateQuiz(ctx, turingURL, "")
	require.NoError(t, err)
	assert.True(t, resp.IsCached)
	m.assertExpectations(t)
}

func TestGetQuiz(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()
	svc := m.service()

	m.repo.On("GetQuizByID", ctx, "01HSTORED").Return(storedQuiz(), nil).Once()
	resp, err := svc.GetQuiz(ctx, "01HSTORED")
	require.NoError(t, err)
	assert.Equal(t, turingURL, resp.URL)

	m.repo.On("GetQuizByID", ctx, "01HMISSING").Return(nil, nil).Once()
	_, err = svc.GetQuiz(ctx, "01HMISSING")
	assert.True(t, domain.IsCode(err, domain.CodeQuizNotFound))

	m.assertExpectations(t)
}

func TestListQuizzes(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()

	m.repo.On("ListQuizzes", ctx, 10, 5).Return([]*domain.WikiQuiz{storedQuiz()}, nil).Once()
	items, err := m.service().ListQuizzes(ctx, 10, 5)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Alan Turing", items[0].Title)

	m.repo.On("ListQuizzes", ctx, 0, 100).Return(nil, errors.New("boom")).Once()
	_, err = m.service().ListQuizzes(ctx, 0, 100)
	assert.True(t, domain.IsCode(err, domain.CodeInternal))
	m.assertExpectations(t)
}

func TestDeleteQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("success invalidates cache", func(t *testing.T) {
		m := newServiceMocks()
		m.repo.On("GetQuizByID", ctx, "01HSTORED").Return(storedQuiz(), nil).Once()
		m.repo.On("DeleteQuiz", ctx, "01HSTORED").Return(nil).Once()
		m.cache.On("Delete", ctx, cache.QuizURLKey(turingURL)).Return(nil).Once()

		require.NoError(t, m.service().DeleteQuiz(ctx, "01HSTORED"))
		m.assertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		m := newServiceMocks()
		m.repo.On("GetQuizByID", ctx, "01HMISSING").Return(nil, nil).Once()

		err := m.service().DeleteQuiz(ctx, "01HMISSING")
		assert.True(t, domain.IsCode(err, domain.CodeQuizNotFound))
		m.assertExpectations(t)
	})

	t.Run("cache failure is ignored", func(t *testing.T) {
		m := newServiceMocks()
		m.repo.On("GetQuizByID", ctx, "01HSTORED").Return(storedQuiz(), nil).Once()
		m.repo.On("DeleteQuiz", ctx, "01HSTORED").Return(nil).Once()
		m.cache.On("Delete", ctx, mock.Anything).Return(errors.New("redis down")).Once()

		assert.NoError(t, m.service().DeleteQuiz(ctx, "01HSTORED"))
	})
}

func TestGetHistory(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()
	svc := m.service()

	_, err := svc.GetHistory(ctx, "", 0, 10)
	assert.True(t, domain.IsCode(err, domain.CodeUnauthorized))

	m.history.On("GetHistoryByUser", ctx, "user-1", 0, 10).Return([]*domain.QuizHistory{
		{ID: "h1", UserID: "user-1", QuizID: "01HSTORED", Title: "Alan Turing", URL: turingURL},
	}, nil).Once()
	items, err := svc.GetHistory(ctx, "user-1", 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "01HSTORED", items[0].QuizID)
	m.assertExpectations(t)
}

func TestHealth(t *testing.T) {
	m := newServiceMocks()
	ctx := context.Background()

	m.generator.On("Mode").Return("primary")
	m.db.On("PingContext", ctx).Return(nil).Once()
	m.cache.On("Ping", ctx).Return(errors.New("connection refused")).Once()

	resp := m.service().Health(ctx)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "primary", resp.Generator)
	assert.Equal(t, "up", resp.Database)
	assert.Equal(t, "down", resp.Cache)
}
