package domain

import "context"

// SourceFetcher downloads the raw markup of an article.
// Failures are reported as FETCH_FAILURE errors, never as empty markup.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// QuestionGenerator is a pluggable primary strategy for questions and related topics.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, title, fullText string) ([]CandidateQuestion, error)
	GenerateTopics(ctx context.Context, title, fullText string) ([]string, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// GetQuizByURL returns nil, nil when no quiz exists for url.
	GetQuizByURL(ctx context.Context, url string) (*WikiQuiz, error)
	// GetQuizByID returns nil, nil when no quiz exists for id.
	GetQuizByID(ctx context.Context, id string) (*WikiQuiz, error)
	ListQuizzes(ctx context.Context, offset, limit int) ([]*WikiQuiz, error)
	SaveQuiz(ctx context.Context, quiz *WikiQuiz) error
	MarkCached(ctx context.Context, id string) error
	// DeleteQuiz removes the quiz and its history entries.
	DeleteQuiz(ctx context.Context, id string) error
}

// HistoryRepository stores which user generated which quiz.
type HistoryRepository interface {
	CreateHistory(ctx context.Context, userID, quizID string) (*QuizHistory, error)
	GetHistoryByUser(ctx context.Context, userID string, offset, limit int) ([]*QuizHistory, error)
}

// TransactionManager runs fn inside a database transaction carried by ctx.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
