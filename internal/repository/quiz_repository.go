package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"
)

// Oracle upper-cases unquoted identifiers, so every column is aliased back to
// the lower-case name sqlx maps by. raw_html is write-only.
const quizColumns = `
		id "id",
		url "url",
		title "title",
		summary "summary",
		key_entities "key_entities",
		sections "sections",
		quiz "quiz",
		related_topics "related_topics",
		is_cached "is_cached",
		created_at "created_at",
		updated_at "updated_at"`

// QuizDatabaseAdapter implements domain.QuizRepository on Oracle.
type QuizDatabaseAdapter struct {
	db DBTX
}

func NewQuizDatabaseAdapter(db DBTX) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

func (a *QuizDatabaseAdapter) getOne(ctx context.Context, query string, arg interface{}) (*domain.WikiQuiz, error) {
	var m models.WikiQuiz
	if err := GetExecutor(ctx, a.db).GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return toDomainWikiQuiz(&m), nil
}

// GetQuizByURL implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByURL(ctx context.Context, url string) (*domain.WikiQuiz, error) {
	quiz, err := a.getOne(ctx, `SELECT`+quizColumns+` FROM wiki_quizzes WHERE url = :1`, url)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by URL %s: %w", url, err)
	}
	return quiz, nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.WikiQuiz, error) {
	quiz, err := a.getOne(ctx, `SELECT`+quizColumns+` FROM wiki_quizzes WHERE id = :1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return quiz, nil
}

// ListQuizzes returns quizzes newest first.
func (a *QuizDatabaseAdapter) ListQuizzes(ctx context.Context, offset, limit int) ([]*domain.WikiQuiz, error) {
	query := `SELECT` + quizColumns + `
	FROM wiki_quizzes
	ORDER BY created_at DESC, id DESC
	OFFSET :1 ROWS FETCH NEXT :2 ROWS ONLY`

	var rows []models.WikiQuiz
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}

	quizzes := make([]*domain.WikiQuiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainWikiQuiz(&rows[i]))
	}
	return quizzes, nil
}

// SaveQuiz inserts quiz, assigning its ID and timestamps.
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.WikiQuiz) error {
	if quiz == nil {
		return fmt.Errorf("cannot save nil quiz")
	}
	m := toModelWikiQuiz(quiz)
	if m.ID == "" {
		m.ID = util.NewULID()
	}
	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	query := `INSERT INTO wiki_quizzes (
		id, url, title, summary, key_entities, sections,
		quiz, related_topics, raw_html, is_cached, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8, :9, :10, :11, :12
	)`

	_, err := GetExecutor(ctx, a.db).ExecContext(ctx, query,
		m.ID, m.URL, m.Title, m.Summary, m.KeyEntities, m.Sections,
		m.Quiz, m.RelatedTopics, m.RawHTML, m.IsCached, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save quiz: %w", err)
	}

	quiz.ID = m.ID
	quiz.CreatedAt = m.CreatedAt
	quiz.UpdatedAt = m.UpdatedAt
	return nil
}

// MarkCached flags a quiz as having been served from storage.
func (a *QuizDatabaseAdapter) MarkCached(ctx context.Context, id string) error {
	query := `UPDATE wiki_quizzes SET is_cached = 1, updated_at = :1 WHERE id = :2`
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark quiz %s cached: %w", id, err)
	}
	return nil
}

// DeleteQuiz removes a quiz; history rows go with it through the foreign key.
func (a *QuizDatabaseAdapter) DeleteQuiz(ctx context.Context, id string) error {
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, `DELETE FROM wiki_quizzes WHERE id = :1`, id); err != nil {
		return fmt.Errorf("failed to delete quiz %s: %w", id, err)
	}
	return nil
}

func toDomainWikiQuiz(m *models.WikiQuiz) *domain.WikiQuiz {
	if m == nil {
		return nil
	}
	sections := []string(m.Sections)
	if sections == nil {
		sections = []string{}
	}
	topics := []string(m.RelatedTopics)
	if topics == nil {
		topics = []string{}
	}
	questions := []domain.QuestionRecord(m.Quiz)
	if questions == nil {
		questions = []domain.QuestionRecord{}
	}
	return &domain.WikiQuiz{
		ID:            m.ID,
		URL:           m.URL,
		Title:         m.Title,
		Summary:       m.Summary.String,
		KeyEntities:   domain.KeyEntities(m.KeyEntities),
		Sections:      sections,
		Questions:     questions,
		RelatedTopics: topics,
		RawHTML:       m.RawHTML.String,
		IsCached:      m.IsCached != 0,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toModelWikiQuiz(q *domain.WikiQuiz) *models.WikiQuiz {
	if q == nil {
		return nil
	}
	return &models.WikiQuiz{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		Summary:       util.StringToNullString(q.Summary),
		KeyEntities:   models.KeyEntitiesColumn(q.KeyEntities),
		Sections:      models.StringSlice(q.Sections),
		Quiz:          models.QuestionList(q.Questions),
		RelatedTopics: models.StringSlice(q.RelatedTopics),
		RawHTML:       util.StringToNullString(q.RawHTML),
		IsCached:      util.BoolToNumber(q.IsCached),
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
}
