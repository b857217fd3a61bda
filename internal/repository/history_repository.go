package repository

import (
	"context"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"
)

// HistoryDatabaseAdapter implements domain.HistoryRepository on Oracle.
type HistoryDatabaseAdapter struct {
	db DBTX
}

func NewHistoryDatabaseAdapter(db DBTX) domain.HistoryRepository {
	return &HistoryDatabaseAdapter{db: db}
}

// CreateHistory records that userID generated quizID.
func (a *HistoryDatabaseAdapter) CreateHistory(ctx context.Context, userID, quizID string) (*domain.QuizHistory, error) {
	h := &domain.QuizHistory{
		ID:        util.NewULID(),
		UserID:    userID,
		QuizID:    quizID,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO quiz_histories (id, user_id, quiz_id, created_at) VALUES (:1, :2, :3, :4)`
	if _, err := GetExecutor(ctx, a.db).ExecContext(ctx, query, h.ID, h.UserID, h.QuizID, h.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create history for user %s: %w", userID, err)
	}
	return h, nil
}

// GetHistoryByUser returns the user's history newest first, with quiz titles.
func (a *HistoryDatabaseAdapter) GetHistoryByUser(ctx context.Context, userID string, offset, limit int) ([]*domain.QuizHistory, error) {
	query := `SELECT
		h.id "id",
		h.user_id "user_id",
		h.quiz_id "quiz_id",
		h.created_at "created_at",
		q.title "title",
		q.url "url"
	FROM quiz_histories h
	LEFT JOIN wiki_quizzes q ON q.id = h.quiz_id
	WHERE h.user_id = :1
	ORDER BY h.created_at DESC, h.id DESC
	OFFSET :2 ROWS FETCH NEXT :3 ROWS ONLY`

	var rows []models.QuizHistory
	if err := GetExecutor(ctx, a.db).SelectContext(ctx, &rows, query, userID, offset, limit); err != nil {
		return nil, fmt.Errorf("failed to get history for user %s: %w", userID, err)
	}

	out := make([]*domain.QuizHistory, 0, len(rows))
	for _, r := range rows {
		out = append(out, &domain.QuizHistory{
			ID:        r.ID,
			UserID:    r.UserID,
			QuizID:    r.QuizID,
			CreatedAt: r.CreatedAt,
			Title:     r.Title.String,
			URL:       r.URL.String,
		})
	}
	return out, nil
}
