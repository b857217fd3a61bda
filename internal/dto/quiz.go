package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest represents a request to build a quiz from an article.
// @Description Request body for quiz generation
type GenerateQuizRequest struct {
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuizQuestion represents one multiple-choice question.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// KeyEntities groups notable names found in the article.
type KeyEntities struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// WikiQuizResponse represents a generated quiz in the API response
// @Description Quiz generated from a Wikipedia article
type WikiQuizResponse struct {
	ID            string         `json:"id"`
	URL           string         `json:"url"`
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyEntities   KeyEntities    `json:"key_entities"`
	Sections      []string       `json:"sections"`
	Quiz          []QuizQuestion `json:"quiz"`
	RelatedTopics []string       `json:"related_topics"`
	CreatedAt     time.Time      `json:"created_at"`
	IsCached      bool           `json:"is_cached"`
}

// WikiQuizListItem is the short form used when listing quizzes.
type WikiQuizListItem struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	IsCached  bool      `json:"is_cached"`
}

// QuizHistoryItem is one entry of a user's generation history.
type QuizHistoryItem struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// Pagination holds the skip/limit query parameters.
type Pagination struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// HealthResponse reports service liveness and the active generator.
type HealthResponse struct {
	Status    string `json:"status"`
	Generator string `json:"generator"`
	Database  string `json:"database,omitempty"`
	Cache     string `json:"cache,omitempty"`
}

// MessageResponse represents a generic message response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ToWikiQuizResponse converts a domain quiz into its API shape.
func ToWikiQuizResponse(q *domain.WikiQuiz) *WikiQuizResponse {
	questions := make([]QuizQuestion, 0, len(q.Questions))
	for _, r := range q.Questions {
		questions = append(questions, QuizQuestion(r))
	}
	return &WikiQuizResponse{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		Summary:       q.Summary,
		KeyEntities:   KeyEntities(q.KeyEntities),
		Sections:      nonNil(q.Sections),
		Quiz:          questions,
		RelatedTopics: nonNil(q.RelatedTopics),
		CreatedAt:     q.CreatedAt,
		IsCached:      q.IsCached,
	}
}

// ToWikiQuizListItem converts a domain quiz into a list entry.
func ToWikiQuizListItem(q *domain.WikiQuiz) WikiQuizListItem {
	return WikiQuizListItem{
		ID:        q.ID,
		URL:       q.URL,
		Title:     q.Title,
		CreatedAt: q.CreatedAt,
		IsCached:  q.IsCached,
	}
}

// ToQuizHistoryItem converts a domain history entry.
func ToQuizHistoryItem(h *domain.QuizHistory) QuizHistoryItem {
	return QuizHistoryItem{
		ID:        h.ID,
		QuizID:    h.QuizID,
		CreatedAt: h.CreatedAt,
		Title:     h.Title,
		URL:       h.URL,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
