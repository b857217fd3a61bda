package domain

import "time"

// Quiz size bounds.
const (
	MinQuizQuestions = 5
	MaxQuizQuestions = 8
)

// WikiQuiz is a generated quiz together with the article it was built from.
type WikiQuiz struct {
	ID            string
	URL           string
	Title         string
	Summary       string
	KeyEntities   KeyEntities
	Sections      []string
	Questions     []QuestionRecord
	RelatedTopics []string
	RawHTML       string
	IsCached      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewWikiQuiz combines an extracted document with its questions and topics.
func NewWikiQuiz(doc *Document, questions []QuestionRecord, relatedTopics []string) *WikiQuiz {
	now := time.Now()
	return &WikiQuiz{
		URL:           doc.URL,
		Title:         doc.Title,
		Summary:       doc.Summary,
		KeyEntities:   doc.KeyEntities,
		Sections:      doc.Sections,
		Questions:     questions,
		RelatedTopics: relatedTopics,
		RawHTML:       doc.RawMarkup,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// QuizHistory links a user to a quiz they generated.
type QuizHistory struct {
	ID        string
	UserID    string
	QuizID    string
	CreatedAt time.Time
	Title     string
	URL       string
}
