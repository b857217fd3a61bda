package models

import (
	"database/sql"
	"time"
)

// WikiQuiz maps the wiki_quizzes table.
type WikiQuiz struct {
	ID            string            `db:"id"`
	URL           string            `db:"url"`
	Title         string            `db:"title"`
	Summary       sql.NullString    `db:"summary"`
	KeyEntities   KeyEntitiesColumn `db:"key_entities"`
	Sections      StringSlice       `db:"sections"`
	Quiz          QuestionList      `db:"quiz"`
	RelatedTopics StringSlice       `db:"related_topics"`
	RawHTML       sql.NullString    `db:"raw_html"`
	IsCached      int               `db:"is_cached"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     time.Time         `db:"updated_at"`
}

// QuizHistory maps quiz_histories joined with the quiz's title and URL.
type QuizHistory struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	QuizID    string         `db:"quiz_id"`
	CreatedAt time.Time      `db:"created_at"`
	Title     sql.NullString `db:"title"`
	URL       sql.NullString `db:"url"`
}
