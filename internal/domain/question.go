package domain

import "strings"

// Difficulty levels accepted for questions.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties is the rotation used by the deterministic synthesizers.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// IsValidDifficulty reports whether d (case-insensitively) is a known difficulty.
func IsValidDifficulty(d string) bool {
	switch strings.ToLower(d) {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// CandidateQuestion is a question as produced by a generator, before validation.
// Nil pointers and a nil Options slice mean the field was absent.
type CandidateQuestion struct {
	Question    *string  `json:"question"`
	Options     []string `json:"options"`
	Answer      *string  `json:"answer"`
	Difficulty  *string  `json:"difficulty"`
	Explanation *string  `json:"explanation"`
}

// NewCandidate builds a candidate with every field present.
func NewCandidate(question string, options []string, answer, difficulty, explanation string) *CandidateQuestion {
	return &CandidateQuestion{
		Question:    &question,
		Options:     options,
		Answer:      &answer,
		Difficulty:  &difficulty,
		Explanation: &explanation,
	}
}

// QuestionRecord is a validated multiple-choice question.
type QuestionRecord struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}
