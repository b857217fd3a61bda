package quizgen

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/textnorm"
)

// RequiredOptions is the exact number of options a question must offer.
const RequiredOptions = 4

// Validate reports whether a candidate can become a QuestionRecord. It never
// repairs a candidate; anything malformed is rejected.
func Validate(c domain.CandidateQuestion) bool {
	if c.Question == nil || c.Options == nil || c.Answer == nil || c.Difficulty == nil || c.Explanation == nil {
		return false
	}
	if len(c.Options) != RequiredOptions {
		return false
	}

	seen := make(map[string]bool, len(c.Options))
	for _, opt := range c.Options {
		key := textnorm.CleanEntities(opt)
		if seen[key] {
			return false
		}
		seen[key] = true
	}

	if !containsExact(c.Options, *c.Answer) {
		return false
	}
	if !domain.IsValidDifficulty(*c.Difficulty) {
		return false
	}
	if strings.TrimSpace(*c.Question) == "" || strings.TrimSpace(*c.Explanation) == "" {
		return false
	}
	return true
}

// Clean converts a validated candidate into a QuestionRecord with entity
// literals decoded, whitespace collapsed and difficulty lower-cased.
func Clean(c domain.CandidateQuestion) domain.QuestionRecord {
	options := make([]string, len(c.Options))
	for i, opt := range c.Options {
		options[i] = textnorm.CleanEntities(opt)
	}
	return domain.QuestionRecord{
		Question:    textnorm.CleanEntities(deref(c.Question)),
		Options:     options,
		Answer:      textnorm.CleanEntities(deref(c.Answer)),
		Difficulty:  strings.ToLower(deref(c.Difficulty)),
		Explanation: textnorm.CleanEntities(deref(c.Explanation)),
	}
}

// Accept validates and cleans candidates, preserving order and dropping
// rejects. At most limit records are returned when limit > 0.
func Accept(candidates []domain.CandidateQuestion, limit int) []domain.QuestionRecord {
	records := make([]domain.QuestionRecord, 0, len(candidates))
	for _, c := range candidates {
		if !Validate(c) {
			continue
		}
		records = append(records, Clean(c))
		if limit > 0 && len(records) == limit {
			break
		}
	}
	return records
}

func containsExact(options []string, answer string) bool {
	for _, opt := range options {
		if opt == answer {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
