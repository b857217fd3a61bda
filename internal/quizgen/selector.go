package quizgen

import (
	"regexp"
	"strings"

	"wiki-quiz/internal/textnorm"
)

// Seed sentence bounds. Lengths are exclusive.
const (
	MinSentenceLength = 30
	MaxSentenceLength = 150
	MaxSentences      = 20
)

var sentenceTerminators = regexp.MustCompile(`[.!?]+`)

// SelectSentences splits fullText into sentences and keeps at most
// MaxSentences of those usable as question seeds, in text order.
func SelectSentences(fullText string) []string {
	sentences := []string{}
	for _, segment := range sentenceTerminators.Split(fullText, -1) {
		s := strings.TrimSpace(segment)
		n := textnorm.Length(s)
		if n <= MinSentenceLength || n >= MaxSentenceLength || strings.HasPrefix(s, "[") {
			continue
		}
		sentences = append(sentences, s)
		if len(sentences) == MaxSentences {
			break
		}
	}
	return sentences
}
