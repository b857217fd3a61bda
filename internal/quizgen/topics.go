package quizgen

import (
	"regexp"
	"strings"
)

// Related-topic list bounds.
const (
	MinTopics = 5
	MaxTopics = 8
)

var (
	capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	genericTopics   = []string{"History", "Science", "Technology", "Culture", "Society"}
)

// FallbackTopics picks unique capitalised words from fullText in order of first
// appearance, padding with generic topics when fewer than MinTopics are found.
func FallbackTopics(fullText string) []string {
	topics := make([]string, 0, MaxTopics)
	seen := map[string]bool{}
	for _, w := range capitalizedWord.FindAllString(fullText, -1) {
		if seen[w] {
			continue
		}
		seen[w] = true
		topics = append(topics, w)
		if len(topics) == MaxTopics {
			return topics
		}
	}

	if len(topics) < MinTopics {
		for _, g := range genericTopics {
			if !seen[g] {
				seen[g] = true
				topics = append(topics, g)
			}
		}
	}
	if len(topics) > MaxTopics {
		topics = topics[:MaxTopics]
	}
	return topics
}

// cleanTopics trims primary-generator topics, drops blanks and caps the list.
func cleanTopics(raw []string) []string {
	topics := make([]string, 0, len(raw))
	for _, t := range raw {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
		if len(topics) == MaxTopics {
			break
		}
	}
	return topics
}
