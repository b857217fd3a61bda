package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"wiki-quiz/internal/domain"
)

var (
	errEmptyResponse = errors.New("response is empty")
	errNoJSON        = errors.New("could not extract JSON from response")

	fencePattern = regexp.MustCompile("```(?:json)?\\s*\\n?")
)

// stripThink removes a <think>...</think> block emitted by reasoning models.
func stripThink(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return s[:start] + s[end+len("</think>"):]
}

// jsonCandidates lists the substrings of a model response worth trying as
// JSON, most specific first.
func jsonCandidates(response string) []string {
	cleaned := strings.TrimSpace(stripThink(response))
	unfenced := strings.TrimSpace(fencePattern.ReplaceAllString(cleaned, ""))

	candidates := []string{cleaned, unfenced}
	if start, end := strings.Index(unfenced, "["), strings.LastIndex(unfenced, "]"); start != -1 && end > start {
		candidates = append(candidates, unfenced[start:end+1])
	}
	if start, end := strings.Index(unfenced, "{"), strings.LastIndex(unfenced, "}"); start != -1 && end > start {
		candidates = append(candidates, unfenced[start:end+1])
	}
	return candidates
}

// decodeFirst unmarshals the first candidate that decodes into v.
func decodeFirst(response string, v func([]byte) error) error {
	if strings.TrimSpace(response) == "" {
		return errEmptyResponse
	}
	for _, c := range jsonCandidates(response) {
		if err := v([]byte(c)); err == nil {
			return nil
		}
	}
	return errNoJSON
}

// parseQuestions accepts either a JSON array of questions or a single question object.
func parseQuestions(response string) ([]domain.CandidateQuestion, error) {
	var out []domain.CandidateQuestion
	err := decodeFirst(response, func(b []byte) error {
		var list []domain.CandidateQuestion
		if err := json.Unmarshal(b, &list); err == nil {
			out = list
			return nil
		}
		var single domain.CandidateQuestion
		if err := json.Unmarshal(b, &single); err != nil {
			return err
		}
		if single.Question == nil {
			return fmt.Errorf("object is not a question")
		}
		out = []domain.CandidateQuestion{single}
		return nil
	})
	return out, err
}

func parseTopics(response string) ([]string, error) {
	var out []string
	err := decodeFirst(response, func(b []byte) error {
		return json.Unmarshal(b, &out)
	})
	return out, err
}
