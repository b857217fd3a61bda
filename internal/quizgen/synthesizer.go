package quizgen

import (
	"fmt"
	"strings"
	"unicode"

	"wiki-quiz/internal/domain"
)

const blankMarker = "_____"

// Shuffler reorders n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Synthesizer turns one seed sentence into at most one candidate question.
// A nil result means the sentence is unsuitable and should be skipped.
type Synthesizer interface {
	Synthesize(sentence string, position int) *domain.CandidateQuestion
}

// Synthesizers dispatches seeds round-robin across the three question styles.
type Synthesizers [3]Synthesizer

// NewSynthesizers builds the fill-in-blank, true/false and multiple-choice
// synthesizers sharing one shuffle source.
func NewSynthesizers(shuffler Shuffler) Synthesizers {
	return Synthesizers{
		&FillBlankSynthesizer{shuffler: shuffler},
		&TrueFalseSynthesizer{},
		&MultipleChoiceSynthesizer{shuffler: shuffler},
	}
}

// For returns the synthesizer used for the seed at position.
func (s Synthesizers) For(position int) Synthesizer {
	return s[position%len(s)]
}

func difficultyFor(position int) string {
	return domain.Difficulties[position%len(domain.Difficulties)]
}

func shuffled(shuffler Shuffler, options []string) []string {
	out := append([]string(nil), options...)
	shuffler.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// FillBlankSynthesizer blanks out one word and offers spelling variants of it
// as distractors.
type FillBlankSynthesizer struct {
	shuffler Shuffler
}

func (f *FillBlankSynthesizer) Synthesize(sentence string, position int) *domain.CandidateQuestion {
	words := strings.Fields(sentence)
	if len(words) < 5 {
		return nil
	}

	idx := position % len(words)
	target := words[idx]
	if len([]rune(target)) < 3 {
		return nil
	}

	options := append([]string{target}, distractorsFor(target)...)
	if len(options) != 4 {
		return nil
	}

	blanked := append([]string(nil), words...)
	blanked[idx] = blankMarker

	return domain.NewCandidate(
		"Fill in the blank: "+strings.Join(blanked, " "),
		shuffled(f.shuffler, options),
		target,
		difficultyFor(position),
		fmt.Sprintf("The correct answer is '%s' based on the context.", target),
	)
}

// distractorsFor derives up to three unique variants of word that differ from it.
func distractorsFor(word string) []string {
	runes := []rune(word)

	var trimmed string
	if len(runes) > 1 {
		trimmed = string(runes[:len(runes)-1])
	} else {
		trimmed = word + "s"
	}

	var recased string
	if isLower(word) {
		recased = capitalize(word)
	} else {
		recased = strings.ToLower(word)
	}

	var inflected string
	if strings.HasSuffix(word, "ing") {
		inflected = strings.TrimSuffix(word, "ing")
	} else {
		inflected = word + "ing"
	}

	candidates := []string{trimmed, recased, inflected, "the " + strings.ToLower(word)}

	seen := map[string]bool{word: true}
	out := make([]string, 0, 3)
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
		if len(out) == 3 {
			break
		}
	}
	return out
}

// isLower reports whether s has at least one cased letter and no uppercase ones.
func isLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// True/false options in the fixed presentation order.
var trueFalseOptions = []string{"True", "False", "Cannot be determined", "Partially true"}

// TrueFalseSynthesizer restates the seed, negating it on odd positions.
type TrueFalseSynthesizer struct{}

func (TrueFalseSynthesizer) Synthesize(sentence string, position int) *domain.CandidateQuestion {
	statement := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(sentence), "."))
	if statement == "" {
		return nil
	}

	answer := "True"
	explanation := "This statement is correct based on the article content."
	if position%2 != 0 {
		answer = "False"
		statement = negate(statement)
		explanation = "This statement is incorrect. The actual fact is the opposite."
	}

	return domain.NewCandidate(
		"Is the following statement true? "+statement,
		append([]string(nil), trueFalseOptions...),
		answer,
		difficultyFor(position),
		explanation,
	)
}

// negate inserts "not" after every "is" and "was", including occurrences
// inside longer words such as "this".
func negate(statement string) string {
	statement = strings.ReplaceAll(statement, "is", "is not")
	return strings.ReplaceAll(statement, "was", "was not")
}

const significanceAnswer = "A key concept mentioned in the article"

var significanceDistractors = []string{
	"A term not mentioned in the article",
	"A concept from a different topic",
	"A historical reference not related to the subject",
}

// MultipleChoiceSynthesizer asks about the significance of a term near the
// start of the sentence.
type MultipleChoiceSynthesizer struct {
	shuffler Shuffler
}

func (m *MultipleChoiceSynthesizer) Synthesize(sentence string, position int) *domain.CandidateQuestion {
	words := strings.Fields(sentence)
	if len(words) < 6 {
		return nil
	}

	keyWord := words[min(2+position%3, len(words)-1)]
	if len([]rune(keyWord)) < 3 {
		return nil
	}

	options := append([]string{significanceAnswer}, significanceDistractors...)

	return domain.NewCandidate(
		fmt.Sprintf("According to the article, what is the significance of '%s'?", keyWord),
		shuffled(m.shuffler, options),
		significanceAnswer,
		difficultyFor(position),
		fmt.Sprintf("'%s' is mentioned in the article as part of the main content.", keyWord),
	)
}
