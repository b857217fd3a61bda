package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
)

type fakeCaller struct {
	response string
	err      error
	prompts  []string
	block    bool
}

func (f *fakeCaller) Call(ctx context.Context, prompt string, _ ...llms.CallOption) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.response, f.err
}

const twoQuestions = `[
  {"question": "Q1?", "options": ["a","b","c","d"], "answer": "a", "difficulty": "easy", "explanation": "E1"},
  {"question": "Q2?", "options": ["a","b","c"], "answer": "b", "difficulty": "hard", "explanation": "E2"}
]`

func TestGenerateQuestions(t *testing.T) {
	t.Run("plain JSON", func(t *testing.T) {
		caller := &fakeCaller{response: twoQuestions}
		g := NewLangChainGenerator(caller, time.Second)

		got, err := g.GenerateQuestions(context.Background(), "Alan Turing", "Turing was a mathematician.")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Q1?", *got[0].Question)
		assert.Len(t, got[1].Options, 3)

		require.Len(t, caller.prompts, 1)
		assert.Contains(t, caller.prompts[0], "Article: Alan Turing")
		assert.Contains(t, caller.prompts[0], "Content: Turing was a mathematician.")
	})

	t.Run("missing fields stay nil", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{response: `[{"question": "Q?", "options": ["a","b","c","d"]}]`}, time.Second)
		got, err := g.GenerateQuestions(context.Background(), "T", "C")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].Answer)
		assert.Nil(t, got[0].Difficulty)
	})

	t.Run("markdown fences and think block", func(t *testing.T) {
		response := "<think>planning the quiz</think>\nHere you go:\n```json\n" + twoQuestions + "\n```\nEnjoy!"
		g := NewLangChainGenerator(&fakeCaller{response: response}, time.Second)
		got, err := g.GenerateQuestions(context.Background(), "T", "C")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("single object", func(t *testing.T) {
		response := `Sure! {"question": "Only?", "options": ["a","b","c","d"], "answer": "c", "difficulty": "medium", "explanation": "x"}`
		g := NewLangChainGenerator(&fakeCaller{response: response}, time.Second)
		got, err := g.GenerateQuestions(context.Background(), "T", "C")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "c", *got[0].Answer)
	})

	t.Run("unparseable response", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{response: "I cannot help with that."}, time.Second)
		_, err := g.GenerateQuestions(context.Background(), "T", "C")
		assert.True(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
		assert.ErrorIs(t, err, errNoJSON)
	})

	t.Run("empty response", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{response: "  "}, time.Second)
		_, err := g.GenerateQuestions(context.Background(), "T", "C")
		assert.True(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
		assert.ErrorIs(t, err, errEmptyResponse)
	})

	t.Run("quota error", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{err: errors.New("googleapi: Error 429: Resource has been exhausted (e.g. check quota)")}, time.Second)
		_, err := g.GenerateQuestions(context.Background(), "T", "C")
		require.Error(t, err)
		assert.True(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
	})

	t.Run("call timeout", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{block: true}, 10*time.Millisecond)
		_, err := g.GenerateQuestions(context.Background(), "T", "C")
		assert.True(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("other errors are not unavailability", func(t *testing.T) {
		g := NewLangChainGenerator(&fakeCaller{err: errors.New("connection refused")}, time.Second)
		_, err := g.GenerateQuestions(context.Background(), "T", "C")
		require.Error(t, err)
		assert.False(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
	})
}

func TestGenerateTopics(t *testing.T) {
	caller := &fakeCaller{response: "```\n[\"Enigma machine\", \"Bletchley Park\", \"Computability\"]\n```"}
	g := NewLangChainGenerator(caller, time.Second)

	got, err := g.GenerateTopics(context.Background(), "Alan Turing", "content")
	require.NoError(t, err)
	assert.Equal(t, []string{"Enigma machine", "Bletchley Park", "Computability"}, got)
	assert.Contains(t, caller.prompts[0], "Article Title: Alan Turing")

	_, err = NewLangChainGenerator(&fakeCaller{response: `{"topics": 3}`}, time.Second).
		GenerateTopics(context.Background(), "T", "C")
	assert.True(t, domain.IsCode(err, domain.CodeGeneratorUnavailable))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, domain.GeneratorFailureTimeout, classify(context.DeadlineExceeded))
	assert.Equal(t, domain.GeneratorFailureTimeout, classify(errors.New("request timeout after 30s")))
	assert.Equal(t, domain.GeneratorFailureQuota, classify(errors.New("status 429")))
	assert.Equal(t, domain.GeneratorFailureQuota, classify(errors.New("rate limit exceeded")))
	assert.Equal(t, domain.GeneratorFailureQuota, classify(errors.New("RESOURCE EXHAUSTED")))
	assert.Equal(t, "", classify(errors.New("bad gateway")))
}

func TestNewFromConfig(t *testing.T) {
	g, err := NewFromConfig(config.GeneratorConfig{Provider: "none"})
	assert.NoError(t, err)
	assert.Nil(t, g)

	_, err = NewFromConfig(config.GeneratorConfig{Provider: "openai"})
	assert.Error(t, err)

	_, err = NewFromConfig(config.GeneratorConfig{Provider: "gemini"})
	assert.Error(t, err)

	g, err = NewFromConfig(config.GeneratorConfig{Provider: "ollama", ServerURL: "http://localhost:11434", Model: "qwen3:0.6b"})
	require.NoError(t, err)
	assert.NotNil(t, g)
}
