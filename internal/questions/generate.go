package questions

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/quizline/internal/llm"
	"github.com/abhisek/quizline/internal/quiz"
)

const (
	DefaultCount = 5
	MaxCount     = 30
)

const generateSystemPrompt = `You write multiple-choice quiz questions.
Each question has between 2 and 5 short options, exactly one of them correct.
correctAnswer must repeat the text of the correct option exactly.
Do not number or letter the options.`

// LLMSource asks a provider for a fresh question set on a topic.
type LLMSource struct {
	Provider llm.Provider
	Topic    string
	Count    int
	// Timeout bounds the whole generation, retries included. Zero means no
	// extra bound.
	Timeout time.Duration
}

func (s *LLMSource) Name() string { return "llm:" + s.Topic }

func (s *LLMSource) Load(ctx context.Context) ([]quiz.Question, error) {
	count := s.Count
	if count <= 0 {
		count = DefaultCount
	}
	if count > MaxCount {
		return nil, &quiz.LoadError{Source: s.Name(), Err: fmt.Errorf("at most %d questions per set, asked for %d", MaxCount, count)}
	}
	if s.Topic == "" {
		return nil, &quiz.LoadError{Source: s.Name(), Err: fmt.Errorf("a topic is required")}
	}

	req := llm.Prompt(generateSystemPrompt,
		fmt.Sprintf("Write %d questions about %s.", count, s.Topic),
		QuestionSetSchema)
	req.MaxTokens = 256 * count
	req.Temperature = 0.7

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	resp, err := s.Provider.Generate(llm.WithPurpose(ctx, "question-set"), req)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.Name(), Err: err}
	}

	set, err := Decode(resp.Content, FormatJSON)
	if err != nil {
		return nil, &quiz.LoadError{Source: s.Name(), Err: err}
	}
	return set, nil
}
