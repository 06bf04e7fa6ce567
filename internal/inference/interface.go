package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// QuizGenerator creates multiple choice questions about a topic.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req GenerateQuizRequest) ([]QuizQuestion, error)
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

const DefaultQuestionCount = 3

var ErrInvalidQuestion = errors.New("invalid quiz question")

type GenerateQuizRequest struct {
	Topic      string     `json:"topic"`
	Count      int        `json:"count"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// QuizQuestion is one multiple choice question. CorrectIndex points into Choices.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}

func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: empty question", ErrInvalidQuestion)
	}
	if len(q.Choices) < 2 {
		return fmt.Errorf("%w: %q has %d choices", ErrInvalidQuestion, q.Question, len(q.Choices))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Choices) {
		return fmt.Errorf("%w: %q has correct index %d out of %d choices", ErrInvalidQuestion, q.Question, q.CorrectIndex, len(q.Choices))
	}
	return nil
}
