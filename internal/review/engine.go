// Package review runs review sessions: it loads the due review tasks of a learner, splits
// their notes into themes and resolves the tasks from flashcard ratings and quiz answers.
package review

import (
	"context"
	"errors"

	"github.com/at-ishikawa/studyloop/internal/inference"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
	"github.com/at-ishikawa/studyloop/internal/task"
)

//go:generate mockgen -source=engine.go -destination=../mocks/review/mock_engine.go -package=mock_review

var (
	ErrTaskNotFound     = errors.New("review task not found")
	ErrTaskResolved     = errors.New("review task already resolved")
	ErrThemeNotFound    = errors.New("theme not found")
	ErrWrongMode        = errors.New("theme is not in this review mode")
	ErrQuizGeneration   = errors.New("quiz generation failed")
	ErrQuizNotGenerated = errors.New("quiz has not been generated")
	ErrQuestionNotFound = errors.New("question not found")
	ErrAlreadyAnswered  = errors.New("question already answered")
	ErrQuizIncomplete   = errors.New("quiz has unanswered questions")
	ErrInvalidChoice    = errors.New("choice out of range")
	ErrSessionClosed    = errors.New("review session closed")
)

// Rescheduler restarts the review schedule of a study log after a failed recall.
type Rescheduler interface {
	RescheduleFromNow(ctx context.Context, recordID, ownerID string) ([]task.ReviewTask, error)
}

// RecordFinder loads the study logs behind review tasks.
type RecordFinder interface {
	FindByIDs(ctx context.Context, ids []string) ([]studylog.Record, error)
	FindBooks(ctx context.Context, ids []string) ([]studylog.ReferenceBook, error)
}

type Engine struct {
	records     RecordFinder
	tasks       task.Repository
	attempts    task.AttemptRepository
	resolutions task.ResolutionRepository
	rescheduler Rescheduler
	quiz        inference.QuizGenerator
	clock       *studyday.Clock
}

func NewEngine(
	records RecordFinder,
	tasks task.Repository,
	attempts task.AttemptRepository,
	resolutions task.ResolutionRepository,
	rescheduler Rescheduler,
	quiz inference.QuizGenerator,
	clock *studyday.Clock,
) *Engine {
	return &Engine{
		records:     records,
		tasks:       tasks,
		attempts:    attempts,
		resolutions: resolutions,
		rescheduler: rescheduler,
		quiz:        quiz,
		clock:       clock,
	}
}

// NewSession starts an empty session for one learner. Call Load to fill it.
func (e *Engine) NewSession(ownerID string) *Session {
	return &Session{
		engine:  e,
		ownerID: ownerID,
		items:   map[string]*item{},
	}
}
