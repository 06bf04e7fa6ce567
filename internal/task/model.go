// Package task provides review task, quiz attempt and theme resolution models and repositories.
package task

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// ReviewTask is one scheduled check-in for a study log.
type ReviewTask struct {
	ID         string    `db:"id" yaml:"id"`
	UserID     string    `db:"user_id" yaml:"user_id"`
	StudyLogID string    `db:"study_log_id" yaml:"study_log_id"`
	DueAt      time.Time `db:"due_at" yaml:"due_at"`
	Status     Status    `db:"status" yaml:"status"`
}

func (t ReviewTask) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusSkipped
}

type Outcome string

const (
	OutcomeResolved Outcome = "resolved"
	OutcomeSkipped  Outcome = "skipped"
)

// ThemeResolution records that one theme of a task no longer needs review.
type ThemeResolution struct {
	TaskID     string  `db:"review_task_id"`
	ThemeIndex int     `db:"theme_index"`
	Outcome    Outcome `db:"outcome"`
}

// QuizAttempt is an append-only record of one answered question.
type QuizAttempt struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	ReviewTaskID  string    `db:"review_task_id"`
	Question      string    `db:"question"`
	Choices       Choices   `db:"choices"`
	CorrectIndex  int       `db:"correct_index"`
	SelectedIndex int       `db:"selected_index"`
	IsCorrect     bool      `db:"is_correct"`
	AttemptedAt   time.Time `db:"attempted_at"`
}

// Choices is stored as a JSON array.
type Choices []string

func (c Choices) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(c))
	if err != nil {
		return nil, fmt.Errorf("json.Marshal(choices) > %w", err)
	}
	return string(b), nil
}

func (c *Choices) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for choices: %T", src)
	}

	var decoded []string
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("json.Unmarshal(choices) > %w", err)
	}
	*c = decoded
	return nil
}
