package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=attempt_repository.go -destination=../mocks/task/mock_attempt_repository.go -package=mock_task

// AttemptRepository stores quiz attempts. Attempts are never updated.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *QuizAttempt) error
	FindByTask(ctx context.Context, taskID string) ([]QuizAttempt, error)
}

type DBAttemptRepository struct {
	db *sqlx.DB
}

func NewDBAttemptRepository(db *sqlx.DB) *DBAttemptRepository {
	return &DBAttemptRepository{db: db}
}

// Create inserts an attempt, assigning an ID and attempt time when they are missing.
func (r *DBAttemptRepository) Create(ctx context.Context, attempt *QuizAttempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}
	if attempt.AttemptedAt.IsZero() {
		attempt.AttemptedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(`INSERT INTO quiz_attempts (id, user_id, review_task_id, question, choices, correct_index, selected_index, is_correct, attempted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		attempt.ID, attempt.UserID, attempt.ReviewTaskID, attempt.Question, attempt.Choices,
		attempt.CorrectIndex, attempt.SelectedIndex, attempt.IsCorrect, attempt.AttemptedAt.UTC())
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert quiz_attempt) > %w", err)
	}
	return nil
}

func (r *DBAttemptRepository) FindByTask(ctx context.Context, taskID string) ([]QuizAttempt, error) {
	var attempts []QuizAttempt
	if err := r.db.SelectContext(ctx, &attempts,
		r.db.Rebind(`SELECT id, user_id, review_task_id, question, choices, correct_index, selected_index, is_correct, attempted_at
		FROM quiz_attempts WHERE review_task_id = ? ORDER BY attempted_at, id`),
		taskID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(quiz_attempts by task) > %w", err)
	}
	return attempts, nil
}
