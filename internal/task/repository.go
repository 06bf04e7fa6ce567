package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyloop/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/task/mock_repository.go -package=mock_task

// Repository defines operations for managing review tasks.
type Repository interface {
	BatchCreate(ctx context.Context, tasks []ReviewTask) error
	FindByID(ctx context.Context, id string) (*ReviewTask, error)
	FindDue(ctx context.Context, userID string, now time.Time) ([]ReviewTask, error)
	FindByStudyLog(ctx context.Context, studyLogID string) ([]ReviewTask, error)
	ReplaceFuturePending(ctx context.Context, studyLogID string, now time.Time, tasks []ReviewTask) (int64, error)
	UpdateStatus(ctx context.Context, id string, status Status) (bool, error)
	CountDueByOwner(ctx context.Context, now time.Time) (map[string]int, error)
}

// DBRepository implements Repository using SQL. Times are stored in UTC.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const taskColumns = "id, user_id, study_log_id, due_at, status"

// BatchCreate inserts tasks with a single multi-row INSERT.
func (r *DBRepository) BatchCreate(ctx context.Context, tasks []ReviewTask) error {
	if len(tasks) == 0 {
		return nil
	}
	query, args := buildTaskInsert(tasks)
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("db.ExecContext(insert review_tasks) > %w", err)
	}
	return nil
}

// FindByID returns a task, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id string) (*ReviewTask, error) {
	var t ReviewTask
	err := r.db.GetContext(ctx, &t,
		r.db.Rebind("SELECT "+taskColumns+" FROM review_tasks WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_task) > %w", err)
	}
	return &t, nil
}

// FindDue returns pending tasks of a user whose due time has passed.
func (r *DBRepository) FindDue(ctx context.Context, userID string, now time.Time) ([]ReviewTask, error) {
	var tasks []ReviewTask
	if err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind("SELECT "+taskColumns+" FROM review_tasks WHERE user_id = ? AND status = ? AND due_at <= ? ORDER BY due_at, id"),
		userID, StatusPending, now.UTC()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review_tasks) > %w", err)
	}
	return tasks, nil
}

// FindByStudyLog returns every task of a study log ordered by due time.
func (r *DBRepository) FindByStudyLog(ctx context.Context, studyLogID string) ([]ReviewTask, error) {
	var tasks []ReviewTask
	if err := r.db.SelectContext(ctx, &tasks,
		r.db.Rebind("SELECT "+taskColumns+" FROM review_tasks WHERE study_log_id = ? ORDER BY due_at, id"),
		studyLogID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_tasks by study_log) > %w", err)
	}
	return tasks, nil
}

// ReplaceFuturePending inserts tasks and then deletes the other pending tasks of the study log
// due after now, in one transaction. It returns the number of deleted tasks.
func (r *DBRepository) ReplaceFuturePending(ctx context.Context, studyLogID string, now time.Time, tasks []ReviewTask) (int64, error) {
	var deleted int64
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if len(tasks) > 0 {
			query, args := buildTaskInsert(tasks)
			if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
				return fmt.Errorf("tx.ExecContext(insert review_tasks) > %w", err)
			}
		}

		query := "DELETE FROM review_tasks WHERE study_log_id = ? AND status = ? AND due_at > ?"
		args := []any{studyLogID, StatusPending, now.UTC()}
		if len(tasks) > 0 {
			ids := make([]string, len(tasks))
			for i, t := range tasks {
				ids[i] = t.ID
			}
			var err error
			query, args, err = sqlx.In(query+" AND id NOT IN (?)", studyLogID, StatusPending, now.UTC(), ids)
			if err != nil {
				return fmt.Errorf("sqlx.In(delete review_tasks) > %w", err)
			}
		}
		result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(delete review_tasks) > %w", err)
		}
		deleted, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// UpdateStatus moves a pending task to status. It reports false when the task was no
// longer pending, for example because another device resolved it first.
func (r *DBRepository) UpdateStatus(ctx context.Context, id string, status Status) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		r.db.Rebind("UPDATE review_tasks SET status = ? WHERE id = ? AND status = ?"),
		status, id, StatusPending)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(update review_task status) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

// CountDueByOwner counts pending tasks due by now for each user.
func (r *DBRepository) CountDueByOwner(ctx context.Context, now time.Time) (map[string]int, error) {
	var rows []struct {
		UserID string `db:"user_id"`
		Count  int    `db:"due_count"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		r.db.Rebind("SELECT user_id, COUNT(*) AS due_count FROM review_tasks WHERE status = ? AND due_at <= ? GROUP BY user_id ORDER BY user_id"),
		StatusPending, now.UTC()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(count due review_tasks) > %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func buildTaskInsert(tasks []ReviewTask) (string, []any) {
	placeholder := "(?, ?, ?, ?, ?)"
	values := strings.Repeat(placeholder+", ", len(tasks)-1) + placeholder
	query := fmt.Sprintf("INSERT INTO review_tasks (%s) VALUES %s", taskColumns, values)

	args := make([]any, 0, len(tasks)*5)
	for _, t := range tasks {
		args = append(args, t.ID, t.UserID, t.StudyLogID, t.DueAt.UTC(), t.Status)
	}
	return query, args
}
