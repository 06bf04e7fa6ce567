package task

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=resolution_repository.go -destination=../mocks/task/mock_resolution_repository.go -package=mock_task

// ResolutionRepository persists which themes of a task were resolved or skipped,
// so that the state survives reloads and other devices.
type ResolutionRepository interface {
	FindByTasks(ctx context.Context, taskIDs []string) ([]ThemeResolution, error)
	Create(ctx context.Context, resolution ThemeResolution) error
}

type DBResolutionRepository struct {
	db *sqlx.DB
}

func NewDBResolutionRepository(db *sqlx.DB) *DBResolutionRepository {
	return &DBResolutionRepository{db: db}
}

func (r *DBResolutionRepository) FindByTasks(ctx context.Context, taskIDs []string) ([]ThemeResolution, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT review_task_id, theme_index, outcome FROM review_task_themes WHERE review_task_id IN (?) ORDER BY review_task_id, theme_index",
		taskIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(review_task_themes) > %w", err)
	}
	var resolutions []ThemeResolution
	if err := r.db.SelectContext(ctx, &resolutions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_task_themes) > %w", err)
	}
	return resolutions, nil
}

// Create records a resolution. Recording the same theme twice keeps the first outcome.
func (r *DBResolutionRepository) Create(ctx context.Context, resolution ThemeResolution) error {
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind(insertIgnore(r.db.DriverName())),
		resolution.TaskID, resolution.ThemeIndex, resolution.Outcome)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_task_theme) > %w", err)
	}
	return nil
}

func insertIgnore(driverName string) string {
	const columns = "review_task_themes (review_task_id, theme_index, outcome) VALUES (?, ?, ?)"
	switch driverName {
	case "mysql":
		return "INSERT IGNORE INTO " + columns
	case "sqlite3":
		return "INSERT OR IGNORE INTO " + columns
	default:
		return "INSERT INTO " + columns + " ON CONFLICT DO NOTHING"
	}
}
