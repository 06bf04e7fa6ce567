package studylog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyloop/internal/database"
)

//go:generate mockgen -source=repository.go -destination=../mocks/studylog/mock_repository.go -package=mock_studylog

// Repository defines operations for managing study logs and reference books.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	Update(ctx context.Context, record *Record) error
	FindByID(ctx context.Context, id string) (*Record, error)
	FindByIDs(ctx context.Context, ids []string) ([]Record, error)
	FindByUser(ctx context.Context, userID string, from, to time.Time) ([]Record, error)
	Merge(ctx context.Context, keep *Record, mergedIDs []string) (int64, error)
	ResetThemeOutcomes(ctx context.Context, userID, recordID string) (int64, error)
	CreateBook(ctx context.Context, book *ReferenceBook) error
	FindBooks(ctx context.Context, ids []string) ([]ReferenceBook, error)
}

// DBRepository implements Repository using SQL. Times are stored in UTC.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

const recordColumns = "id, user_id, subject, reference_book_id, study_minutes, started_at, note, created_at, updated_at"

// Create inserts a record, assigning an ID when it has none.
func (r *DBRepository) Create(ctx context.Context, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO study_logs ("+recordColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"),
		record.ID, record.UserID, record.Subject, record.ReferenceBookID, record.StudyMinutes,
		record.StartedAt.UTC(), record.Note, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert study_log) > %w", err)
	}
	return nil
}

// Update overwrites the editable fields of a record.
func (r *DBRepository) Update(ctx context.Context, record *Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	record.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, r.db.Rebind(updateRecordQuery), updateRecordArgs(record)...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update study_log) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, record.ID)
	}
	return nil
}

const updateRecordQuery = "UPDATE study_logs SET subject = ?, reference_book_id = ?, study_minutes = ?, started_at = ?, note = ?, updated_at = ? WHERE id = ?"

func updateRecordArgs(record *Record) []any {
	return []any{
		record.Subject, record.ReferenceBookID, record.StudyMinutes,
		record.StartedAt.UTC(), record.Note, record.UpdatedAt, record.ID,
	}
}

// FindByID returns a record, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id string) (*Record, error) {
	var record Record
	err := r.db.GetContext(ctx, &record,
		r.db.Rebind("SELECT "+recordColumns+" FROM study_logs WHERE id = ?"), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(study_log) > %w", err)
	}
	return &record, nil
}

func (r *DBRepository) FindByIDs(ctx context.Context, ids []string) ([]Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In("SELECT "+recordColumns+" FROM study_logs WHERE id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(study_logs) > %w", err)
	}
	var records []Record
	if err := r.db.SelectContext(ctx, &records, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(study_logs by ids) > %w", err)
	}
	return records, nil
}

// FindByUser returns the records of a user started in [from, to).
func (r *DBRepository) FindByUser(ctx context.Context, userID string, from, to time.Time) ([]Record, error) {
	var records []Record
	if err := r.db.SelectContext(ctx, &records,
		r.db.Rebind("SELECT "+recordColumns+" FROM study_logs WHERE user_id = ? AND started_at >= ? AND started_at < ? ORDER BY started_at, id"),
		userID, from.UTC(), to.UTC()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(study_logs by user) > %w", err)
	}
	return records, nil
}

// Merge updates keep and deletes the merged records in one transaction.
// Pending review tasks of the merged records move to keep with their theme outcomes cleared,
// since the theme indices refer to the old note. It returns the number of tasks moved.
func (r *DBRepository) Merge(ctx context.Context, keep *Record, mergedIDs []string) (int64, error) {
	if err := keep.Validate(); err != nil {
		return 0, err
	}
	keep.UpdatedAt = time.Now().UTC()

	var moved int64
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, tx.Rebind(updateRecordQuery), updateRecordArgs(keep)...); err != nil {
			return fmt.Errorf("tx.ExecContext(update study_log) > %w", err)
		}
		if len(mergedIDs) == 0 {
			return nil
		}
		if _, err := deletePendingThemes(ctx, tx, keep.UserID, mergedIDs); err != nil {
			return err
		}

		query, args, err := sqlx.In("UPDATE review_tasks SET study_log_id = ? WHERE user_id = ? AND study_log_id IN (?) AND status = 'pending'",
			keep.ID, keep.UserID, mergedIDs)
		if err != nil {
			return fmt.Errorf("sqlx.In(move review_tasks) > %w", err)
		}
		result, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return fmt.Errorf("tx.ExecContext(move review_tasks) > %w", err)
		}
		if moved, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("result.RowsAffected() > %w", err)
		}

		query, args, err = sqlx.In("DELETE FROM study_logs WHERE user_id = ? AND id IN (?)", keep.UserID, mergedIDs)
		if err != nil {
			return fmt.Errorf("sqlx.In(delete study_logs) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("tx.ExecContext(delete study_logs) > %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// ResetThemeOutcomes clears the theme outcomes of the pending review tasks of a record.
func (r *DBRepository) ResetThemeOutcomes(ctx context.Context, userID, recordID string) (int64, error) {
	return deletePendingThemes(ctx, r.db, userID, []string{recordID})
}

// deletePendingThemes removes the theme outcomes of the pending tasks of the records.
func deletePendingThemes(ctx context.Context, db sqlx.ExtContext, userID string, recordIDs []string) (int64, error) {
	query, args, err := sqlx.In(
		"DELETE FROM review_task_themes WHERE review_task_id IN (SELECT id FROM review_tasks WHERE user_id = ? AND study_log_id IN (?) AND status = 'pending')",
		userID, recordIDs)
	if err != nil {
		return 0, fmt.Errorf("sqlx.In(delete review_task_themes) > %w", err)
	}
	result, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, fmt.Errorf("db.ExecContext(delete review_task_themes) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected, nil
}

func (r *DBRepository) CreateBook(ctx context.Context, book *ReferenceBook) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	book.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		r.db.Rebind("INSERT INTO reference_books (id, user_id, title, created_at) VALUES (?, ?, ?, ?)"),
		book.ID, book.UserID, book.Title, book.CreatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert reference_book) > %w", err)
	}
	return nil
}

// FindBooks returns the books with the given ids that are not deleted.
func (r *DBRepository) FindBooks(ctx context.Context, ids []string) ([]ReferenceBook, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT id, user_id, title, created_at, deleted_at FROM reference_books WHERE id IN (?) AND deleted_at IS NULL ORDER BY id", ids)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(reference_books) > %w", err)
	}
	var books []ReferenceBook
	if err := r.db.SelectContext(ctx, &books, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(reference_books) > %w", err)
	}
	return books, nil
}
