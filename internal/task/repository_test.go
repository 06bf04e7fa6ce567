package task

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*DBRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewDBRepository(sqlx.NewDb(db, "mysql")), mock
}

func TestDBRepository_BatchCreate(t *testing.T) {
	due1 := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)
	due2 := time.Date(2024, 1, 4, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		tasks     []ReviewTask
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "creates tasks with a multi-row insert",
			tasks: []ReviewTask{
				{ID: "t1", UserID: "u1", StudyLogID: "log1", DueAt: due1, Status: StatusPending},
				{ID: "t2", UserID: "u1", StudyLogID: "log1", DueAt: due2, Status: StatusPending},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO review_tasks \\(id, user_id, study_log_id, due_at, status\\) VALUES \\(\\?, \\?, \\?, \\?, \\?\\), \\(\\?, \\?, \\?, \\?, \\?\\)").
					WithArgs(
						"t1", "u1", "log1", due1, "pending",
						"t2", "u1", "log1", due2, "pending",
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
			},
		},
		{
			name:      "empty slice returns nil",
			tasks:     nil,
			setupMock: func(mock sqlmock.Sqlmock) {},
		},
		{
			name: "db error propagates",
			tasks: []ReviewTask{
				{ID: "t1", UserID: "u1", StudyLogID: "log1", DueAt: due1, Status: StatusPending},
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO review_tasks").WillReturnError(fmt.Errorf("duplicate entry"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			err := repo.BatchCreate(context.Background(), tt.tasks)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindByID(t *testing.T) {
	due := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *ReviewTask
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "user_id", "study_log_id", "due_at", "status"}).
					AddRow("t1", "u1", "log1", due, "completed")
				mock.ExpectQuery("SELECT id, user_id, study_log_id, due_at, status FROM review_tasks WHERE id = \\?").
					WithArgs("t1").
					WillReturnRows(rows)
			},
			want: &ReviewTask{ID: "t1", UserID: "u1", StudyLogID: "log1", DueAt: due, Status: StatusCompleted},
		},
		{
			name: "not found returns nil",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM review_tasks WHERE id").
					WithArgs("t1").
					WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "study_log_id", "due_at", "status"}))
			},
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("FROM review_tasks WHERE id").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.FindByID(context.Background(), "t1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_FindDue(t *testing.T) {
	now := time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC)

	repo, mock := newMockRepository(t)
	rows := sqlmock.NewRows([]string{"id", "user_id", "study_log_id", "due_at", "status"}).
		AddRow("t1", "u1", "log1", due, "pending").
		AddRow("t2", "u1", "log2", due, "pending")
	mock.ExpectQuery("SELECT .* FROM review_tasks WHERE user_id = \\? AND status = \\? AND due_at <= \\? ORDER BY due_at, id").
		WithArgs("u1", "pending", now).
		WillReturnRows(rows)

	got, err := repo.FindDue(context.Background(), "u1", now)
	require.NoError(t, err)
	assert.Equal(t, []ReviewTask{
		{ID: "t1", UserID: "u1", StudyLogID: "log1", DueAt: due, Status: StatusPending},
		{ID: "t2", UserID: "u1", StudyLogID: "log2", DueAt: due, Status: StatusPending},
	}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindByStudyLog(t *testing.T) {
	due := time.Date(2024, 1, 8, 3, 0, 0, 0, time.UTC)

	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT .* FROM review_tasks WHERE study_log_id = \\? ORDER BY due_at, id").
		WithArgs("log1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "study_log_id", "due_at", "status"}).
			AddRow("t1", "u1", "log1", due, "skipped"))

	got, err := repo.FindByStudyLog(context.Background(), "log1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsTerminal())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_ReplaceFuturePending(t *testing.T) {
	now := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 11, 3, 0, 0, 0, time.UTC)
	newTasks := []ReviewTask{
		{ID: "n1", UserID: "u1", StudyLogID: "log1", DueAt: due, Status: StatusPending},
		{ID: "n2", UserID: "u1", StudyLogID: "log1", DueAt: due.AddDate(0, 0, 2), Status: StatusPending},
	}

	tests := []struct {
		name        string
		tasks       []ReviewTask
		setupMock   func(mock sqlmock.Sqlmock)
		wantDeleted int64
		wantErr     bool
	}{
		{
			name:  "inserts the new set before deleting the old future tasks",
			tasks: newTasks,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO review_tasks").
					WithArgs(
						"n1", "u1", "log1", due, "pending",
						"n2", "u1", "log1", due.AddDate(0, 0, 2), "pending",
					).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec("DELETE FROM review_tasks WHERE study_log_id = \\? AND status = \\? AND due_at > \\? AND id NOT IN \\(\\?, \\?\\)").
					WithArgs("log1", "pending", now, "n1", "n2").
					WillReturnResult(sqlmock.NewResult(0, 3))
				mock.ExpectCommit()
			},
			wantDeleted: 3,
		},
		{
			name:  "without new tasks only deletes",
			tasks: nil,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM review_tasks WHERE study_log_id = \\? AND status = \\? AND due_at > \\?$").
					WithArgs("log1", "pending", now).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantDeleted: 1,
		},
		{
			name:  "insert failure rolls back without deleting",
			tasks: newTasks,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO review_tasks").WillReturnError(fmt.Errorf("deadlock"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name:  "delete failure rolls back the insert",
			tasks: newTasks,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO review_tasks").WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec("DELETE FROM review_tasks").WillReturnError(fmt.Errorf("lock wait timeout"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.ReplaceFuturePending(context.Background(), "log1", now, tt.tasks)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantDeleted, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      bool
		wantErr   bool
	}{
		{
			name: "pending task is updated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE review_tasks SET status = \\? WHERE id = \\? AND status = \\?").
					WithArgs("completed", "t1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			want: true,
		},
		{
			name: "task already resolved elsewhere",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE review_tasks SET status").
					WithArgs("completed", "t1", "pending").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			want: false,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE review_tasks SET status").WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)
			tt.setupMock(mock)

			got, err := repo.UpdateStatus(context.Background(), "t1", StatusCompleted)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_CountDueByOwner(t *testing.T) {
	now := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT user_id, COUNT\\(\\*\\) AS due_count FROM review_tasks WHERE status = \\? AND due_at <= \\? GROUP BY user_id").
		WithArgs("pending", now).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "due_count"}).
			AddRow("u1", 3).
			AddRow("u2", 1))

	got, err := repo.CountDueByOwner(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"u1": 3, "u2": 1}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewTask_IsTerminal(t *testing.T) {
	assert.False(t, ReviewTask{Status: StatusPending}.IsTerminal())
	assert.True(t, ReviewTask{Status: StatusCompleted}.IsTerminal())
	assert.True(t, ReviewTask{Status: StatusSkipped}.IsTerminal())
}
