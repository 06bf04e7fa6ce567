package studylog_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/studyloop/internal/config"
	"github.com/at-ishikawa/studyloop/internal/database"
	mock_studylog "github.com/at-ishikawa/studyloop/internal/mocks/studylog"
	"github.com/at-ishikawa/studyloop/internal/schedule"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
	"github.com/at-ishikawa/studyloop/internal/task"
	"github.com/at-ishikawa/studyloop/internal/testutil"
	"github.com/at-ishikawa/studyloop/schemas"
)

func newTestClock(t *testing.T) *studyday.Clock {
	t.Helper()
	now := time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC) // 10:00 at +09:00
	clock, err := studyday.NewClock("+09:00", 3, studyday.WithNow(func() time.Time { return now }))
	require.NoError(t, err)
	return clock
}

func strPtr(s string) *string {
	return &s
}

func TestService_Log(t *testing.T) {
	tests := []struct {
		name      string
		input     studylog.LogInput
		setupMock func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler)
		wantTasks int
		wantErrIs error
		wantErr   bool
	}{
		{
			name:  "record with a note is scheduled from its study day",
			input: studylog.LogInput{UserID: "u1", Subject: " Math ", Minutes: 30, Note: "- limits\n- derivatives"},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *studylog.Record) error {
					assert.Equal(t, "Math", r.Subject)
					assert.Equal(t, "- limits\n- derivatives", r.NoteText())
					r.ID = "log1"
					return nil
				})
				scheduler.EXPECT().
					ScheduleInitial(gomock.Any(), "log1", "u1", studyday.MustParseDayKey("2024-01-10"), schedule.KindNote).
					Return(make([]task.ReviewTask, 5), nil)
			},
			wantTasks: 5,
		},
		{
			name:  "record without a note is not scheduled",
			input: studylog.LogInput{UserID: "u1", Subject: "Math", Minutes: 30, Note: "   "},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *studylog.Record) error {
					assert.Nil(t, r.Note)
					return nil
				})
			},
		},
		{
			name:  "back-filled record before the cutoff belongs to the previous day",
			input: studylog.LogInput{UserID: "u1", Subject: "Math", Minutes: 30, Note: "x", StartedAt: time.Date(2024, 1, 5, 17, 30, 0, 0, time.UTC)},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				scheduler.EXPECT().
					ScheduleInitial(gomock.Any(), gomock.Any(), "u1", studyday.MustParseDayKey("2024-01-05"), schedule.KindNote).
					Return(nil, nil)
			},
		},
		{
			name:  "card uses the card kind",
			input: studylog.LogInput{UserID: "u1", Subject: "Bio", Minutes: 10, Note: "cell : unit of life", Kind: schedule.KindCard},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				scheduler.EXPECT().
					ScheduleInitial(gomock.Any(), gomock.Any(), "u1", gomock.Any(), schedule.KindCard).
					Return(make([]task.ReviewTask, 13), nil)
			},
			wantTasks: 13,
		},
		{
			name:  "adaptive schedules a single task",
			input: studylog.LogInput{UserID: "u1", Subject: "Bio", Minutes: 10, Note: "cell : unit of life", Adaptive: true},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				scheduler.EXPECT().
					ScheduleAdaptive(gomock.Any(), gomock.Any(), "u1", studyday.MustParseDayKey("2024-01-10"), schedule.State{}, schedule.QualityGood).
					Return(task.ReviewTask{ID: "t1"}, schedule.State{IntervalDays: 1, Repetitions: 1}, nil)
			},
			wantTasks: 1,
		},
		{
			name:      "card without a note is rejected before writing",
			input:     studylog.LogInput{UserID: "u1", Subject: "Bio", Minutes: 10, Kind: schedule.KindCard},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {},
			wantErr:   true,
			wantErrIs: studylog.ErrEmptyNote,
		},
		{
			name:  "scheduling failure is returned",
			input: studylog.LogInput{UserID: "u1", Subject: "Math", Minutes: 30, Note: "x"},
			setupMock: func(repo *mock_studylog.MockRepository, scheduler *mock_studylog.MockScheduler) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
				scheduler.EXPECT().ScheduleInitial(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_studylog.NewMockRepository(ctrl)
			scheduler := mock_studylog.NewMockScheduler(ctrl)
			tt.setupMock(repo, scheduler)

			service := studylog.NewService(repo, scheduler, newTestClock(t))
			_, tasks, err := service.Log(context.Background(), tt.input)
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, tasks, tt.wantTasks)
		})
	}
}

func TestService_Edit(t *testing.T) {
	startedAt := time.Date(2024, 1, 8, 1, 0, 0, 0, time.UTC)

	t.Run("adding the first note schedules reviews", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_studylog.NewMockRepository(ctrl)
		scheduler := mock_studylog.NewMockScheduler(ctrl)

		repo.EXPECT().FindByID(gomock.Any(), "log1").
			Return(&studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		scheduler.EXPECT().
			ScheduleInitial(gomock.Any(), "log1", "u1", studyday.MustParseDayKey("2024-01-08"), schedule.KindNote).
			Return(make([]task.ReviewTask, 5), nil)

		service := studylog.NewService(repo, scheduler, newTestClock(t))
		got, tasks, err := service.Edit(context.Background(), "u1", "log1", studylog.EditInput{Note: strPtr("limits")})
		require.NoError(t, err)
		assert.Equal(t, "limits", got.NoteText())
		assert.Len(t, tasks, 5)
	})

	t.Run("changing an existing note resets theme outcomes without rescheduling", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_studylog.NewMockRepository(ctrl)
		scheduler := mock_studylog.NewMockScheduler(ctrl)

		minutes := 50
		repo.EXPECT().FindByID(gomock.Any(), "log1").
			Return(&studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt, Note: strPtr("old")}, nil)
		gomock.InOrder(
			repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *studylog.Record) error {
				assert.Equal(t, 50, r.StudyMinutes)
				assert.Equal(t, "new", r.NoteText())
				return nil
			}),
			repo.EXPECT().ResetThemeOutcomes(gomock.Any(), "u1", "log1").Return(int64(2), nil),
		)

		service := studylog.NewService(repo, scheduler, newTestClock(t))
		_, tasks, err := service.Edit(context.Background(), "u1", "log1", studylog.EditInput{Note: strPtr("new"), Minutes: &minutes})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("keeping the same note keeps theme outcomes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_studylog.NewMockRepository(ctrl)

		minutes := 45
		repo.EXPECT().FindByID(gomock.Any(), "log1").
			Return(&studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt, Note: strPtr("old")}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		service := studylog.NewService(repo, mock_studylog.NewMockScheduler(ctrl), newTestClock(t))
		_, _, err := service.Edit(context.Background(), "u1", "log1", studylog.EditInput{Note: strPtr(" old "), Minutes: &minutes})
		require.NoError(t, err)
	})

	t.Run("reset failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_studylog.NewMockRepository(ctrl)

		repo.EXPECT().FindByID(gomock.Any(), "log1").
			Return(&studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt, Note: strPtr("old")}, nil)
		repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		repo.EXPECT().ResetThemeOutcomes(gomock.Any(), "u1", "log1").Return(int64(0), errors.New("connection refused"))

		service := studylog.NewService(repo, mock_studylog.NewMockScheduler(ctrl), newTestClock(t))
		_, _, err := service.Edit(context.Background(), "u1", "log1", studylog.EditInput{Note: strPtr("new")})
		assert.Error(t, err)
	})

	t.Run("another user's record is not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_studylog.NewMockRepository(ctrl)
		repo.EXPECT().FindByID(gomock.Any(), "log1").Return(&studylog.Record{ID: "log1", UserID: "u2"}, nil)

		service := studylog.NewService(repo, mock_studylog.NewMockScheduler(ctrl), newTestClock(t))
		_, _, err := service.Edit(context.Background(), "u1", "log1", studylog.EditInput{})
		assert.ErrorIs(t, err, studylog.ErrNotFound)
	})
}

func TestService_MergeSameDay(t *testing.T) {
	clock := newTestClock(t)
	day := studyday.MustParseDayKey("2024-01-08")
	startedAt := clock.At(day, 10)

	otherSubject := studylog.Record{ID: "log3", UserID: "u1", Subject: "History", StudyMinutes: 15, StartedAt: startedAt}

	tests := []struct {
		name           string
		keep           studylog.Record
		same           studylog.Record
		moved          int64
		wantNote       string
		wantScheduling bool
	}{
		{
			name:     "noted logs are merged and their reviews move",
			keep:     studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt, Note: strPtr("limits")},
			same:     studylog.Record{ID: "log2", UserID: "u1", Subject: "Math", StudyMinutes: 20, StartedAt: startedAt.Add(time.Hour), Note: strPtr("derivatives")},
			moved:    5,
			wantNote: "limits\nderivatives",
		},
		{
			name:     "a log without a note takes over the moved reviews",
			keep:     studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt},
			same:     studylog.Record{ID: "log2", UserID: "u1", Subject: "Math", StudyMinutes: 20, StartedAt: startedAt.Add(time.Hour), Note: strPtr("limits")},
			moved:    5,
			wantNote: "limits",
		},
		{
			name:           "a log that gains a note without moved reviews is scheduled",
			keep:           studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt},
			same:           studylog.Record{ID: "log2", UserID: "u1", Subject: "Math", StudyMinutes: 20, StartedAt: startedAt.Add(time.Hour), Note: strPtr("limits")},
			moved:          0,
			wantNote:       "limits",
			wantScheduling: true,
		},
		{
			name:  "logs without notes are merged without scheduling",
			keep:  studylog.Record{ID: "log1", UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: startedAt},
			same:  studylog.Record{ID: "log2", UserID: "u1", Subject: "Math", StudyMinutes: 20, StartedAt: startedAt.Add(time.Hour)},
			moved: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_studylog.NewMockRepository(ctrl)
			scheduler := mock_studylog.NewMockScheduler(ctrl)

			k := tt.keep
			repo.EXPECT().FindByID(gomock.Any(), "log1").Return(&k, nil)
			repo.EXPECT().FindByUser(gomock.Any(), "u1", clock.Instant(day), clock.Instant(day+1)).
				Return([]studylog.Record{tt.keep, tt.same, otherSubject}, nil)
			repo.EXPECT().Merge(gomock.Any(), gomock.Any(), []string{"log2"}).DoAndReturn(func(_ context.Context, r *studylog.Record, _ []string) (int64, error) {
				assert.Equal(t, 50, r.StudyMinutes)
				assert.Equal(t, tt.wantNote, r.NoteText())
				return tt.moved, nil
			})
			if tt.wantScheduling {
				scheduler.EXPECT().ScheduleInitial(gomock.Any(), "log1", "u1", day, schedule.KindNote).
					Return(make([]task.ReviewTask, 5), nil)
			}

			service := studylog.NewService(repo, scheduler, clock)
			got, merged, err := service.MergeSameDay(context.Background(), "u1", "log1")
			require.NoError(t, err)
			assert.Equal(t, 1, merged)
			assert.Equal(t, tt.wantNote, got.NoteText())
		})
	}
}

func TestService_ImportXLSX(t *testing.T) {
	path := testutil.CreateStudyLogWorkbook(t, t.TempDir(), [][]any{
		{"date", "subject", "minutes", "note", "book"},
		{"2024-01-02", "Math", "30", "- limits\n- derivatives", ""},
		{"2024/01/03", "History", "15", "", "b1"},
		{"yesterday", "Math", "30", "", ""},
		{"2024-01-04", "Math", "soon", "", ""},
		{},
	})

	ctrl := gomock.NewController(t)
	repo := mock_studylog.NewMockRepository(ctrl)
	scheduler := mock_studylog.NewMockScheduler(ctrl)
	clock := newTestClock(t)

	gomock.InOrder(
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *studylog.Record) error {
			assert.Equal(t, "Math", r.Subject)
			assert.Equal(t, studyday.MustParseDayKey("2024-01-02"), clock.StudyDay(r.StartedAt))
			return nil
		}),
		scheduler.EXPECT().
			ScheduleInitial(gomock.Any(), gomock.Any(), "u1", studyday.MustParseDayKey("2024-01-02"), schedule.KindNote).
			Return(make([]task.ReviewTask, 5), nil),
		repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *studylog.Record) error {
			assert.Equal(t, "b1", *r.ReferenceBookID)
			assert.False(t, r.HasNote())
			return nil
		}),
	)

	cfg := studylog.DefaultImportConfig()
	cfg.FilePath = path
	got, err := studylog.NewService(repo, scheduler, clock).ImportXLSX(context.Background(), cfg, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.TotalProcessed)
	assert.Equal(t, 2, got.Created)
	assert.Equal(t, 5, got.Scheduled)
	require.Len(t, got.Errors, 2)
	assert.Contains(t, got.Errors[0], "Row 4")
	assert.Contains(t, got.Errors[1], "Row 5")
}

func TestService_ImportXLSX_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	cfg := studylog.DefaultImportConfig()
	cfg.FilePath = filepath.Join(t.TempDir(), "missing.xlsx")

	_, err := studylog.NewService(mock_studylog.NewMockRepository(ctrl), mock_studylog.NewMockScheduler(ctrl), newTestClock(t)).
		ImportXLSX(context.Background(), cfg, "u1")
	assert.Error(t, err)
}

func TestService_MergeSameDay_SQLite(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "studyloop.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = database.Migrate(db, schemas.Migrations, schemas.MigrationDir("sqlite3"))
	require.NoError(t, err)

	ctx := context.Background()
	clock := newTestClock(t)
	day := studyday.MustParseDayKey("2024-01-08")
	repo := studylog.NewDBRepository(db)
	tasks := task.NewDBRepository(db)
	resolutions := task.NewDBResolutionRepository(db)

	keep := studylog.Record{UserID: "u1", Subject: "Math", StudyMinutes: 30, StartedAt: clock.At(day, 10)}
	noted := studylog.Record{UserID: "u1", Subject: "Math", StudyMinutes: 20, StartedAt: clock.At(day, 11), Note: strPtr("limits\nderivatives")}
	require.NoError(t, repo.Create(ctx, &keep))
	require.NoError(t, repo.Create(ctx, &noted))
	require.NoError(t, tasks.BatchCreate(ctx, []task.ReviewTask{
		{ID: "t1", UserID: "u1", StudyLogID: noted.ID, DueAt: clock.At(day+1, 12).UTC(), Status: task.StatusCompleted},
		{ID: "t2", UserID: "u1", StudyLogID: noted.ID, DueAt: clock.At(day+3, 12).UTC(), Status: task.StatusPending},
		{ID: "t3", UserID: "u1", StudyLogID: noted.ID, DueAt: clock.At(day+7, 12).UTC(), Status: task.StatusPending},
	}))
	require.NoError(t, resolutions.Create(ctx, task.ThemeResolution{TaskID: "t1", ThemeIndex: 0, Outcome: task.OutcomeResolved}))
	require.NoError(t, resolutions.Create(ctx, task.ThemeResolution{TaskID: "t2", ThemeIndex: 1, Outcome: task.OutcomeResolved}))

	ctrl := gomock.NewController(t)
	service := studylog.NewService(repo, mock_studylog.NewMockScheduler(ctrl), clock)
	got, merged, err := service.MergeSameDay(ctx, "u1", keep.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, merged)
	assert.Equal(t, "limits\nderivatives", got.NoteText())

	moved, err := tasks.FindByStudyLog(ctx, keep.ID)
	require.NoError(t, err)
	require.Len(t, moved, 2)
	assert.Equal(t, "t2", moved[0].ID)
	assert.Equal(t, "t3", moved[1].ID)

	remaining, err := resolutions.FindByTasks(ctx, []string{"t1", "t2"})
	require.NoError(t, err)
	assert.Equal(t, []task.ThemeResolution{{TaskID: "t1", ThemeIndex: 0, Outcome: task.OutcomeResolved}}, remaining)

	deleted, err := repo.FindByID(ctx, noted.ID)
	require.NoError(t, err)
	assert.Nil(t, deleted)
}
