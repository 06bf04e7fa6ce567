// Package schedule turns a study log into the review tasks that bring it back for review.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"github.com/google/uuid"

	"github.com/at-ishikawa/studyloop/internal/config"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/task"
)

// ErrRescheduleFailed is returned when the replacement schedule could not be written.
// The record may be left with its old future tasks, never with none.
var ErrRescheduleFailed = errors.New("reschedule failed")

// Kind selects the offset table a study log is scheduled with.
type Kind int

const (
	// KindNote is an ordinary logged note, scheduled with the short table.
	KindNote Kind = iota
	// KindCard is an explicitly authored review card, scheduled with the long table.
	KindCard
)

func (k Kind) String() string {
	if k == KindCard {
		return "card"
	}
	return "note"
}

// OffsetTable lists day offsets from an anchor day.
type OffsetTable []int

type Scheduler struct {
	clock   *studyday.Clock
	repo    task.Repository
	short   OffsetTable
	long    OffsetTable
	dueHour int
	retry   config.RetryConfig
	newID   func() string
}

func NewScheduler(clock *studyday.Clock, repo task.Repository, cfg config.ScheduleConfig, dueHour int) *Scheduler {
	return &Scheduler{
		clock:   clock,
		repo:    repo,
		short:   OffsetTable(cfg.ShortOffsets),
		long:    OffsetTable(cfg.LongOffsets),
		dueHour: dueHour,
		retry:   cfg.RescheduleRetry,
		newID:   uuid.NewString,
	}
}

func (s *Scheduler) Table(kind Kind) OffsetTable {
	if kind == KindCard {
		return s.long
	}
	return s.short
}

// Plan builds pending tasks due at the configured hour of anchor+offset for each offset.
// It does not write anything.
func (s *Scheduler) Plan(recordID, ownerID string, anchor studyday.DayKey, offsets OffsetTable) []task.ReviewTask {
	tasks := make([]task.ReviewTask, 0, len(offsets))
	for _, offset := range offsets {
		tasks = append(tasks, task.ReviewTask{
			ID:         s.newID(),
			UserID:     ownerID,
			StudyLogID: recordID,
			DueAt:      s.clock.At(anchor+studyday.DayKey(offset), s.dueHour).UTC(),
			Status:     task.StatusPending,
		})
	}
	return tasks
}

// ScheduleInitial creates the first review tasks of a study log that happened on day.
// It does not check for existing tasks, so call it once per created study log.
func (s *Scheduler) ScheduleInitial(ctx context.Context, recordID, ownerID string, day studyday.DayKey, kind Kind) ([]task.ReviewTask, error) {
	tasks := s.Plan(recordID, ownerID, day, s.Table(kind))
	if err := s.repo.BatchCreate(ctx, tasks); err != nil {
		return nil, fmt.Errorf("repo.BatchCreate(%s) > %w", recordID, err)
	}
	slog.Default().Debug("scheduled reviews",
		"study_log_id", recordID,
		"kind", kind,
		"day", day,
		"tasks", len(tasks))
	return tasks, nil
}

// RescheduleFromNow replaces the future pending tasks of a study log with a fresh short
// schedule anchored at tomorrow. Tasks that are already due or resolved are kept.
func (s *Scheduler) RescheduleFromNow(ctx context.Context, recordID, ownerID string) ([]task.ReviewTask, error) {
	now := s.clock.Now()
	anchor := s.clock.StudyDay(now) + 1
	tasks := s.Plan(recordID, ownerID, anchor, s.short)

	var deleted int64
	err := retry.Do(
		func() error {
			var err error
			deleted, err = s.repo.ReplaceFuturePending(ctx, recordID, now, tasks)
			if err != nil && ctx.Err() != nil {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Context(ctx),
		retry.Attempts(s.retry.Attempts),
		retry.Delay(time.Duration(s.retry.InitialDelayMs)*time.Millisecond),
		retry.MaxDelay(time.Duration(s.retry.MaxDelayMs)*time.Millisecond),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("retrying reschedule",
				"attempt", n+1,
				"study_log_id", recordID,
				"error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: study log %s: %w", ErrRescheduleFailed, recordID, err)
	}

	slog.Default().Info("rescheduled reviews",
		"study_log_id", recordID,
		"from", anchor,
		"deleted", deleted,
		"created", len(tasks))
	return tasks, nil
}
