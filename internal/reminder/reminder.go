// Package reminder periodically tells learners how many reviews are waiting for them.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/go-co-op/gocron"

	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/task"
)

// Notifier delivers a reminder to one learner.
type Notifier interface {
	Notify(ctx context.Context, ownerID string, dueCount int) error
}

// LogNotifier writes reminders to the default logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, ownerID string, dueCount int) error {
	slog.Default().Info("reviews are due", "user", ownerID, "count", dueCount)
	return nil
}

type Reminder struct {
	tasks     task.Repository
	notifier  Notifier
	clock     *studyday.Clock
	scheduler *gocron.Scheduler
}

func NewReminder(tasks task.Repository, notifier Notifier, clock *studyday.Clock) *Reminder {
	return &Reminder{
		tasks:     tasks,
		notifier:  notifier,
		clock:     clock,
		scheduler: gocron.NewScheduler(clock.Location()),
	}
}

// Start runs CheckDue on the cron expression, evaluated in the study day location.
func (r *Reminder) Start(ctx context.Context, cronExpr string) error {
	if _, err := r.scheduler.Cron(cronExpr).Do(func() {
		if _, err := r.CheckDue(ctx); err != nil {
			slog.Default().Error("failed to check due reviews", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("scheduler.Cron(%s) > %w", cronExpr, err)
	}
	r.scheduler.StartAsync()
	return nil
}

func (r *Reminder) Stop() {
	r.scheduler.Stop()
}

// CheckDue notifies every learner with pending reviews and returns the number notified.
// A failed notification does not stop the others.
func (r *Reminder) CheckDue(ctx context.Context) (int, error) {
	counts, err := r.tasks.CountDueByOwner(ctx, r.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("tasks.CountDueByOwner > %w", err)
	}

	owners := make([]string, 0, len(counts))
	for owner := range counts {
		owners = append(owners, owner)
	}
	sort.Strings(owners)

	notified := 0
	for _, owner := range owners {
		if counts[owner] <= 0 {
			continue
		}
		if err := r.notifier.Notify(ctx, owner, counts[owner]); err != nil {
			slog.Default().Warn("failed to send a reminder", "user", owner, "error", err)
			continue
		}
		notified++
	}
	return notified, nil
}
