package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/task"
)

const (
	DefaultEasinessFactor = 2.5
	MinEasinessFactor     = 1.3
)

// Quality is the three level self assessment used by the adaptive schedule.
type Quality int

const (
	QualityHard    Quality = 1
	QualityGood    Quality = 3
	QualityPerfect Quality = 5
)

// State is the running SM-2 state of one study log.
type State struct {
	IntervalDays   int
	EasinessFactor float64
	Repetitions    int
}

// NextState applies one review of quality q.
func NextState(state State, q Quality) State {
	ef := state.EasinessFactor
	if ef == 0 {
		ef = DefaultEasinessFactor
	}
	ef = updateEasinessFactor(ef, q)

	if q < QualityGood {
		return State{IntervalDays: 1, EasinessFactor: ef, Repetitions: 0}
	}

	var interval int
	switch state.Repetitions {
	case 0:
		interval = 1
	case 1:
		interval = 6
	default:
		interval = int(math.Round(float64(state.IntervalDays) * state.easinessOrDefault()))
	}
	return State{IntervalDays: interval, EasinessFactor: ef, Repetitions: state.Repetitions + 1}
}

func (s State) easinessOrDefault() float64 {
	if s.EasinessFactor == 0 {
		return DefaultEasinessFactor
	}
	return s.EasinessFactor
}

func updateEasinessFactor(ef float64, q Quality) float64 {
	d := float64(5 - q)
	return math.Max(ef+0.1-d*(0.08+d*0.02), MinEasinessFactor)
}

// ScheduleAdaptive creates the single task the SM-2 variant asks for and returns it with
// the state to keep for the next review.
func (s *Scheduler) ScheduleAdaptive(ctx context.Context, recordID, ownerID string, anchor studyday.DayKey, state State, q Quality) (task.ReviewTask, State, error) {
	next := NextState(state, q)
	tasks := s.Plan(recordID, ownerID, anchor, OffsetTable{next.IntervalDays})
	if err := s.repo.BatchCreate(ctx, tasks); err != nil {
		return task.ReviewTask{}, state, fmt.Errorf("repo.BatchCreate(%s) > %w", recordID, err)
	}
	slog.Default().Debug("scheduled adaptive review",
		"study_log_id", recordID,
		"interval_days", next.IntervalDays,
		"easiness_factor", next.EasinessFactor)
	return tasks[0], next, nil
}
