package studylog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/at-ishikawa/studyloop/internal/schedule"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/task"
)

//go:generate mockgen -source=service.go -destination=../mocks/studylog/mock_service.go -package=mock_studylog

// Scheduler creates the review tasks of a new study log.
type Scheduler interface {
	ScheduleInitial(ctx context.Context, recordID, ownerID string, day studyday.DayKey, kind schedule.Kind) ([]task.ReviewTask, error)
	ScheduleAdaptive(ctx context.Context, recordID, ownerID string, anchor studyday.DayKey, state schedule.State, q schedule.Quality) (task.ReviewTask, schedule.State, error)
}

// LogInput is what a learner enters to log a study session.
type LogInput struct {
	UserID          string
	Subject         string
	ReferenceBookID string
	Minutes         int
	StartedAt       time.Time
	Note            string
	// Kind chooses the offset table. KindCard requires a note.
	Kind schedule.Kind
	// Adaptive schedules a single SM-2 task instead of an offset table.
	Adaptive bool
}

// Service creates and edits study logs and keeps their review schedule in step.
type Service struct {
	repo      Repository
	scheduler Scheduler
	clock     *studyday.Clock
}

func NewService(repo Repository, scheduler Scheduler, clock *studyday.Clock) *Service {
	return &Service{repo: repo, scheduler: scheduler, clock: clock}
}

// Log stores a new study log and schedules its reviews when it has a note.
func (s *Service) Log(ctx context.Context, input LogInput) (*Record, []task.ReviewTask, error) {
	note := strings.TrimSpace(input.Note)
	if note == "" && (input.Kind == schedule.KindCard || input.Adaptive) {
		return nil, nil, ErrEmptyNote
	}
	startedAt := input.StartedAt
	if startedAt.IsZero() {
		startedAt = s.clock.Now()
	}

	record := &Record{
		UserID:       input.UserID,
		Subject:      strings.TrimSpace(input.Subject),
		StudyMinutes: input.Minutes,
		StartedAt:    startedAt,
	}
	if input.ReferenceBookID != "" {
		record.ReferenceBookID = &input.ReferenceBookID
	}
	if note != "" {
		record.Note = &note
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("repo.Create() > %w", err)
	}
	if !record.HasNote() {
		return record, nil, nil
	}

	day := s.clock.StudyDay(record.StartedAt)
	if input.Adaptive {
		t, _, err := s.scheduler.ScheduleAdaptive(ctx, record.ID, record.UserID, day, schedule.State{}, schedule.QualityGood)
		if err != nil {
			return record, nil, fmt.Errorf("scheduler.ScheduleAdaptive() > %w", err)
		}
		return record, []task.ReviewTask{t}, nil
	}
	tasks, err := s.scheduler.ScheduleInitial(ctx, record.ID, record.UserID, day, input.Kind)
	if err != nil {
		return record, nil, fmt.Errorf("scheduler.ScheduleInitial() > %w", err)
	}
	return record, tasks, nil
}

// EditInput holds the fields to change; nil fields are kept.
type EditInput struct {
	Subject   *string
	Minutes   *int
	StartedAt *time.Time
	Note      *string
}

// Edit changes a record. A record that gains its first note is scheduled from its study day.
// A changed note clears the theme outcomes of the pending reviews, whose theme indices refer to the old note.
func (s *Service) Edit(ctx context.Context, userID, id string, input EditInput) (*Record, []task.ReviewTask, error) {
	record, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, nil, err
	}
	hadNote := record.HasNote()
	oldNote := record.NoteText()

	if input.Subject != nil {
		record.Subject = strings.TrimSpace(*input.Subject)
	}
	if input.Minutes != nil {
		record.StudyMinutes = *input.Minutes
	}
	if input.StartedAt != nil {
		record.StartedAt = *input.StartedAt
	}
	if input.Note != nil {
		note := strings.TrimSpace(*input.Note)
		if note == "" {
			record.Note = nil
		} else {
			record.Note = &note
		}
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, nil, fmt.Errorf("repo.Update() > %w", err)
	}
	if hadNote && record.NoteText() != oldNote {
		cleared, err := s.repo.ResetThemeOutcomes(ctx, record.UserID, record.ID)
		if err != nil {
			return record, nil, fmt.Errorf("repo.ResetThemeOutcomes() > %w", err)
		}
		slog.Default().Debug("reset theme outcomes of an edited note", "study_log_id", record.ID, "cleared", cleared)
	}
	if hadNote || !record.HasNote() {
		return record, nil, nil
	}

	tasks, err := s.scheduler.ScheduleInitial(ctx, record.ID, record.UserID, s.clock.StudyDay(record.StartedAt), schedule.KindNote)
	if err != nil {
		return record, nil, fmt.Errorf("scheduler.ScheduleInitial() > %w", err)
	}
	return record, tasks, nil
}

// MergeSameDay folds the other records of the same study day and group into the record id:
// minutes are summed and notes appended. The folded records are deleted and their pending
// reviews move to the kept record. A kept record that gains a note without any moved review
// is scheduled from its study day.
func (s *Service) MergeSameDay(ctx context.Context, userID, id string) (*Record, int, error) {
	keep, err := s.find(ctx, userID, id)
	if err != nil {
		return nil, 0, err
	}
	hadNote := keep.HasNote()
	day := s.clock.StudyDay(keep.StartedAt)
	candidates, err := s.repo.FindByUser(ctx, userID, s.clock.Instant(day), s.clock.Instant(day+1))
	if err != nil {
		return nil, 0, fmt.Errorf("repo.FindByUser() > %w", err)
	}

	notes := []string{}
	if keep.HasNote() {
		notes = append(notes, keep.NoteText())
	}
	var mergedIDs []string
	for _, c := range candidates {
		if c.ID == keep.ID || c.GroupKey() != keep.GroupKey() {
			continue
		}
		mergedIDs = append(mergedIDs, c.ID)
		keep.StudyMinutes += c.StudyMinutes
		if c.HasNote() {
			notes = append(notes, c.NoteText())
		}
	}
	if len(mergedIDs) == 0 {
		return keep, 0, nil
	}
	if len(notes) > 0 {
		joined := strings.Join(notes, "\n")
		keep.Note = &joined
	}

	moved, err := s.repo.Merge(ctx, keep, mergedIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.Merge() > %w", err)
	}
	slog.Default().Info("merged study logs", "study_log_id", keep.ID, "merged", len(mergedIDs), "moved_tasks", moved, "day", day)

	if moved == 0 && !hadNote && keep.HasNote() {
		if _, err := s.scheduler.ScheduleInitial(ctx, keep.ID, keep.UserID, day, schedule.KindNote); err != nil {
			return keep, len(mergedIDs), fmt.Errorf("scheduler.ScheduleInitial() > %w", err)
		}
	}
	return keep, len(mergedIDs), nil
}

func (s *Service) find(ctx context.Context, userID, id string) (*Record, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("repo.FindByID() > %w", err)
	}
	if record == nil || record.UserID != userID {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return record, nil
}
