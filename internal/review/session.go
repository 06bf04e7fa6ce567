package review

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/at-ishikawa/studyloop/internal/inference"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
	"github.com/at-ishikawa/studyloop/internal/task"
	"github.com/at-ishikawa/studyloop/internal/theme"
)

type Rating int

const (
	RatingRemembered Rating = iota
	RatingNotYet
)

func (r Rating) String() string {
	if r == RatingNotYet {
		return "not yet"
	}
	return "remembered"
}

// Progress describes the task after a theme was resolved.
type Progress struct {
	TaskStatus  task.Status
	Rescheduled bool
}

type AnswerResult struct {
	Progress
	Correct       bool
	CorrectIndex  int
	Explanation   string
	ThemeResolved bool
}

// Session is the state of one review viewing. It is safe for concurrent use.
type Session struct {
	engine  *Engine
	ownerID string

	mu     sync.Mutex
	items  map[string]*item
	closed atomic.Bool
}

type item struct {
	task     task.ReviewTask
	record   studylog.Record
	subject  string
	day      studyday.DayKey
	themes   []theme.Theme
	outcomes map[int]task.Outcome
	quizzes  map[int]*quiz
}

type quiz struct {
	questions   []inference.QuizQuestion
	selected    []int
	rescheduled bool
}

func newQuiz(questions []inference.QuizQuestion) *quiz {
	selected := make([]int, len(questions))
	for i := range selected {
		selected[i] = -1
	}
	return &quiz{questions: questions, selected: selected}
}

func (q *quiz) complete() bool {
	for _, s := range q.selected {
		if s < 0 {
			return false
		}
	}
	return true
}

func (q *quiz) hasWrongAnswer() bool {
	for i, s := range q.selected {
		if s >= 0 && s != q.questions[i].CorrectIndex {
			return true
		}
	}
	return false
}

func (it *item) visible() []theme.Theme {
	var visible []theme.Theme
	for _, th := range it.themes {
		if _, ok := it.outcomes[th.Index]; !ok {
			visible = append(visible, th)
		}
	}
	return visible
}

// Close stops the session. Operations started afterwards, and writes that follow an
// in-flight one, return ErrSessionClosed.
func (s *Session) Close() {
	s.closed.Store(true)
}

func (s *Session) checkOpen() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return nil
}

// Load reads the due tasks of the owner and replaces the session state with them.
func (s *Session) Load(ctx context.Context) ([]Group, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	e := s.engine
	logger := slog.Default()

	tasks, err := e.tasks.FindDue(ctx, s.ownerID, e.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("tasks.FindDue(%s) > %w", s.ownerID, err)
	}

	recordIDs := make([]string, 0, len(tasks))
	taskIDs := make([]string, 0, len(tasks))
	seen := map[string]struct{}{}
	for _, t := range tasks {
		taskIDs = append(taskIDs, t.ID)
		if _, ok := seen[t.StudyLogID]; ok {
			continue
		}
		seen[t.StudyLogID] = struct{}{}
		recordIDs = append(recordIDs, t.StudyLogID)
	}

	records, err := e.records.FindByIDs(ctx, recordIDs)
	if err != nil {
		return nil, fmt.Errorf("records.FindByIDs > %w", err)
	}
	recordMap := make(map[string]studylog.Record, len(records))
	var bookIDs []string
	for _, r := range records {
		recordMap[r.ID] = r
		if r.ReferenceBookID != nil {
			bookIDs = append(bookIDs, *r.ReferenceBookID)
		}
	}

	books := map[string]studylog.ReferenceBook{}
	if len(bookIDs) > 0 {
		found, err := e.records.FindBooks(ctx, bookIDs)
		if err != nil {
			return nil, fmt.Errorf("records.FindBooks > %w", err)
		}
		for _, b := range found {
			books[b.ID] = b
		}
	}

	resolutions, err := e.resolutions.FindByTasks(ctx, taskIDs)
	if err != nil {
		return nil, fmt.Errorf("resolutions.FindByTasks > %w", err)
	}
	outcomes := map[string]map[int]task.Outcome{}
	for _, r := range resolutions {
		if outcomes[r.TaskID] == nil {
			outcomes[r.TaskID] = map[int]task.Outcome{}
		}
		outcomes[r.TaskID][r.ThemeIndex] = r.Outcome
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := make(map[string]*item, len(tasks))
	for _, t := range tasks {
		record, ok := recordMap[t.StudyLogID]
		if !ok || record.UserID != s.ownerID {
			logger.Debug("skip review task without its study log", "task", t.ID, "study_log", t.StudyLogID)
			continue
		}
		if !record.HasNote() {
			logger.Debug("skip review task of a study log without a note", "task", t.ID, "study_log", t.StudyLogID)
			continue
		}

		it := &item{
			task:     t,
			record:   record,
			subject:  studylog.DisplaySubject(record, books),
			day:      e.clock.StudyDay(record.StartedAt),
			themes:   theme.Split(record.NoteText()),
			outcomes: map[int]task.Outcome{},
			quizzes:  map[int]*quiz{},
		}
		for index, outcome := range outcomes[t.ID] {
			if index < len(it.themes) {
				it.outcomes[index] = outcome
			}
		}

		// Every theme was resolved earlier but the status update did not land.
		if len(it.visible()) == 0 {
			if _, err := s.finalize(context.WithoutCancel(ctx), it); err != nil {
				return nil, err
			}
			continue
		}
		items[t.ID] = it
	}
	s.items = items
	return s.groups(), nil
}

// Groups returns the current state without reading the database.
func (s *Session) Groups() []Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groups()
}

// Task returns the current state of one task.
func (s *Session) Task(taskID string) (TaskView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[taskID]
	if !ok {
		return TaskView{}, false
	}
	return it.view(), true
}

func (s *Session) groups() []Group {
	views := make([]TaskView, 0, len(s.items))
	for _, it := range s.items {
		views = append(views, it.view())
	}
	return buildGroups(views)
}

func (it *item) view() TaskView {
	outcomes := make(map[int]task.Outcome, len(it.outcomes))
	for k, v := range it.outcomes {
		outcomes[k] = v
	}
	quizzes := make(map[int]QuizView, len(it.quizzes))
	for index, q := range it.quizzes {
		questions := make([]QuestionView, len(q.questions))
		for i, question := range q.questions {
			questions[i] = QuestionView{
				Question:     question.Question,
				Choices:      append([]string(nil), question.Choices...),
				CorrectIndex: question.CorrectIndex,
				Explanation:  question.Explanation,
				Selected:     q.selected[i],
			}
		}
		quizzes[index] = QuizView{Questions: questions}
	}
	return TaskView{
		Task:     it.task,
		Subject:  it.subject,
		Day:      it.day,
		Themes:   append([]theme.Theme(nil), it.themes...),
		Visible:  it.visible(),
		Outcomes: outcomes,
		Record:   it.record,
		Quizzes:  quizzes,
	}
}

// lookup returns a pending theme of a pending task. The caller holds s.mu.
func (s *Session) lookup(taskID string, themeIndex int) (*item, theme.Theme, error) {
	it, ok := s.items[taskID]
	if !ok {
		return nil, theme.Theme{}, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if it.task.IsTerminal() {
		return nil, theme.Theme{}, fmt.Errorf("%w: %s is %s", ErrTaskResolved, taskID, it.task.Status)
	}
	if themeIndex < 0 || themeIndex >= len(it.themes) {
		return nil, theme.Theme{}, fmt.Errorf("%w: %d of task %s", ErrThemeNotFound, themeIndex, taskID)
	}
	if outcome, ok := it.outcomes[themeIndex]; ok {
		return nil, theme.Theme{}, fmt.Errorf("%w: %d of task %s is already %s", ErrThemeNotFound, themeIndex, taskID, outcome)
	}
	return it, it.themes[themeIndex], nil
}

// RateFlashcard resolves a flashcard theme. Not remembering it restarts the schedule of the
// study log before the theme is resolved.
func (s *Session) RateFlashcard(ctx context.Context, taskID string, themeIndex int, rating Rating) (Progress, error) {
	if err := s.checkOpen(); err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, th, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return Progress{}, err
	}
	if th.Mode() != theme.ModeFlashcard {
		return Progress{}, fmt.Errorf("%w: theme %d of task %s is a %s theme", ErrWrongMode, themeIndex, taskID, th.Mode())
	}

	writeCtx := context.WithoutCancel(ctx)
	rescheduled := false
	if rating == RatingNotYet {
		if err := s.reschedule(writeCtx, it); err != nil {
			return Progress{}, err
		}
		rescheduled = true
	}

	progress, err := s.resolveTheme(writeCtx, it, themeIndex, task.OutcomeResolved)
	progress.Rescheduled = rescheduled
	return progress, err
}

// GenerateQuiz asks the quiz generator once for questions about a quiz theme. Any failure
// clears the quiz of the theme. The session is not locked while the generator runs.
func (s *Session) GenerateQuiz(ctx context.Context, taskID string, themeIndex, count int) (QuizView, error) {
	if err := s.checkOpen(); err != nil {
		return QuizView{}, err
	}
	th, err := s.prepareQuiz(taskID, themeIndex)
	if err != nil {
		return QuizView{}, err
	}
	if count <= 0 {
		count = inference.DefaultQuestionCount
	}

	questions, err := s.engine.quiz.GenerateQuiz(ctx, inference.GenerateQuizRequest{
		Topic: th.Text,
		Count: count,
	})
	if err != nil {
		return QuizView{}, fmt.Errorf("%w: %w", ErrQuizGeneration, err)
	}
	if len(questions) == 0 {
		return QuizView{}, fmt.Errorf("%w: no questions for %q", ErrQuizGeneration, th.Text)
	}
	for _, q := range questions {
		if err := q.Validate(); err != nil {
			return QuizView{}, fmt.Errorf("%w: %w", ErrQuizGeneration, err)
		}
	}

	if err := s.checkOpen(); err != nil {
		return QuizView{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// The theme may have been resolved or skipped while the generator ran.
	it, _, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return QuizView{}, err
	}
	it.quizzes[themeIndex] = newQuiz(questions)
	return it.view().Quizzes[themeIndex], nil
}

func (s *Session) prepareQuiz(taskID string, themeIndex int) (theme.Theme, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, th, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return theme.Theme{}, err
	}
	if th.Mode() != theme.ModeQuiz {
		return theme.Theme{}, fmt.Errorf("%w: theme %d of task %s is a %s theme", ErrWrongMode, themeIndex, taskID, th.Mode())
	}
	delete(it.quizzes, themeIndex)
	return th, nil
}

// AnswerQuestion records an answer to a generated question. Once every question of the
// theme is answered the theme is resolved; a wrong answer restarts the schedule of the
// study log first.
func (s *Session) AnswerQuestion(ctx context.Context, taskID string, themeIndex, questionIndex, selected int) (AnswerResult, error) {
	if err := s.checkOpen(); err != nil {
		return AnswerResult{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, _, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return AnswerResult{}, err
	}
	q, ok := it.quizzes[themeIndex]
	if !ok {
		return AnswerResult{}, fmt.Errorf("%w: theme %d of task %s", ErrQuizNotGenerated, themeIndex, taskID)
	}
	if questionIndex < 0 || questionIndex >= len(q.questions) {
		return AnswerResult{}, fmt.Errorf("%w: %d", ErrQuestionNotFound, questionIndex)
	}
	if q.selected[questionIndex] >= 0 {
		return AnswerResult{}, fmt.Errorf("%w: %d", ErrAlreadyAnswered, questionIndex)
	}
	question := q.questions[questionIndex]
	if selected < 0 || selected >= len(question.Choices) {
		return AnswerResult{}, fmt.Errorf("%w: %d of %d choices", ErrInvalidChoice, selected, len(question.Choices))
	}

	writeCtx := context.WithoutCancel(ctx)
	correct := selected == question.CorrectIndex
	attempt := &task.QuizAttempt{
		UserID:        s.ownerID,
		ReviewTaskID:  it.task.ID,
		Question:      question.Question,
		Choices:       task.Choices(question.Choices),
		CorrectIndex:  question.CorrectIndex,
		SelectedIndex: selected,
		IsCorrect:     correct,
		AttemptedAt:   s.engine.clock.Now(),
	}
	if err := s.engine.attempts.Create(writeCtx, attempt); err != nil {
		return AnswerResult{}, fmt.Errorf("attempts.Create(%s) > %w", it.task.ID, err)
	}
	if err := s.checkOpen(); err != nil {
		return AnswerResult{}, err
	}
	q.selected[questionIndex] = selected

	result := AnswerResult{
		Progress:     Progress{TaskStatus: it.task.Status},
		Correct:      correct,
		CorrectIndex: question.CorrectIndex,
		Explanation:  question.Explanation,
	}
	if !q.complete() {
		return result, nil
	}

	progress, err := s.resolveQuiz(writeCtx, it, themeIndex, q)
	if err != nil {
		return result, err
	}
	result.Progress = progress
	result.ThemeResolved = true
	return result, nil
}

// ResolveAnsweredQuiz retries the resolution of a fully answered quiz whose resolution
// failed to be written.
func (s *Session) ResolveAnsweredQuiz(ctx context.Context, taskID string, themeIndex int) (Progress, error) {
	if err := s.checkOpen(); err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, _, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return Progress{}, err
	}
	q, ok := it.quizzes[themeIndex]
	if !ok {
		return Progress{}, fmt.Errorf("%w: theme %d of task %s", ErrQuizNotGenerated, themeIndex, taskID)
	}
	if !q.complete() {
		return Progress{}, fmt.Errorf("%w: theme %d of task %s", ErrQuizIncomplete, themeIndex, taskID)
	}
	return s.resolveQuiz(context.WithoutCancel(ctx), it, themeIndex, q)
}

// SkipTheme sets a theme aside without reviewing it.
func (s *Session) SkipTheme(ctx context.Context, taskID string, themeIndex int) (Progress, error) {
	if err := s.checkOpen(); err != nil {
		return Progress{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, _, err := s.lookup(taskID, themeIndex)
	if err != nil {
		return Progress{}, err
	}
	return s.resolveTheme(context.WithoutCancel(ctx), it, themeIndex, task.OutcomeSkipped)
}

// DiscardTask skips the whole task.
func (s *Session) DiscardTask(ctx context.Context, taskID string) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[taskID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
	}
	if it.task.IsTerminal() {
		return fmt.Errorf("%w: %s is %s", ErrTaskResolved, taskID, it.task.Status)
	}

	updated, err := s.engine.tasks.UpdateStatus(context.WithoutCancel(ctx), taskID, task.StatusSkipped)
	if err != nil {
		return fmt.Errorf("tasks.UpdateStatus(%s, %s) > %w", taskID, task.StatusSkipped, err)
	}
	if !updated {
		slog.Default().Info("review task was already resolved", "task", taskID)
	}
	it.task.Status = task.StatusSkipped
	return nil
}

func (s *Session) resolveQuiz(ctx context.Context, it *item, themeIndex int, q *quiz) (Progress, error) {
	if q.hasWrongAnswer() && !q.rescheduled {
		if err := s.reschedule(ctx, it); err != nil {
			return Progress{}, err
		}
		q.rescheduled = true
	}

	progress, err := s.resolveTheme(ctx, it, themeIndex, task.OutcomeResolved)
	progress.Rescheduled = q.rescheduled
	if err != nil {
		return progress, err
	}
	delete(it.quizzes, themeIndex)
	return progress, nil
}

func (s *Session) reschedule(ctx context.Context, it *item) error {
	if _, err := s.engine.rescheduler.RescheduleFromNow(ctx, it.record.ID, s.ownerID); err != nil {
		return fmt.Errorf("rescheduler.RescheduleFromNow(%s) > %w", it.record.ID, err)
	}
	return s.checkOpen()
}

func (s *Session) resolveTheme(ctx context.Context, it *item, themeIndex int, outcome task.Outcome) (Progress, error) {
	if err := s.engine.resolutions.Create(ctx, task.ThemeResolution{
		TaskID:     it.task.ID,
		ThemeIndex: themeIndex,
		Outcome:    outcome,
	}); err != nil {
		return Progress{TaskStatus: it.task.Status}, fmt.Errorf("resolutions.Create(%s, %d) > %w", it.task.ID, themeIndex, err)
	}
	it.outcomes[themeIndex] = outcome
	if err := s.checkOpen(); err != nil {
		return Progress{TaskStatus: it.task.Status}, err
	}
	if len(it.visible()) > 0 {
		return Progress{TaskStatus: it.task.Status}, nil
	}
	return s.finalize(ctx, it)
}

// finalize completes a task whose themes are all resolved or skipped.
func (s *Session) finalize(ctx context.Context, it *item) (Progress, error) {
	updated, err := s.engine.tasks.UpdateStatus(ctx, it.task.ID, task.StatusCompleted)
	if err != nil {
		return Progress{TaskStatus: it.task.Status}, fmt.Errorf("tasks.UpdateStatus(%s, %s) > %w", it.task.ID, task.StatusCompleted, err)
	}
	if !updated {
		slog.Default().Info("review task was already resolved", "task", it.task.ID)
	}
	it.task.Status = task.StatusCompleted
	return Progress{TaskStatus: it.task.Status}, nil
}
