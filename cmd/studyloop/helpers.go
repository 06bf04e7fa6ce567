package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studyloop/internal/config"
	"github.com/at-ishikawa/studyloop/internal/database"
	"github.com/at-ishikawa/studyloop/internal/inference"
	"github.com/at-ishikawa/studyloop/internal/inference/openai"
	"github.com/at-ishikawa/studyloop/internal/review"
	"github.com/at-ishikawa/studyloop/internal/schedule"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
	"github.com/at-ishikawa/studyloop/internal/task"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func requireUser() error {
	if userID == "" {
		return errors.New("--user flag or STUDYLOOP_USER environment variable is required")
	}
	return nil
}

// app wires the repositories and services of one command run.
type app struct {
	cfg         *config.Config
	db          *sqlx.DB
	clock       *studyday.Clock
	records     *studylog.DBRepository
	tasks       *task.DBRepository
	attempts    *task.DBAttemptRepository
	resolutions *task.DBResolutionRepository
	scheduler   *schedule.Scheduler
	studyLogs   *studylog.Service
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	clock, err := studyday.NewClock(cfg.StudyDay.UTCOffset, cfg.StudyDay.CutoffHour)
	if err != nil {
		return nil, fmt.Errorf("studyday.NewClock() > %w", err)
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}

	records := studylog.NewDBRepository(db)
	tasks := task.NewDBRepository(db)
	scheduler := schedule.NewScheduler(clock, tasks, cfg.Schedule, cfg.StudyDay.DueHour)
	return &app{
		cfg:         cfg,
		db:          db,
		clock:       clock,
		records:     records,
		tasks:       tasks,
		attempts:    task.NewDBAttemptRepository(db),
		resolutions: task.NewDBResolutionRepository(db),
		scheduler:   scheduler,
		studyLogs:   studylog.NewService(records, scheduler, clock),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// newEngine builds the review engine. Without an OpenAI key, quiz themes cannot be
// quizzed but flashcards still work.
func (a *app) newEngine() (*review.Engine, func()) {
	var generator inference.QuizGenerator = unavailableQuizGenerator{}
	closeFn := func() {}
	if a.cfg.OpenAI.APIKey != "" {
		client := openai.NewClient(a.cfg.OpenAI)
		generator = client
		closeFn = func() {
			_ = client.Close()
		}
	}
	return review.NewEngine(a.records, a.tasks, a.attempts, a.resolutions, a.scheduler, generator, a.clock), closeFn
}

type unavailableQuizGenerator struct{}

func (unavailableQuizGenerator) GenerateQuiz(context.Context, inference.GenerateQuizRequest) ([]inference.QuizQuestion, error) {
	return nil, errors.New("OPENAI_API_KEY environment variable is required for quizzes")
}
