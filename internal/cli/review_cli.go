package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/studyloop/internal/inference"
	"github.com/at-ishikawa/studyloop/internal/review"
	"github.com/at-ishikawa/studyloop/internal/task"
	"github.com/at-ishikawa/studyloop/internal/theme"
)

var errEnd = errors.New("end")

type themeRef struct {
	taskID     string
	themeIndex int
	subject    string
	day        string
}

// ReviewCLI walks a learner through the due themes of a review session one at a time.
type ReviewCLI struct {
	session       *review.Session
	questionCount int
	queue         []themeRef
	stdinReader   *bufio.Reader
	stdoutWriter  io.Writer
	bold          *color.Color
	italic        *color.Color
	green         *color.Color
	red           *color.Color
}

func NewReviewCLI(session *review.Session, questionCount int, stdin io.Reader, stdout io.Writer) *ReviewCLI {
	if questionCount <= 0 {
		questionCount = inference.DefaultQuestionCount
	}
	return &ReviewCLI{
		session:       session,
		questionCount: questionCount,
		stdinReader:   bufio.NewReader(stdin),
		stdoutWriter:  stdout,
		bold:          color.New(color.Bold),
		italic:        color.New(color.Italic),
		green:         color.New(color.FgGreen),
		red:           color.New(color.FgRed),
	}
}

// Load reads the due tasks and queues their pending themes.
func (cli *ReviewCLI) Load(ctx context.Context) (int, error) {
	groups, err := cli.session.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("session.Load() > %w", err)
	}

	cli.queue = nil
	for _, g := range groups {
		for _, b := range g.Buckets {
			for _, t := range b.Tasks {
				for _, th := range t.Visible {
					cli.queue = append(cli.queue, themeRef{
						taskID:     t.Task.ID,
						themeIndex: th.Index,
						subject:    t.Subject,
						day:        t.Day.String(),
					})
				}
			}
		}
	}
	return len(cli.queue), nil
}

// Run repeats Session until every queued theme is reviewed or the process is interrupted.
func (cli *ReviewCLI) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()
	defer cli.session.Close()

	errCh := make(chan error)
	go func() {
		defer close(errCh)

	LOOP:
		for {
			select {
			case <-ctx.Done():
				break LOOP
			default:
			}

			if err := cli.Session(ctx); err != nil {
				if errors.Is(err, errEnd) {
					break
				}
				errCh <- err
				break
			}
		}
	}()
	select {
	case <-ctx.Done():
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error: %w", err)
		}
	}
	return nil
}

// Session reviews the next queued theme.
func (cli *ReviewCLI) Session(ctx context.Context) error {
	if len(cli.queue) == 0 {
		_, _ = fmt.Fprintln(cli.stdoutWriter, "No more themes to review!")
		return errEnd
	}
	ref := cli.queue[0]
	cli.queue = cli.queue[1:]

	view, ok := cli.session.Task(ref.taskID)
	if !ok || view.Task.IsTerminal() || !isVisible(view, ref.themeIndex) {
		return nil
	}
	th := view.Themes[ref.themeIndex]

	_, _ = fmt.Fprintf(cli.stdoutWriter, "\n%s (%s) %d left\n", cli.bold.Sprint(ref.subject), ref.day, len(cli.queue))
	if th.Mode() == theme.ModeFlashcard {
		return cli.flashcard(ctx, ref, th)
	}
	return cli.quiz(ctx, ref, th)
}

func isVisible(view review.TaskView, themeIndex int) bool {
	for _, th := range view.Visible {
		if th.Index == themeIndex {
			return true
		}
	}
	return false
}

func (cli *ReviewCLI) flashcard(ctx context.Context, ref themeRef, th theme.Theme) error {
	card := th.Flashcard()
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Q: %s\n", cli.bold.Sprint(card.Question))
	input, err := cli.prompt("Press Enter to show the answer, s to skip, d to discard the task: ")
	if err != nil {
		return err
	}
	if handled, err := cli.skipOrDiscard(ctx, ref, input); handled || err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cli.stdoutWriter, "A: %s\n", cli.italic.Sprint(card.Answer))
	input, err = cli.prompt("Did you remember it? [y/n]: ")
	if err != nil {
		return err
	}
	rating := review.RatingRemembered
	if !strings.EqualFold(input, "y") {
		rating = review.RatingNotYet
	}

	progress, err := cli.session.RateFlashcard(ctx, ref.taskID, ref.themeIndex, rating)
	if err != nil {
		return fmt.Errorf("session.RateFlashcard() > %w", err)
	}
	if progress.Rescheduled {
		_, _ = cli.red.Fprintln(cli.stdoutWriter, "Not yet. The reviews of this study log start over from tomorrow.")
	} else {
		_, _ = cli.green.Fprintln(cli.stdoutWriter, "Remembered.")
	}
	cli.printStatus(progress)
	return nil
}

func (cli *ReviewCLI) quiz(ctx context.Context, ref themeRef, th theme.Theme) error {
	_, _ = fmt.Fprintf(cli.stdoutWriter, "Theme: %s\n", cli.bold.Sprint(th.Text))
	input, err := cli.prompt("Press Enter to start a quiz, s to skip, d to discard the task: ")
	if err != nil {
		return err
	}
	if handled, err := cli.skipOrDiscard(ctx, ref, input); handled || err != nil {
		return err
	}

	quiz, err := cli.session.GenerateQuiz(ctx, ref.taskID, ref.themeIndex, cli.questionCount)
	if errors.Is(err, review.ErrQuizGeneration) {
		_, _ = cli.red.Fprintf(cli.stdoutWriter, "Could not make a quiz: %v\n", err)
		return nil
	}
	if err != nil {
		return fmt.Errorf("session.GenerateQuiz() > %w", err)
	}

	for i, q := range quiz.Questions {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "\n%d. %s\n", i+1, q.Question)
		for j, choice := range q.Choices {
			_, _ = fmt.Fprintf(cli.stdoutWriter, "  %d) %s\n", j+1, choice)
		}

		selected, err := cli.choose(len(q.Choices))
		if err != nil {
			return err
		}
		result, err := cli.session.AnswerQuestion(ctx, ref.taskID, ref.themeIndex, i, selected)
		if err != nil {
			return fmt.Errorf("session.AnswerQuestion() > %w", err)
		}

		if result.Correct {
			_, _ = fmt.Fprint(cli.stdoutWriter, "✅ ")
			_, _ = cli.green.Fprintln(cli.stdoutWriter, "It's correct.")
		} else {
			_, _ = fmt.Fprint(cli.stdoutWriter, "❌ ")
			_, _ = cli.red.Fprintf(cli.stdoutWriter, "It's wrong. The answer is %s\n", q.Choices[result.CorrectIndex])
		}
		if result.Explanation != "" {
			_, _ = fmt.Fprintf(cli.stdoutWriter, "   Reason: %s\n", result.Explanation)
		}
		if result.ThemeResolved {
			if result.Rescheduled {
				_, _ = cli.red.Fprintln(cli.stdoutWriter, "The reviews of this study log start over from tomorrow.")
			}
			cli.printStatus(result.Progress)
		}
	}
	return nil
}

func (cli *ReviewCLI) skipOrDiscard(ctx context.Context, ref themeRef, input string) (bool, error) {
	switch strings.ToLower(input) {
	case "s":
		progress, err := cli.session.SkipTheme(ctx, ref.taskID, ref.themeIndex)
		if err != nil {
			return true, fmt.Errorf("session.SkipTheme() > %w", err)
		}
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Skipped.")
		cli.printStatus(progress)
		return true, nil
	case "d":
		if err := cli.session.DiscardTask(ctx, ref.taskID); err != nil {
			return true, fmt.Errorf("session.DiscardTask() > %w", err)
		}
		_, _ = fmt.Fprintln(cli.stdoutWriter, "Discarded the review.")
		return true, nil
	}
	return false, nil
}

func (cli *ReviewCLI) printStatus(progress review.Progress) {
	if progress.TaskStatus != "" && progress.TaskStatus != task.StatusPending {
		_, _ = fmt.Fprintf(cli.stdoutWriter, "Review %s.\n", progress.TaskStatus)
	}
}

func (cli *ReviewCLI) choose(count int) (int, error) {
	for {
		input, err := cli.prompt(fmt.Sprintf("Your answer [1-%d]: ", count))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		_, _ = fmt.Fprintf(cli.stdoutWriter, "Type a number from 1 to %d.\n", count)
	}
}

func (cli *ReviewCLI) prompt(message string) (string, error) {
	_, _ = fmt.Fprint(cli.stdoutWriter, message)
	input, err := cli.stdinReader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input == "" {
			return "", errEnd
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("error reading input: %w", err)
		}
	}
	return strings.TrimSpace(input), nil
}
