package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/studyloop/internal/cli"
	"github.com/at-ishikawa/studyloop/internal/review"
)

func newReviewCommand() *cobra.Command {
	reviewCommand := &cobra.Command{
		Use:   "review",
		Short: "Review commands",
	}

	reviewCommand.AddCommand(newReviewListCommand())
	reviewCommand.AddCommand(newReviewStartCommand())
	reviewCommand.AddCommand(newReviewSkipThemeCommand())
	reviewCommand.AddCommand(newReviewDiscardCommand())
	return reviewCommand
}

func newReviewListCommand() *cobra.Command {
	var format string
	command := &cobra.Command{
		Use:   "list",
		Short: "List due reviews grouped by material",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unsupported format %q, use text or yaml", format)
			}
			if err := requireUser(); err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			engine, closeEngine := a.newEngine()
			defer closeEngine()
			groups, err := engine.NewSession(userID).Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("session.Load() > %w", err)
			}

			if format == "yaml" {
				encoder := yaml.NewEncoder(cmd.OutOrStdout())
				defer func() {
					_ = encoder.Close()
				}()
				return encoder.Encode(groups)
			}
			printGroups(cmd.OutOrStdout(), groups)
			return nil
		},
	}
	command.Flags().StringVar(&format, "format", "text", "output format: text or yaml")
	return command
}

func printGroups(w io.Writer, groups []review.Group) {
	if len(groups) == 0 {
		_, _ = fmt.Fprintln(w, "No reviews are due.")
		return
	}
	for _, g := range groups {
		_, _ = fmt.Fprintf(w, "%s\n", g.Subject)
		for _, b := range g.Buckets {
			for _, t := range b.Tasks {
				_, _ = fmt.Fprintf(w, "  %s studied on %s\n", t.Task.ID, b.Day)
				for _, th := range t.Visible {
					_, _ = fmt.Fprintf(w, "    [%d] (%s) %s\n", th.Index, th.Mode(), th.Text)
				}
			}
		}
	}
}

func newReviewStartCommand() *cobra.Command {
	var questionCount int
	command := &cobra.Command{
		Use:   "start",
		Short: "Start an interactive review session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			engine, closeEngine := a.newEngine()
			defer closeEngine()
			reviewCLI := cli.NewReviewCLI(engine.NewSession(userID), questionCount, os.Stdin, cmd.OutOrStdout())
			count, err := reviewCLI.Load(cmd.Context())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Starting a review session with %d themes\n", count)
			return reviewCLI.Run(cmd.Context())
		},
	}
	command.Flags().IntVar(&questionCount, "questions", 0, "questions per quiz theme")
	return command
}

func newReviewSkipThemeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "skip-theme <task> <index>",
		Short: "Skip one theme of a due review",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			themeIndex, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid theme index %q: %w", args[1], err)
			}
			return withLoadedSession(cmd, func(session *review.Session) error {
				progress, err := session.SkipTheme(cmd.Context(), args[0], themeIndex)
				if err != nil {
					return fmt.Errorf("session.SkipTheme() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Skipped theme %d, review is %s\n", themeIndex, progress.TaskStatus)
				return nil
			})
		},
	}
}

func newReviewDiscardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "discard <task>",
		Short: "Skip a whole due review",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLoadedSession(cmd, func(session *review.Session) error {
				if err := session.DiscardTask(cmd.Context(), args[0]); err != nil {
					return fmt.Errorf("session.DiscardTask() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Discarded %s\n", args[0])
				return nil
			})
		},
	}
}

func withLoadedSession(cmd *cobra.Command, fn func(session *review.Session) error) error {
	if err := requireUser(); err != nil {
		return err
	}
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() {
		_ = a.Close()
	}()

	engine, closeEngine := a.newEngine()
	defer closeEngine()
	session := engine.NewSession(userID)
	defer session.Close()
	if _, err := session.Load(cmd.Context()); err != nil {
		return fmt.Errorf("session.Load() > %w", err)
	}
	return fn(session)
}
