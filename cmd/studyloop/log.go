package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyloop/internal/schedule"
	"github.com/at-ishikawa/studyloop/internal/studyday"
	"github.com/at-ishikawa/studyloop/internal/studylog"
)

func newLogCommand() *cobra.Command {
	logCommand := &cobra.Command{
		Use:   "log",
		Short: "Study log commands",
	}

	logCommand.AddCommand(newLogAddCommand())
	logCommand.AddCommand(newLogEditCommand())
	logCommand.AddCommand(newLogImportCommand())
	logCommand.AddCommand(newLogMergeCommand())
	return logCommand
}

// parseDate returns the boundary instant of a YYYY-MM-DD study day, or the zero time for "".
func parseDate(clock *studyday.Clock, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := studyday.ParseDayKey(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: %w", value, err)
	}
	return clock.Instant(day), nil
}

func newLogAddCommand() *cobra.Command {
	var (
		subject  string
		minutes  string
		note     string
		date     string
		bookID   string
		cards    bool
		adaptive bool
	)
	command := &cobra.Command{
		Use:   "add",
		Short: "Log a study session and schedule its reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			parsedMinutes, err := studylog.ParseMinutes(minutes)
			if err != nil {
				return err
			}
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()
			startedAt, err := parseDate(a.clock, date)
			if err != nil {
				return err
			}

			kind := schedule.KindNote
			if cards {
				kind = schedule.KindCard
			}
			record, tasks, err := a.studyLogs.Log(cmd.Context(), studylog.LogInput{
				UserID:          userID,
				Subject:         subject,
				ReferenceBookID: bookID,
				Minutes:         parsedMinutes,
				StartedAt:       startedAt,
				Note:            note,
				Kind:            kind,
				Adaptive:        adaptive,
			})
			if err != nil {
				return fmt.Errorf("studyLogs.Log() > %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Logged %s (%d min) as %s\n", record.Subject, record.StudyMinutes, record.ID)
			for _, t := range tasks {
				_, _ = fmt.Fprintf(out, "  review on %s\n", a.clock.StudyDay(t.DueAt))
			}
			return nil
		},
	}

	command.Flags().StringVar(&subject, "subject", "", "subject of the session")
	command.Flags().StringVar(&minutes, "minutes", "", "study minutes")
	command.Flags().StringVar(&note, "note", "", "what you learned, one theme per line")
	command.Flags().StringVar(&date, "date", "", "study day as YYYY-MM-DD (default today)")
	command.Flags().StringVar(&bookID, "book", "", "reference book id")
	command.Flags().BoolVar(&cards, "cards", false, "schedule with the long table for review cards")
	command.Flags().BoolVar(&adaptive, "adaptive", false, "schedule a single adaptive review instead of a table")
	_ = command.MarkFlagRequired("subject")
	_ = command.MarkFlagRequired("minutes")
	return command
}

func newLogEditCommand() *cobra.Command {
	var (
		subject string
		minutes string
		note    string
		date    string
	)
	command := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a study log",
		Args:  cobra.ExactArgs(1),
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

			var input studylog.EditInput
			flags := cmd.Flags()
			if flags.Changed("subject") {
				input.Subject = &subject
			}
			if flags.Changed("minutes") {
				parsed, err := studylog.ParseMinutes(minutes)
				if err != nil {
					return err
				}
				input.Minutes = &parsed
			}
			if flags.Changed("note") {
				input.Note = &note
			}
			if flags.Changed("date") {
				startedAt, err := parseDate(a.clock, date)
				if err != nil {
					return err
				}
				input.StartedAt = &startedAt
			}

			record, tasks, err := a.studyLogs.Edit(cmd.Context(), userID, args[0], input)
			if err != nil {
				return fmt.Errorf("studyLogs.Edit() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated %s, %d reviews scheduled\n", record.ID, len(tasks))
			return nil
		},
	}

	command.Flags().StringVar(&subject, "subject", "", "subject of the session")
	command.Flags().StringVar(&minutes, "minutes", "", "study minutes")
	command.Flags().StringVar(&note, "note", "", "what you learned, one theme per line")
	command.Flags().StringVar(&date, "date", "", "study day as YYYY-MM-DD")
	return command
}

func newLogImportCommand() *cobra.Command {
	importCfg := studylog.DefaultImportConfig()
	var cards bool
	command := &cobra.Command{
		Use:   "import <file.xlsx>",
		Short: "Back-fill study logs from a spreadsheet",
		Args:  cobra.ExactArgs(1),
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

			importCfg.FilePath = args[0]
			if cards {
				importCfg.Kind = schedule.KindCard
			}
			result, err := a.studyLogs.ImportXLSX(cmd.Context(), importCfg, userID)
			if err != nil {
				return fmt.Errorf("studyLogs.ImportXLSX() > %w", err)
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Processed %d rows: %d logs created, %d reviews scheduled\n",
				result.TotalProcessed, result.Created, result.Scheduled)
			for _, e := range result.Errors {
				_, _ = fmt.Fprintf(out, "  %s\n", e)
			}
			return nil
		},
	}

	command.Flags().StringVar(&importCfg.SheetName, "sheet", importCfg.SheetName, "sheet name")
	command.Flags().IntVar(&importCfg.StartRow, "start-row", importCfg.StartRow, "first data row (1-based)")
	command.Flags().BoolVar(&cards, "cards", false, "schedule with the long table for review cards")
	return command
}

func newLogMergeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <id>",
		Short: "Merge the other logs of the same day and subject into a log",
		Args:  cobra.ExactArgs(1),
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

			record, merged, err := a.studyLogs.MergeSameDay(cmd.Context(), userID, args[0])
			if err != nil {
				return fmt.Errorf("studyLogs.MergeSameDay() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Merged %d logs into %s (%d min)\n", merged, record.ID, record.StudyMinutes)
			return nil
		},
	}
}

func newBookCommand() *cobra.Command {
	bookCommand := &cobra.Command{
		Use:   "book",
		Short: "Reference book commands",
	}
	bookCommand.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Register a reference book",
		Args:  cobra.ExactArgs(1),
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

			book := &studylog.ReferenceBook{UserID: userID, Title: args[0]}
			if err := a.records.CreateBook(cmd.Context(), book); err != nil {
				return fmt.Errorf("records.CreateBook() > %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %s as %s\n", book.Title, book.ID)
			return nil
		},
	})
	return bookCommand
}
