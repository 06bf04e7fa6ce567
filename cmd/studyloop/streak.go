package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyloop/internal/streak"
)

func newStreakCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show study streaks and minutes",
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

			today := a.clock.Today()
			records, err := a.records.FindByUser(cmd.Context(), userID, time.Unix(0, 0), a.clock.Instant(today+1))
			if err != nil {
				return fmt.Errorf("records.FindByUser() > %w", err)
			}

			result := streak.Calculate(streak.FromRecords(a.clock, records), today)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Current streak: %d days\n", result.Current)
			_, _ = fmt.Fprintf(out, "Longest streak: %d days\n", result.Longest)
			_, _ = fmt.Fprintf(out, "This week: %d min\n", streak.MinutesSince(a.clock, records, a.clock.StartOfWeek(0)))
			_, _ = fmt.Fprintf(out, "This month: %d min\n", streak.MinutesSince(a.clock, records, a.clock.StartOfMonth(0)))
			return nil
		},
	}
}
