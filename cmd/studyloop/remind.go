package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/studyloop/internal/reminder"
)

func newRemindCommand() *cobra.Command {
	var once bool
	command := &cobra.Command{
		Use:   "remind",
		Short: "Remind learners of due reviews on the configured cron schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer func() {
				_ = a.Close()
			}()

			r := reminder.NewReminder(a.tasks, reminder.LogNotifier{}, a.clock)
			if once {
				notified, err := r.CheckDue(cmd.Context())
				if err != nil {
					return fmt.Errorf("reminder.CheckDue() > %w", err)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reminded %d learners\n", notified)
				return nil
			}
			if !a.cfg.Reminder.Enabled {
				return fmt.Errorf("reminder.enabled is false in the configuration")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
			defer cancel()
			if err := r.Start(ctx, a.cfg.Reminder.Cron); err != nil {
				return fmt.Errorf("reminder.Start() > %w", err)
			}
			defer r.Stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Reminding on %q, press Ctrl+C to stop\n", a.cfg.Reminder.Cron)
			<-ctx.Done()
			return nil
		},
	}
	command.Flags().BoolVar(&once, "once", false, "check due reviews once and exit")
	return command
}
