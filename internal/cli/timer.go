package cli

import (
	"fmt"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newStartCommand creates the start command.
func newStartCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start a work session on a task",
		Long: `Start timing a task. The task must be idle: starting a running
or completed task fails without touching the open session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.StartTimerUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.StartTimerInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Started task #%d: %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}
}

// newEndCommand creates the end command.
func newEndCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "end <id>",
		Aliases: []string{"stop"},
		Short:   "End the running session of a task",
		Long: `Stop timing a task and add the session's length to its hours.
The task must be running.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.EndTimerUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.EndTimerInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			if out.Clamped {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: clock went backwards; session credited as zero")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ended task #%d after %s (total %s)\n",
				out.Task.ID, domain.FormatElapsed(out.Delta), domain.FormatHours(out.Task.HoursSpent))
			return nil
		},
	}
}

// newCompleteCommand creates the complete command.
func newCompleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "complete <id>",
		Aliases: []string{"done"},
		Short:   "Mark a task as completed",
		Long: `Mark a task as completed. A running session is ended first and
its time credited. Completed tasks cannot be started again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.CompleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CompleteTaskInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			if out.Clamped {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Warning: clock went backwards; session credited as zero")
			}
			if out.Ended {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ended running session after %s\n", domain.FormatElapsed(out.Delta))
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed task #%d: %s (%s)\n",
				out.Task.ID, out.Task.Name, domain.FormatHours(out.Task.HoursSpent))
			return nil
		},
	}
}
