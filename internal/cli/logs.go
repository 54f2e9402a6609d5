package cli

import (
	"fmt"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [task-id]",
		Short: "Show the activity log",
		Long: `Show the global activity log, or the log of one task.

Examples:
  # Show the last 20 global entries
  tasktimer logs -n 20

  # Show the full history of task #3
  tasktimer logs 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogsInput{Lines: lines}
			if len(args) == 1 {
				taskID, err := parseTaskID(args[0])
				if err != nil {
					return err
				}
				in.TaskID = taskID
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}
			in.Caller = caller

			uc := c.ShowLogsUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}
