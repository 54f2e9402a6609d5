package cli

import (
	"fmt"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the task store",
		Long: `Initialize the tasktimer data directory.

This command creates the data directory with:
- the task store (tasks.db, or tasks.json with [store] backend = "json")
- logs/: directory for activity logs

Running init again on an existing store is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				DataDir:   c.Config.DataDir,
				StorePath: c.Config.StorePath,
			})
			if err != nil {
				return err
			}

			if out.AlreadyInitialized {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Store already initialized at %s\n", out.StorePath)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Initialized tasktimer store at %s\n", out.StorePath)
			return nil
		},
	}
}
