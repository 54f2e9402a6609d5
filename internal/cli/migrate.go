package cli

import (
	"fmt"
	"sort"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newMigrateCommand creates the migrate command.
func newMigrateCommand(c *app.Container) *cobra.Command {
	var opts struct {
		To   string
		Path string
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy the task store into another backend",
		Long: `Copy every task and note from the current store into a new store.

The destination must be empty. Task and note IDs are reassigned in
order; running sessions stay running. Afterwards set [store] backend
(and path, if given) in the config to switch over.

Examples:
  # Move from the JSON file to SQLite
  tasktimer migrate --to sqlite

  # Copy into a specific file
  tasktimer migrate --to json --path /tmp/backup.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc, err := c.MigrateStoreUseCase(opts.To, opts.Path)
			if err != nil {
				return err
			}

			out, err := uc.Execute(cmd.Context(), usecase.MigrateStoreInput{})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Migrated %d tasks and %d notes to %s\n", out.Tasks, out.Notes, opts.To)

			ids := make([]int, 0, len(out.IDMap))
			for id := range out.IDMap {
				ids = append(ids, id)
			}
			sort.Ints(ids)
			for _, id := range ids {
				if out.IDMap[id] != id {
					_, _ = fmt.Fprintf(w, "  task #%d -> #%d\n", id, out.IDMap[id])
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.To, "to", "", "Destination backend: sqlite or json (required)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "Destination store file (default: backend's file in the data dir)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
