package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Export formats.
const (
	formatYAML = "yaml"
	formatJSON = "json"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export tasks and notes",
		Long: `Write every visible task with its notes to stdout.

Examples:
  # Export as YAML (default)
  tasktimer export > tasks.yaml

  # Export as JSON
  tasktimer export --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ExportTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ExportTasksInput{Caller: caller})
			if err != nil {
				return err
			}

			return writeExport(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatYAML, "Output format: yaml or json")

	return cmd
}

func writeExport(w io.Writer, format string, out *usecase.ExportTasksOutput) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case formatJSON:
		return writeJSON(w, out)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, formatYAML, formatJSON)
	}
}
