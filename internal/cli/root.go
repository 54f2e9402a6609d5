// Package cli provides the command-line interface for tasktimer.
package cli

import (
	"fmt"
	"os"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/spf13/cobra"
)

// EnvUser supplies the caller identity when --user is not given.
const EnvUser = "TASKTIMER_USER"

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupTimer = "timer"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for tasktimer.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasktimer",
		Short: "Track time spent on tasks",
		Long: `tasktimer keeps a list of named tasks, times work sessions on them
and accumulates the hours spent. Each task can carry notes that are
toggled done independently of the task.

Run without arguments to open the interactive task list.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}
			return launchTUIFunc(c, caller)
		},
	}

	root.PersistentFlags().String("user", "", "Caller identity in multi-user mode (default $"+EnvUser+")")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupTimer, Title: "Timer Commands:"},
	)

	setup := []*cobra.Command{
		newInitCommand(c),
		newConfigCommand(c),
		newMigrateCommand(c),
	}
	tasks := []*cobra.Command{
		newNewCommand(c),
		newListCommand(c),
		newShowCommand(c),
		newEditCommand(c),
		newDeleteCommand(c),
		newNoteCommand(c),
		newExportCommand(c),
		newLogsCommand(c),
	}
	timers := []*cobra.Command{
		newStartCommand(c),
		newEndCommand(c),
		newCompleteCommand(c),
	}

	for _, cmd := range setup {
		cmd.GroupID = groupSetup
		root.AddCommand(cmd)
	}
	for _, cmd := range tasks {
		cmd.GroupID = groupTask
		root.AddCommand(cmd)
	}
	for _, cmd := range timers {
		cmd.GroupID = groupTimer
		root.AddCommand(cmd)
	}

	return root
}

// resolveCaller determines the caller identity from --user, then $TASKTIMER_USER,
// then the configured name. It is empty in single-user mode.
func resolveCaller(cmd *cobra.Command, c *app.Container) (string, error) {
	explicit := os.Getenv(EnvUser)
	if f := cmd.Flag("user"); f != nil && f.Changed {
		explicit = f.Value.String()
	}
	return c.ResolveCaller(explicit)
}
