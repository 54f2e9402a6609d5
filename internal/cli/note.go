package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newNoteCommand creates the note command group.
func newNoteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "note",
		Short: "Manage task notes",
		Long: `Manage the notes attached to a task.

Notes carry a done flag that is toggled independently of the task's state.`,
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newNoteAddCommand(c),
		newNoteListCommand(c),
		newNoteToggleCommand(c),
		newNoteEditCommand(c),
		newNoteDeleteCommand(c),
	)

	return cmd
}

func newNoteAddCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "add <task-id> <text>...",
		Short: "Add a note to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.AddNoteUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.AddNoteInput{
				Caller: caller,
				TaskID: taskID,
				Text:   strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added note #%d to task #%d\n", out.Note.ID, out.Note.TaskID)
			return nil
		},
	}
}

func newNoteListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "list <task-id>",
		Aliases: []string{"ls"},
		Short:   "List the notes of a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ListNotesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListNotesInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			if len(out.Notes) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No notes for task #%d\n", taskID)
				return nil
			}
			printNotes(cmd.OutOrStdout(), out.Notes)
			return nil
		},
	}
}

func newNoteToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <note-id>",
		Short: "Flip the done flag of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ToggleNoteUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ToggleNoteInput{
				Caller: caller,
				NoteID: noteID,
			})
			if err != nil {
				return err
			}

			state := "open"
			if out.Note.Done {
				state = "done"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Note #%d is now %s\n", out.Note.ID, state)
			return nil
		},
	}
}

func newNoteEditCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <note-id> <text>...",
		Short: "Replace the text of a note",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.EditNoteUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.EditNoteInput{
				Caller: caller,
				NoteID: noteID,
				Text:   strings.Join(args[1:], " "),
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated note #%d\n", out.Note.ID)
			return nil
		},
	}
}

func newNoteDeleteCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <note-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noteID, err := parseNoteID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.DeleteNoteUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteNoteInput{
				Caller: caller,
				NoteID: noteID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted note #%d\n", out.Note.ID)
			return nil
		},
	}
}

// printNotes prints notes as a checklist.
func printNotes(w io.Writer, notes []*domain.Note) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer func() { _ = tw.Flush() }()

	for _, n := range notes {
		mark := "[ ]"
		if n.Done {
			mark = "[x]"
		}
		_, _ = fmt.Fprintf(tw, "%s\t#%d\t%s\t%s\n", mark, n.ID, n.CreatedAt.Format(domain.DateLayout), n.Text)
	}
}
