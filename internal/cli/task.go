package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/spf13/cobra"
)

// newNewCommand creates the new command for creating tasks.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name string
		Info string
		Note string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task",
		Long: `Create a new task. The task starts idle with no hours spent.

Examples:
  # Create a task
  tasktimer new --name "Write report"

  # Create a task with a description and a first note
  tasktimer new --name "Write report" --info "Q3 numbers" --note "ask finance for data"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.NewTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.NewTaskInput{
				Caller: caller,
				Name:   opts.Name,
				Info:   opts.Info,
				Note:   opts.Note,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task #%d: %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "Task name (required)")
	cmd.Flags().StringVar(&opts.Info, "info", "", "Task description")
	cmd.Flags().StringVar(&opts.Note, "note", "", "Initial note")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		All  bool
		JSON bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `Display idle and running tasks.

Use --all to also show completed tasks.

Output columns:
  ID, STATE, HOURS, ELAPSED, CREATED, NAME

ELAPSED is the length of the running session (only for running tasks).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ListTasksUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListTasksInput{
				Caller:           caller,
				IncludeCompleted: opts.All,
			})
			if err != nil {
				return err
			}

			if opts.JSON {
				list := jsonTaskList{Active: toJSONTasks(out.Active)}
				if opts.All {
					list.Completed = toJSONTasks(out.Completed)
				}
				return writeJSON(cmd.OutOrStdout(), list)
			}

			printTaskList(cmd.OutOrStdout(), out.Active)
			if opts.All && len(out.Completed) > 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "\nCompleted:")
				printTaskList(cmd.OutOrStdout(), out.Completed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "Include completed tasks")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

// printTaskList prints task summaries as an aligned table.
func printTaskList(w io.Writer, tasks []usecase.TaskSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tSTATE\tHOURS\tELAPSED\tCREATED\tNAME")

	for _, s := range tasks {
		elapsed := "-"
		if s.Task.IsRunning() {
			elapsed = domain.FormatElapsed(s.Elapsed)
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.Task.ID,
			s.Task.State(),
			domain.FormatHours(s.Task.HoursSpent),
			elapsed,
			s.Task.CreatedAt.Format(domain.DateLayout),
			s.Task.Name,
		)
	}
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details and notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			caller, err := resolveCaller(cmd, c)
			if err != nil {
				return err
			}

			uc := c.ShowTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowTaskInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			if asJSON {
				task := toJSONTask(out.Task, out.Elapsed)
				task.Notes = make([]jsonNote, 0, len(out.Notes))
				for _, n := range out.Notes {
					task.Notes = append(task.Notes, jsonNote{Created: n.CreatedAt, Text: n.Text, ID: n.ID, Done: n.Done})
				}
				return writeJSON(cmd.OutOrStdout(), task)
			}
			printTaskDetails(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

// printTaskDetails prints a task with its notes.
func printTaskDetails(w io.Writer, out *usecase.ShowTaskOutput) {
	task := out.Task
	_, _ = fmt.Fprintf(w, "# %d: %s\n\n", task.ID, task.Name)
	_, _ = fmt.Fprintf(w, "State: %s\n", task.State().Display())
	_, _ = fmt.Fprintf(w, "Hours: %s\n", domain.FormatHours(task.HoursSpent))
	if task.IsRunning() {
		_, _ = fmt.Fprintf(w, "Session: %s\n", domain.FormatElapsed(out.Elapsed))
	}
	if task.Owner != "" {
		_, _ = fmt.Fprintf(w, "Owner: %s\n", task.Owner)
	}
	_, _ = fmt.Fprintf(w, "Created: %s\n", task.CreatedAt.Format(domain.DateLayout))
	if task.CompletedAt != nil {
		_, _ = fmt.Fprintf(w, "Completed: %s\n", task.CompletedAt.Format(domain.DateLayout))
	}

	if task.Info != "" {
		_, _ = fmt.Fprintf(w, "\n%s\n", task.Info)
	}

	if len(out.Notes) > 0 {
		_, _ = fmt.Fprintln(w, "\nNotes:")
		printNotes(w, out.Notes)
	}
}

// newEditCommand creates the edit command for editing task fields.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Name  string
		Hours string
		Info  string
		Note  string
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit task fields",
		Long: `Edit an existing task's name, accumulated hours or description,
and optionally append a note.

Only the flags given are applied. A blank --name, --hours or --info
leaves the field unchanged.

Examples:
  # Rename a task
  tasktimer edit 1 --name "Write final report"

  # Correct the accumulated hours
  tasktimer edit 1 --hours 2.5

  # Replace the description and add a note
  tasktimer edit 1 --info "Q3 only" --note "scope reduced"`,
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

			in := usecase.EditTaskInput{
				Caller: caller,
				TaskID: taskID,
			}
			if cmd.Flags().Changed("name") {
				in.Name = &opts.Name
			}
			if cmd.Flags().Changed("hours") {
				in.Hours = &opts.Hours
			}
			if cmd.Flags().Changed("info") {
				in.Info = &opts.Info
			}
			if cmd.Flags().Changed("note") {
				in.Note = &opts.Note
			}

			uc := c.EditTaskUseCase()
			out, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if !out.Changed && out.Note == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task #%d unchanged\n", out.Task.ID)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task #%d: %s (%s)\n",
				out.Task.ID, out.Task.Name, domain.FormatHours(out.Task.HoursSpent))
			if out.Note != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added note #%d\n", out.Note.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "New task name")
	cmd.Flags().StringVar(&opts.Hours, "hours", "", "Accumulated hours override")
	cmd.Flags().StringVar(&opts.Info, "info", "", "New description")
	cmd.Flags().StringVar(&opts.Note, "note", "", "Note to append")

	return cmd
}

// newDeleteCommand creates the delete command.
func newDeleteCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task and its notes",
		Long: `Delete a task from the store. All of the task's notes are deleted with it.

Examples:
  # Delete task by ID
  tasktimer delete 1

  # Delete task using # prefix
  tasktimer rm "#1"`,
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

			uc := c.DeleteTaskUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.DeleteTaskInput{
				Caller: caller,
				TaskID: taskID,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task #%d: %s\n", out.Task.ID, out.Task.Name)
			return nil
		},
	}

	return cmd
}

// jsonNote is the --json form of a note.
type jsonNote struct {
	Created time.Time `json:"created"`
	Text    string    `json:"text"`
	ID      int       `json:"id"`
	Done    bool      `json:"done"`
}

// jsonTask is the --json form of a task.
type jsonTask struct {
	Created        time.Time    `json:"created"`
	Completed      *time.Time   `json:"completed,omitempty"`
	Name           string       `json:"name"`
	Owner          string       `json:"owner,omitempty"`
	Info           string       `json:"info,omitempty"`
	State          domain.State `json:"state"`
	Notes          []jsonNote   `json:"notes,omitempty"`
	HoursSpent     float64      `json:"hours_spent"`
	ElapsedSeconds float64      `json:"elapsed_seconds"`
	ID             int          `json:"id"`
}

// jsonTaskList is the --json form of the task list.
type jsonTaskList struct {
	Active    []jsonTask `json:"active"`
	Completed []jsonTask `json:"completed,omitempty"`
}

func toJSONTask(task *domain.Task, elapsed float64) jsonTask {
	return jsonTask{
		Created:        task.CreatedAt,
		Completed:      task.CompletedAt,
		Name:           task.Name,
		Owner:          task.Owner,
		Info:           task.Info,
		State:          task.State(),
		HoursSpent:     task.HoursSpent,
		ElapsedSeconds: elapsed,
		ID:             task.ID,
	}
}

func toJSONTasks(summaries []usecase.TaskSummary) []jsonTask {
	tasks := make([]jsonTask, 0, len(summaries))
	for _, s := range summaries {
		tasks = append(tasks, toJSONTask(s.Task, s.Elapsed))
	}
	return tasks
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
