package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/runoshun/tasktimer/internal/domain"
)

type taskItem struct {
	task *domain.Task
}

func (t taskItem) FilterValue() string {
	return t.task.Name
}

// taskDelegate renders one task per line. Running tasks show the live
// session time read from mono at render time.
type taskDelegate struct {
	mono   domain.MonoClock
	styles Styles
}

func newTaskDelegate(styles Styles, mono domain.MonoClock) taskDelegate {
	return taskDelegate{styles: styles, mono: mono}
}

func (d taskDelegate) Height() int {
	return 1
}

func (d taskDelegate) Spacing() int {
	return 0
}

func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	_, _ = fmt.Fprint(w, d.renderLine(ti.task, index == m.Index(), m.Width()))
}

func (d taskDelegate) renderLine(task *domain.Task, selected bool, width int) string {
	state := task.State()

	indicator := " "
	nameStyle := d.styles.TaskName
	if selected {
		indicator = ">"
		nameStyle = d.styles.TaskNameSelected
	}

	elapsed := strings.Repeat(" ", 8)
	if task.IsRunning() && d.mono != nil {
		elapsed = domain.FormatElapsed(task.Elapsed(d.mono.Reading()))
	}

	prefix := fmt.Sprintf("%s %3d  %s %-9s  %8s  %s  ",
		indicator, task.ID, StateIcon(state), state.Display(),
		domain.FormatHours(task.HoursSpent), elapsed)

	name := strings.ReplaceAll(task.Name, "\n", " ")
	if maxName := width - runewidth.StringWidth(prefix) - 2; maxName > 10 && runewidth.StringWidth(name) > maxName {
		name = runewidth.Truncate(name, maxName, "...")
	}

	return d.styles.SelectionIndicator.Render(indicator) + " " +
		d.styles.TaskID.Render(fmt.Sprintf("%3d", task.ID)) + "  " +
		d.styles.StateStyle(state).Render(fmt.Sprintf("%s %-9s", StateIcon(state), state.Display())) + "  " +
		d.styles.Hours.Render(fmt.Sprintf("%8s", domain.FormatHours(task.HoursSpent))) + "  " +
		d.styles.Elapsed.Render(elapsed) + "  " +
		nameStyle.Render(name)
}
