package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase"
)

// tickInterval is how often running session times are redrawn.
const tickInterval = time.Second

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	err       error

	// State (slices - contain pointers)
	active    []usecase.TaskSummary
	completed []usecase.TaskSummary

	// Components (structs with pointers)
	keys      KeyMap
	styles    Styles
	help      help.Model
	taskList  list.Model
	nameInput textinput.Model

	caller string
	status string

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	width         int
	height        int
	confirmTaskID int
	showAll       bool
}

// New creates a new TUI Model acting as caller.
func New(c *app.Container, caller string) *Model {
	ni := textinput.New()
	ni.Placeholder = "Task name"
	ni.CharLimit = 200

	styles := DefaultStyles()
	taskList := list.New([]list.Item{}, newTaskDelegate(styles, c.Mono), 0, 0)
	taskList.SetShowTitle(false)
	taskList.SetShowStatusBar(false)
	taskList.SetShowHelp(false)
	taskList.SetShowPagination(false)
	taskList.SetFilteringEnabled(false)
	taskList.DisableQuitKeybindings()

	return &Model{
		container: c,
		caller:    caller,
		mode:      ModeNormal,
		keys:      DefaultKeyMap(),
		styles:    styles,
		help:      help.New(),
		taskList:  taskList,
		nameInput: ni,
	}
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return MsgTick{}
	})
}

// loadTasks returns a command that loads tasks from the store.
func (m *Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ListTasksUseCase().Execute(context.Background(), usecase.ListTasksInput{
			Caller:           m.caller,
			IncludeCompleted: true,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTasksLoaded{Active: out.Active, Completed: out.Completed}
	}
}

// SelectedTask returns the currently selected task, or nil if none.
func (m *Model) SelectedTask() *domain.Task {
	item, ok := m.taskList.SelectedItem().(taskItem)
	if !ok {
		return nil
	}
	return item.task
}

// updateTaskList rebuilds the list items, keeping the selection on the same task.
func (m *Model) updateTaskList() {
	selectedID := 0
	if task := m.SelectedTask(); task != nil {
		selectedID = task.ID
	}

	visible := m.active
	if m.showAll {
		visible = append(append([]usecase.TaskSummary{}, m.active...), m.completed...)
	}

	items := make([]list.Item, len(visible))
	selectIndex := 0
	for i, s := range visible {
		items[i] = taskItem{task: s.Task}
		if s.Task.ID == selectedID {
			selectIndex = i
		}
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(selectIndex)
	}
}

// updateLayoutSizes resizes components after a window change.
func (m *Model) updateLayoutSizes() {
	// Header, footer and padding
	listHeight := m.height - 8
	if listHeight < 3 {
		listHeight = 3
	}
	m.taskList.SetSize(m.width-4, listHeight)
	m.nameInput.Width = m.width - 20
}

func (m *Model) startTimer(taskID int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.StartTimerUseCase().Execute(context.Background(), usecase.StartTimerInput{
			Caller: m.caller,
			TaskID: taskID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskStarted{TaskID: taskID}
	}
}

func (m *Model) endTimer(taskID int) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.EndTimerUseCase().Execute(context.Background(), usecase.EndTimerInput{
			Caller: m.caller,
			TaskID: taskID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskEnded{TaskID: taskID, Delta: out.Delta, Clamped: out.Clamped}
	}
}

func (m *Model) completeTask(taskID int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.CompleteTaskUseCase().Execute(context.Background(), usecase.CompleteTaskInput{
			Caller: m.caller,
			TaskID: taskID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCompleted{TaskID: taskID}
	}
}

func (m *Model) deleteTask(taskID int) tea.Cmd {
	return func() tea.Msg {
		_, err := m.container.DeleteTaskUseCase().Execute(context.Background(), usecase.DeleteTaskInput{
			Caller: m.caller,
			TaskID: taskID,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskDeleted{TaskID: taskID}
	}
}

func (m *Model) createTask(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.NewTaskUseCase().Execute(context.Background(), usecase.NewTaskInput{
			Caller: m.caller,
			Name:   name,
		})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgTaskCreated{TaskID: out.Task.ID}
	}
}
