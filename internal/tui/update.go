package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/tasktimer/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgTick:
		// Redraw for live session times
		return m, tick()

	case MsgTasksLoaded:
		m.active = msg.Active
		m.completed = msg.Completed
		m.updateTaskList()
		return m, nil

	case MsgTaskStarted:
		m.err = nil
		m.status = fmt.Sprintf("Started task #%d", msg.TaskID)
		return m, m.loadTasks()

	case MsgTaskEnded:
		m.err = nil
		m.status = fmt.Sprintf("Ended task #%d after %s", msg.TaskID, domain.FormatElapsed(msg.Delta))
		if msg.Clamped {
			m.status += " (clock went backwards, credited zero)"
		}
		return m, m.loadTasks()

	case MsgTaskCompleted:
		m.resetConfirm()
		m.status = fmt.Sprintf("Completed task #%d", msg.TaskID)
		return m, m.loadTasks()

	case MsgTaskCreated:
		m.mode = ModeNormal
		m.nameInput.Reset()
		m.nameInput.Blur()
		m.status = fmt.Sprintf("Created task #%d", msg.TaskID)
		return m, m.loadTasks()

	case MsgTaskDeleted:
		m.resetConfirm()
		m.status = fmt.Sprintf("Deleted task #%d", msg.TaskID)
		return m, m.loadTasks()

	case MsgError:
		m.err = msg.Err
		m.status = ""
		m.resetConfirm()
		if m.mode == ModeInputName {
			m.mode = ModeNormal
			m.nameInput.Blur()
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) resetConfirm() {
	if m.mode == ModeConfirm {
		m.mode = ModeNormal
	}
	m.confirmAction = ConfirmNone
	m.confirmTaskID = 0
}

// handleKeyMsg dispatches key presses by mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeInputName:
		return m.handleInputNameMode(msg)
	case ModeHelp:
		// Any key closes help
		m.mode = ModeNormal
		return m, nil
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = nil
		m.status = ""
		return m, m.loadTasks()

	case key.Matches(msg, m.keys.ToggleShowAll):
		m.showAll = !m.showAll
		m.updateTaskList()
		return m, nil

	case key.Matches(msg, m.keys.New):
		m.mode = ModeInputName
		m.nameInput.Reset()
		return m, m.nameInput.Focus()

	case key.Matches(msg, m.keys.Start):
		if task := m.SelectedTask(); task != nil {
			return m, m.startTimer(task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.End):
		if task := m.SelectedTask(); task != nil {
			return m, m.endTimer(task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		if task := m.SelectedTask(); task != nil {
			return m, m.completeTask(task.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if task := m.SelectedTask(); task != nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			m.confirmTaskID = task.ID
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.taskList, cmd = m.taskList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !key.Matches(msg, m.keys.Confirm) {
		// Anything but y cancels
		m.resetConfirm()
		return m, nil
	}

	taskID := m.confirmTaskID
	switch m.confirmAction {
	case ConfirmDelete:
		return m, m.deleteTask(taskID)
	case ConfirmComplete:
		return m, m.completeTask(taskID)
	case ConfirmNone:
	}
	m.resetConfirm()
	return m, nil
}

func (m *Model) handleInputNameMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.nameInput.Reset()
		m.nameInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			m.err = domain.ErrEmptyName
			return m, nil
		}
		return m, m.createTask(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}
