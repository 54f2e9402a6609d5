package tui

import "github.com/runoshun/tasktimer/internal/usecase"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksLoaded is sent when tasks are loaded from the store.
type MsgTasksLoaded struct {
	Active    []usecase.TaskSummary
	Completed []usecase.TaskSummary
}

func (MsgTasksLoaded) sealed() {}

// MsgTaskStarted is sent when a session is started.
type MsgTaskStarted struct {
	TaskID int
}

func (MsgTaskStarted) sealed() {}

// MsgTaskEnded is sent when a session is ended.
type MsgTaskEnded struct {
	TaskID  int
	Delta   float64
	Clamped bool
}

func (MsgTaskEnded) sealed() {}

// MsgTaskCompleted is sent when a task is completed.
type MsgTaskCompleted struct {
	TaskID int
}

func (MsgTaskCompleted) sealed() {}

// MsgTaskCreated is sent when a new task is created.
type MsgTaskCreated struct {
	TaskID int
}

func (MsgTaskCreated) sealed() {}

// MsgTaskDeleted is sent when a task is deleted.
type MsgTaskDeleted struct {
	TaskID int
}

func (MsgTaskDeleted) sealed() {}

// MsgTick is sent every second to refresh running session times.
type MsgTick struct{}

func (MsgTick) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
