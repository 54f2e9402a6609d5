package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/tasktimer/internal/app"
	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) (*Model, *testutil.MockStore, *testutil.MockMonoClock) {
	t.Helper()
	store := testutil.NewMockStore()
	mono := &testutil.MockMonoClock{Value: 1000}
	c := app.NewWithDeps(
		app.Config{DataDir: t.TempDir(), StorePath: "/data/tasks.db", Backend: domain.BackendSQLite},
		store,
		&testutil.MockClock{NowTime: testNow},
		mono,
		&testutil.MockLogger{},
		nil,
	)
	return New(c, ""), store, mono
}

func keyRune(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

// load runs the load command and feeds its message back into the model.
func load(t *testing.T, m *Model) {
	t.Helper()
	msg := m.loadTasks()()
	_, ok := msg.(MsgTasksLoaded)
	require.True(t, ok, "loadTasks returned %T", msg)
	m.Update(msg)
}

// runCmd executes cmd and feeds the resulting message back into the model.
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	msg := cmd()
	m.Update(msg)
	return msg
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "confirm", ModeConfirm.String())
	assert.Equal(t, "input_name", ModeInputName.String())
	assert.Equal(t, "help", ModeHelp.String())
	assert.True(t, ModeInputName.IsInputMode())
	assert.False(t, ModeNormal.IsInputMode())
}

func TestKeyMap_Help(t *testing.T) {
	keys := DefaultKeyMap()
	assert.NotEmpty(t, keys.ShortHelp())
	assert.NotEmpty(t, keys.FullHelp())
}

func TestModel_LoadTasks(t *testing.T) {
	m, store, _ := newTestModel(t)
	store.Seed(&domain.Task{Name: "first", CreatedAt: testNow})
	store.Seed(&domain.Task{Name: "second", CreatedAt: testNow})
	store.Seed(&domain.Task{Name: "done", CreatedAt: testNow, Completed: true})

	load(t, m)

	assert.Len(t, m.active, 2)
	assert.Len(t, m.completed, 1)
	assert.Len(t, m.taskList.Items(), 2)
	require.NotNil(t, m.SelectedTask())
	assert.Equal(t, 1, m.SelectedTask().ID)
}

func TestModel_ToggleShowAll(t *testing.T) {
	m, store, _ := newTestModel(t)
	store.Seed(&domain.Task{Name: "open", CreatedAt: testNow})
	store.Seed(&domain.Task{Name: "done", CreatedAt: testNow, Completed: true})
	load(t, m)
	require.Len(t, m.taskList.Items(), 1)

	m.Update(keyRune("a"))
	assert.True(t, m.showAll)
	assert.Len(t, m.taskList.Items(), 2)

	m.Update(keyRune("a"))
	assert.Len(t, m.taskList.Items(), 1)
}

func TestModel_StartAndEnd(t *testing.T) {
	m, store, mono := newTestModel(t)
	store.Seed(&domain.Task{Name: "work", CreatedAt: testNow})
	load(t, m)

	_, cmd := m.Update(keyRune("s"))
	msg := runCmd(t, m, cmd)
	assert.Equal(t, MsgTaskStarted{TaskID: 1}, msg)
	assert.True(t, store.Task(1).IsRunning())
	assert.Contains(t, m.status, "Started task #1")

	mono.Advance(1800)
	_, cmd = m.Update(keyRune("e"))
	msg = runCmd(t, m, cmd)
	ended, ok := msg.(MsgTaskEnded)
	require.True(t, ok)
	assert.InDelta(t, 1800, ended.Delta, 1e-9)
	assert.False(t, ended.Clamped)
	assert.InDelta(t, 0.5, store.Task(1).HoursSpent, 1e-9)
	assert.Contains(t, m.status, "Ended task #1")
}

func TestModel_StartTwiceShowsError(t *testing.T) {
	m, store, _ := newTestModel(t)
	start := 1000.0
	store.Seed(&domain.Task{Name: "busy", CreatedAt: testNow, Active: true, SessionStart: &start})
	load(t, m)

	_, cmd := m.Update(keyRune("s"))
	msg := runCmd(t, m, cmd)
	errMsg, ok := msg.(MsgError)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, domain.ErrTimerRunning)
	assert.ErrorIs(t, m.err, domain.ErrTimerRunning)
}

func TestModel_Complete(t *testing.T) {
	m, store, mono := newTestModel(t)
	start := 1000.0
	store.Seed(&domain.Task{Name: "finish me", CreatedAt: testNow, Active: true, SessionStart: &start})
	load(t, m)

	mono.Advance(360)
	_, cmd := m.Update(keyRune("c"))
	msg := runCmd(t, m, cmd)
	assert.Equal(t, MsgTaskCompleted{TaskID: 1}, msg)

	task := store.Task(1)
	assert.True(t, task.Completed)
	assert.False(t, task.Active)
	assert.InDelta(t, 0.1, task.HoursSpent, 1e-9)
}

func TestModel_DeleteConfirm(t *testing.T) {
	m, store, _ := newTestModel(t)
	store.Seed(&domain.Task{Name: "doomed", CreatedAt: testNow})
	store.SeedNote(&domain.Note{TaskID: 1, Text: "note", CreatedAt: testNow})
	load(t, m)

	_, cmd := m.Update(keyRune("d"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmDelete, m.confirmAction)
	assert.Equal(t, 1, m.confirmTaskID)

	_, cmd = m.Update(keyRune("y"))
	msg := runCmd(t, m, cmd)
	assert.Equal(t, MsgTaskDeleted{TaskID: 1}, msg)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Nil(t, store.Task(1))
	assert.Empty(t, store.Notes)
}

func TestModel_DeleteCancel(t *testing.T) {
	m, store, _ := newTestModel(t)
	store.Seed(&domain.Task{Name: "kept", CreatedAt: testNow})
	load(t, m)

	m.Update(keyRune("d"))
	require.Equal(t, ModeConfirm, m.mode)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ConfirmNone, m.confirmAction)
	assert.NotNil(t, store.Task(1))
}

func TestModel_CreateTask(t *testing.T) {
	m, store, _ := newTestModel(t)
	load(t, m)

	m.Update(keyRune("n"))
	require.Equal(t, ModeInputName, m.mode)

	m.Update(keyRune("Write docs"))
	assert.Equal(t, "Write docs", m.nameInput.Value())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := runCmd(t, m, cmd)
	assert.Equal(t, MsgTaskCreated{TaskID: 1}, msg)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.nameInput.Value())

	task := store.Task(1)
	require.NotNil(t, task)
	assert.Equal(t, "Write docs", task.Name)
	assert.Equal(t, domain.StateIdle, task.State())
}

func TestModel_CreateTaskEmptyName(t *testing.T) {
	m, store, _ := newTestModel(t)
	load(t, m)

	m.Update(keyRune("n"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.ErrorIs(t, m.err, domain.ErrEmptyName)
	assert.Equal(t, ModeInputName, m.mode)
	assert.Empty(t, store.Tasks)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_NoSelectionIgnoresActions(t *testing.T) {
	m, _, _ := newTestModel(t)
	load(t, m)

	for _, k := range []string{"s", "e", "c", "d"} {
		_, cmd := m.Update(keyRune(k))
		assert.Nil(t, cmd, "key %s", k)
	}
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_HelpMode(t *testing.T) {
	m, _, _ := newTestModel(t)

	m.Update(keyRune("?"))
	assert.Equal(t, ModeHelp, m.mode)

	m.Update(keyRune("x"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(keyRune("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_ErrorClearsInputMode(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(keyRune("n"))

	m.Update(MsgError{Err: errors.New("boom")})
	assert.Equal(t, ModeNormal, m.mode)
	assert.EqualError(t, m.err, "boom")
}

func TestModel_TickReschedules(t *testing.T) {
	m, _, _ := newTestModel(t)

	_, cmd := m.Update(MsgTick{})
	assert.NotNil(t, cmd)
}

func TestModel_View(t *testing.T) {
	m, store, _ := newTestModel(t)
	assert.Equal(t, "Loading...", m.View())

	start := 1000.0
	store.Seed(&domain.Task{Name: "Running job", CreatedAt: testNow, HoursSpent: 1.5, Active: true, SessionStart: &start})
	store.Seed(&domain.Task{Name: "Idle job", CreatedAt: testNow})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	load(t, m)

	view := m.View()
	assert.Contains(t, view, "tasktimer")
	assert.Contains(t, view, "Running job")
	assert.Contains(t, view, "Idle job")
	assert.Contains(t, view, "2 active, 1 running, 0 completed")

	m.Update(keyRune("d"))
	assert.Contains(t, m.View(), "Delete task #1")
}

func TestModel_ViewEmpty(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	load(t, m)

	assert.Contains(t, m.View(), "No tasks")
}

func TestModel_ViewShowsCaller(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.caller = "alice"
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Contains(t, m.View(), "alice")
}
