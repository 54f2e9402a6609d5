package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartTimer_Execute_Success(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	mono := &testutil.MockMonoClock{Value: 500}
	logger := &testutil.MockLogger{}
	uc := NewStartTimer(store, mono, logger)

	out, err := uc.Execute(context.Background(), StartTimerInput{TaskID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StateRunning, out.Task.State())

	task := store.Task(1)
	assert.True(t, task.Active)
	require.NotNil(t, task.SessionStart)
	assert.InDelta(t, 500.0, *task.SessionStart, 1e-9)
	assert.Equal(t, 1, logger.Count("INFO"))
}

func TestStartTimer_Execute_AlreadyRunning(t *testing.T) {
	// A second start must not reset the open session
	store := testutil.NewMockStore()
	start := 100.0
	store.Seed(&domain.Task{ID: 1, Name: "Task", Active: true, SessionStart: &start})
	mono := &testutil.MockMonoClock{Value: 900}
	uc := NewStartTimer(store, mono, nil)

	out, err := uc.Execute(context.Background(), StartTimerInput{TaskID: 1})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrTimerRunning)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	task := store.Task(1)
	require.NotNil(t, task.SessionStart)
	assert.InDelta(t, 100.0, *task.SessionStart, 1e-9)
	assert.Zero(t, store.Updates)
}

func TestStartTimer_Execute_Completed(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Completed: true})
	uc := NewStartTimer(store, &testutil.MockMonoClock{}, nil)

	_, err := uc.Execute(context.Background(), StartTimerInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrTaskCompleted)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.False(t, store.Task(1).Active)
}

func TestStartTimer_Execute_NotFound(t *testing.T) {
	store := testutil.NewMockStore()
	uc := NewStartTimer(store, &testutil.MockMonoClock{}, nil)

	_, err := uc.Execute(context.Background(), StartTimerInput{TaskID: 42})

	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestStartTimer_Execute_Forbidden(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice"})
	uc := NewStartTimer(store, &testutil.MockMonoClock{}, nil)

	_, err := uc.Execute(context.Background(), StartTimerInput{Caller: "bob", TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.False(t, store.Task(1).Active)
}

func TestStartTimer_Execute_UpdateError(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	store.UpdateErr = domain.Storage("update", errors.New("locked"))
	uc := NewStartTimer(store, &testutil.MockMonoClock{}, nil)

	_, err := uc.Execute(context.Background(), StartTimerInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.Contains(t, err.Error(), "update task")
}
