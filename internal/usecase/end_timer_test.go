package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timerFixture struct {
	store *testutil.MockStore
	mono  *testutil.MockMonoClock
	start *StartTimer
	end   *EndTimer
}

func newTimerFixture(t *testing.T) *timerFixture {
	t.Helper()
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	mono := &testutil.MockMonoClock{Value: 10_000}
	return &timerFixture{
		store: store,
		mono:  mono,
		start: NewStartTimer(store, mono, nil),
		end:   NewEndTimer(store, mono, nil),
	}
}

func (f *timerFixture) cycle(t *testing.T, seconds float64) {
	t.Helper()
	_, err := f.start.Execute(context.Background(), StartTimerInput{TaskID: 1})
	require.NoError(t, err)
	f.mono.Advance(seconds)
	_, err = f.end.Execute(context.Background(), EndTimerInput{TaskID: 1})
	require.NoError(t, err)
}

func TestEndTimer_Execute_OneHour(t *testing.T) {
	f := newTimerFixture(t)

	f.cycle(t, 3600)

	task := f.store.Task(1)
	assert.InDelta(t, 1.0, task.HoursSpent, 1e-9)
	assert.False(t, task.Active)
	assert.Nil(t, task.SessionStart)
	assert.Equal(t, domain.StateIdle, task.State())
}

func TestEndTimer_Execute_AccumulatesSessions(t *testing.T) {
	f := newTimerFixture(t)

	f.cycle(t, 1800)
	f.cycle(t, 900)

	assert.InDelta(t, 0.75, f.store.Task(1).HoursSpent, 1e-9)
}

func TestEndTimer_Execute_HoursNonDecreasing(t *testing.T) {
	f := newTimerFixture(t)

	prev := 0.0
	for _, seconds := range []float64{0, 1, 59.5, 3600, 0.001, 7200} {
		f.cycle(t, seconds)
		got := f.store.Task(1).HoursSpent
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestEndTimer_Execute_NeverStarted(t *testing.T) {
	f := newTimerFixture(t)
	f.store.Seed(&domain.Task{ID: 1, Name: "Task", HoursSpent: 2.5})

	out, err := f.end.Execute(context.Background(), EndTimerInput{TaskID: 1})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrTimerNotRunning)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.InDelta(t, 2.5, f.store.Task(1).HoursSpent, 1e-9)
	assert.Zero(t, f.store.Updates)
}

func TestEndTimer_Execute_ReportsDelta(t *testing.T) {
	f := newTimerFixture(t)
	_, err := f.start.Execute(context.Background(), StartTimerInput{TaskID: 1})
	require.NoError(t, err)
	f.mono.Advance(90)

	out, err := f.end.Execute(context.Background(), EndTimerInput{TaskID: 1})

	require.NoError(t, err)
	assert.InDelta(t, 90.0, out.Delta, 1e-9)
	assert.False(t, out.Clamped)
}

func TestEndTimer_Execute_ClampsNegativeDelta(t *testing.T) {
	store := testutil.NewMockStore()
	start := 5000.0
	store.Seed(&domain.Task{ID: 1, Name: "Task", Active: true, SessionStart: &start, HoursSpent: 1})
	logger := &testutil.MockLogger{}
	uc := NewEndTimer(store, &testutil.MockMonoClock{Value: 4000}, logger)

	out, err := uc.Execute(context.Background(), EndTimerInput{TaskID: 1})

	require.NoError(t, err)
	assert.True(t, out.Clamped)
	assert.Zero(t, out.Delta)
	assert.InDelta(t, 1.0, store.Task(1).HoursSpent, 1e-9)
	assert.Equal(t, 1, logger.Count("WARN"))
}

func TestEndTimer_Execute_Forbidden(t *testing.T) {
	store := testutil.NewMockStore()
	start := 0.0
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice", Active: true, SessionStart: &start})
	uc := NewEndTimer(store, &testutil.MockMonoClock{Value: 60}, nil)

	_, err := uc.Execute(context.Background(), EndTimerInput{Caller: "bob", TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.True(t, store.Task(1).IsRunning())
}

func TestEndTimer_Execute_ConcurrentEndsCreditOnce(t *testing.T) {
	f := newTimerFixture(t)
	_, err := f.start.Execute(context.Background(), StartTimerInput{TaskID: 1})
	require.NoError(t, err)
	f.mono.Advance(3600)

	const callers = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.end.Execute(context.Background(), EndTimerInput{TaskID: 1})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, domain.ErrTimerNotRunning):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, rejected)
	assert.InDelta(t, 1.0, f.store.Task(1).HoursSpent, 1e-9)
}
