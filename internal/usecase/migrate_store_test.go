package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateStore_Execute_CopiesTasksAndNotes(t *testing.T) {
	source := testutil.NewMockStore()
	source.Initialized = true
	dest := testutil.NewMockStore()

	now := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	start := 42.0
	source.Seed(&domain.Task{ID: 3, Name: "Legacy", Owner: "alice", CreatedAt: now, HoursSpent: 2})
	source.Seed(&domain.Task{ID: 7, Name: "Running", CreatedAt: now, Active: true, SessionStart: &start})
	source.SeedNote(&domain.Note{TaskID: 3, Text: "first", CreatedAt: now})
	source.SeedNote(&domain.Note{TaskID: 3, Text: "second", CreatedAt: now, Done: true})
	source.SeedNote(&domain.Note{TaskID: 7, Text: "third", CreatedAt: now})

	uc := NewMigrateStore(source, dest, nil)
	out, err := uc.Execute(context.Background(), MigrateStoreInput{})

	require.NoError(t, err)
	assert.Equal(t, 2, out.Tasks)
	assert.Equal(t, 3, out.Notes)
	assert.Equal(t, map[int]int{3: 1, 7: 2}, out.IDMap)
	assert.True(t, dest.IsInitialized())

	legacy := dest.Task(1)
	require.NotNil(t, legacy)
	assert.Equal(t, "Legacy", legacy.Name)
	assert.Equal(t, "alice", legacy.Owner)
	assert.InDelta(t, 2.0, legacy.HoursSpent, 1e-9)

	running := dest.Task(2)
	require.NotNil(t, running)
	assert.True(t, running.IsRunning())
	assert.InDelta(t, 42.0, *running.SessionStart, 1e-9)

	notes, err := dest.ListByTask(1)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "first", notes[0].Text)
	assert.True(t, notes[1].Done)

	// Source is untouched
	assert.Len(t, source.Tasks, 2)
}

func TestMigrateStore_Execute_DestinationNotEmpty(t *testing.T) {
	source := testutil.NewMockStore()
	source.Initialized = true
	source.Seed(&domain.Task{ID: 1, Name: "a"})
	dest := testutil.NewMockStore()
	dest.Seed(&domain.Task{ID: 1, Name: "already here"})

	uc := NewMigrateStore(source, dest, nil)
	_, err := uc.Execute(context.Background(), MigrateStoreInput{})

	assert.ErrorIs(t, err, domain.ErrStoreNotEmpty)
	assert.Len(t, dest.Tasks, 1)
}

func TestMigrateStore_Execute_SourceNotInitialized(t *testing.T) {
	uc := NewMigrateStore(testutil.NewMockStore(), testutil.NewMockStore(), nil)

	_, err := uc.Execute(context.Background(), MigrateStoreInput{})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
