package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNote_Execute_Success(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	clock := &testutil.MockClock{NowTime: time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC)}
	uc := NewAddNote(store, store, clock, nil)

	out, err := uc.Execute(context.Background(), AddNoteInput{TaskID: 1, Text: " buy milk "})

	require.NoError(t, err)
	assert.Equal(t, 1, out.Note.ID)
	assert.Equal(t, "buy milk", out.Note.Text)
	assert.Equal(t, clock.NowTime, out.Note.CreatedAt)
	assert.False(t, out.Note.Done)
}

func TestAddNote_Execute_OrderedByCreation(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	uc := NewAddNote(store, store, &testutil.MockClock{}, nil)

	for _, text := range []string{"one", "two", "three"} {
		_, err := uc.Execute(context.Background(), AddNoteInput{TaskID: 1, Text: text})
		require.NoError(t, err)
	}

	out, err := NewListNotes(store, store).Execute(context.Background(), ListNotesInput{TaskID: 1})
	require.NoError(t, err)
	require.Len(t, out.Notes, 3)
	assert.Equal(t, "one", out.Notes[0].Text)
	assert.Equal(t, "two", out.Notes[1].Text)
	assert.Equal(t, "three", out.Notes[2].Text)
}

func TestAddNote_Execute_Errors(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice"})
	uc := NewAddNote(store, store, &testutil.MockClock{}, nil)

	_, err := uc.Execute(context.Background(), AddNoteInput{TaskID: 1, Text: "  "})
	assert.ErrorIs(t, err, domain.ErrEmptyNote)

	_, err = uc.Execute(context.Background(), AddNoteInput{TaskID: 2, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.Execute(context.Background(), AddNoteInput{Caller: "bob", TaskID: 1, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	assert.Empty(t, store.Notes)
}

func TestAddNote_Execute_SerializedWithDelete(t *testing.T) {
	// Notes added while a delete runs either land before the cascade or fail
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	add := NewAddNote(store, store, &testutil.MockClock{}, nil)
	del := NewDeleteTask(store, store, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = add.Execute(context.Background(), AddNoteInput{TaskID: 1, Text: "n"})
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = del.Execute(context.Background(), DeleteTaskInput{TaskID: 1})
	}()
	wg.Wait()

	notes, err := store.ListByTask(1)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestToggleNote_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice"})
	store.SeedNote(&domain.Note{ID: 1, TaskID: 1, Text: "n"})
	uc := NewToggleNote(store, store)

	out, err := uc.Execute(context.Background(), ToggleNoteInput{Caller: "alice", NoteID: 1})
	require.NoError(t, err)
	assert.True(t, out.Note.Done)

	out, err = uc.Execute(context.Background(), ToggleNoteInput{Caller: "alice", NoteID: 1})
	require.NoError(t, err)
	assert.False(t, out.Note.Done)

	_, err = uc.Execute(context.Background(), ToggleNoteInput{Caller: "bob", NoteID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Execute(context.Background(), ToggleNoteInput{Caller: "alice", NoteID: 99})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestToggleNote_Execute_IndependentOfTaskState(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Completed: true})
	store.SeedNote(&domain.Note{ID: 1, TaskID: 1, Text: "n"})
	uc := NewToggleNote(store, store)

	out, err := uc.Execute(context.Background(), ToggleNoteInput{NoteID: 1})

	require.NoError(t, err)
	assert.True(t, out.Note.Done)
	assert.True(t, store.Task(1).Completed)
}

func TestEditNote_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	store.SeedNote(&domain.Note{ID: 1, TaskID: 1, Text: "old"})
	uc := NewEditNote(store, store)

	out, err := uc.Execute(context.Background(), EditNoteInput{NoteID: 1, Text: "new"})
	require.NoError(t, err)
	assert.Equal(t, "new", out.Note.Text)

	_, err = uc.Execute(context.Background(), EditNoteInput{NoteID: 1, Text: ""})
	assert.ErrorIs(t, err, domain.ErrEmptyNote)

	_, err = uc.Execute(context.Background(), EditNoteInput{NoteID: 2, Text: "x"})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestDeleteNote_Execute(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	store.SeedNote(&domain.Note{ID: 1, TaskID: 1, Text: "a"})
	store.SeedNote(&domain.Note{ID: 2, TaskID: 1, Text: "b"})
	uc := NewDeleteNote(store, store)

	out, err := uc.Execute(context.Background(), DeleteNoteInput{NoteID: 1})
	require.NoError(t, err)
	assert.Equal(t, "a", out.Note.Text)

	notes, err := store.ListByTask(1)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, 2, notes[0].ID)

	_, err = uc.Execute(context.Background(), DeleteNoteInput{NoteID: 1})
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}

func TestListNotes_Execute_Errors(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice"})
	uc := NewListNotes(store, store)

	_, err := uc.Execute(context.Background(), ListNotesInput{TaskID: 5})
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = uc.Execute(context.Background(), ListNotesInput{Caller: "bob", TaskID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Execute(context.Background(), ListNotesInput{Caller: "alice", TaskID: 1})
	require.NoError(t, err)
	assert.Empty(t, out.Notes)
}
