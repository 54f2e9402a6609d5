package shared

import (
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		owner   string
		caller  string
	}{
		{name: "single-user sees owned task", owner: "alice", caller: ""},
		{name: "single-user sees unowned task", owner: "", caller: ""},
		{name: "owner", owner: "alice", caller: "alice"},
		{name: "other user", owner: "alice", caller: "bob", wantErr: domain.ErrNotOwner},
		{name: "unowned task in multi-user", owner: "", caller: "bob", wantErr: domain.ErrNotOwner},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(&domain.Task{Owner: tt.owner}, tt.caller)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrForbidden)
		})
	}
}

func TestGetOwnedTask(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "mine", Owner: "alice"})

	task, err := GetOwnedTask(store, 1, "alice")
	require.NoError(t, err)
	assert.Equal(t, "mine", task.Name)

	_, err = GetOwnedTask(store, 1, "bob")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = GetOwnedTask(store, 2, "alice")
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}

func TestGetOwnedNote(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "mine", Owner: "alice"})
	store.SeedNote(&domain.Note{ID: 5, TaskID: 1, Text: "hello"})

	note, err := GetOwnedNote(store, store, 5, "alice")
	require.NoError(t, err)
	assert.Equal(t, "hello", note.Text)

	_, err = GetOwnedNote(store, store, 5, "bob")
	assert.ErrorIs(t, err, domain.ErrNotOwner)

	_, err = GetOwnedNote(store, store, 6, "alice")
	assert.ErrorIs(t, err, domain.ErrNoteNotFound)
}
