package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestShowLogs_Execute_Task(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	dataDir := t.TempDir()
	writeLog(t, domain.TaskLogPath(dataDir, 1), "line1\nline2\nline3\nline4\nline5\n")

	uc := NewShowLogs(store, dataDir)

	out, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskLogPath(dataDir, 1), out.LogPath)
	assert.Equal(t, "line1\nline2\nline3\nline4\nline5", out.Content)

	tail, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: 1, Lines: 2})
	require.NoError(t, err)
	assert.Equal(t, "line4\nline5", tail.Content)
}

func TestShowLogs_Execute_Global(t *testing.T) {
	dataDir := t.TempDir()
	writeLog(t, domain.GlobalLogPath(dataDir), "global\n")
	uc := NewShowLogs(testutil.NewMockStore(), dataDir)

	out, err := uc.Execute(context.Background(), ShowLogsInput{})

	require.NoError(t, err)
	assert.Equal(t, "global", out.Content)
}

func TestShowLogs_Execute_NoLogFile(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task"})
	uc := NewShowLogs(store, t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrNoLogs)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowLogs_Execute_Forbidden(t *testing.T) {
	store := testutil.NewMockStore()
	store.Seed(&domain.Task{ID: 1, Name: "Task", Owner: "alice"})
	uc := NewShowLogs(store, t.TempDir())

	_, err := uc.Execute(context.Background(), ShowLogsInput{Caller: "bob", TaskID: 1})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}
