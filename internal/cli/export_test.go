package cli

import (
	"encoding/json"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func seedExport(env *testEnv) {
	env.store.Seed(&domain.Task{Name: "report", CreatedAt: testNow, HoursSpent: 1.5})
	env.store.SeedNote(&domain.Note{TaskID: 1, Text: "outline", CreatedAt: testNow, Done: true})
}

func TestExportCommand_YAML(t *testing.T) {
	env := newTestEnv(t)
	seedExport(env)

	out, err := run(t, newExportCommand(env.container))
	require.NoError(t, err)

	var decoded usecase.ExportTasksOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Tasks, 1)
	assert.Equal(t, "report", decoded.Tasks[0].Name)
	assert.Equal(t, 1.5, decoded.Tasks[0].HoursSpent)
	require.Len(t, decoded.Tasks[0].Notes, 1)
	assert.True(t, decoded.Tasks[0].Notes[0].Done)
	assert.Contains(t, out, "hours_spent: 1.5")
}

func TestExportCommand_JSON(t *testing.T) {
	env := newTestEnv(t)
	seedExport(env)

	out, err := run(t, newExportCommand(env.container), "--format", "json")
	require.NoError(t, err)

	var decoded usecase.ExportTasksOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Tasks, 1)
	assert.Equal(t, "idle", decoded.Tasks[0].State)
}

func TestExportCommand_UnknownFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := run(t, newExportCommand(env.container), "--format", "csv")

	assert.ErrorContains(t, err, "unknown format")
}
