package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/usecase/shared"
)

// ShowLogsInput contains the parameters for showing activity logs.
type ShowLogsInput struct {
	Caller string // Caller identity
	TaskID int    // Task ID (0 = global log)
	Lines  int    // Number of lines to display from the end (0 = all)
}

// ShowLogsOutput contains the result of showing logs.
type ShowLogsOutput struct {
	LogPath string // Path to the log file
	Content string // Log file content
}

// ShowLogs is the use case for viewing the activity log of a task or of the whole store.
type ShowLogs struct {
	tasks   domain.TaskStore
	dataDir string
}

// NewShowLogs creates a new ShowLogs use case.
func NewShowLogs(tasks domain.TaskStore, dataDir string) *ShowLogs {
	return &ShowLogs{
		tasks:   tasks,
		dataDir: dataDir,
	}
}

// Execute reads and returns the log content.
func (uc *ShowLogs) Execute(_ context.Context, in ShowLogsInput) (*ShowLogsOutput, error) {
	logPath := domain.GlobalLogPath(uc.dataDir)
	if in.TaskID != 0 {
		task, err := shared.GetOwnedTask(uc.tasks, in.TaskID, in.Caller)
		if err != nil {
			return nil, err
		}
		logPath = domain.TaskLogPath(uc.dataDir, task.ID)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", logPath, domain.ErrNoLogs)
		}
		return nil, fmt.Errorf("read log file: %w", err)
	}

	// If lines is specified, keep only the last N lines
	result := strings.TrimSuffix(string(content), "\n")
	if in.Lines > 0 {
		lines := strings.Split(result, "\n")
		if len(lines) > in.Lines {
			lines = lines[len(lines)-in.Lines:]
		}
		result = strings.Join(lines, "\n")
	}

	return &ShowLogsOutput{
		LogPath: logPath,
		Content: result,
	}, nil
}
