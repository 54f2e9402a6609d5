package domain

import (
	"fmt"
	"path/filepath"
)

// TaskLogPath returns the path to the task log file.
func TaskLogPath(dataDir string, taskID int) string {
	return filepath.Join(dataDir, "logs", fmt.Sprintf("task-%d.log", taskID))
}

// GlobalLogPath returns the path to the global log file.
func GlobalLogPath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "tasktimer.log")
}

// TaskLockPath returns the path to the lock file guarding one task in a file store.
func TaskLockPath(storePath string, taskID int) string {
	return filepath.Join(storePath+".locks", fmt.Sprintf("task-%d.lock", taskID))
}

// FormatHours renders accumulated hours as "1h 05m".
func FormatHours(hours float64) string {
	if hours < 0 {
		hours = 0
	}
	totalMinutes := int(hours*60 + 0.5)
	return fmt.Sprintf("%dh %02dm", totalMinutes/60, totalMinutes%60)
}

// FormatElapsed renders a running session's seconds as "hh:mm:ss".
func FormatElapsed(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s%3600)/60, s%60)
}

// DateLayout is the display layout for created and completed dates.
const DateLayout = "02-01-2006"
