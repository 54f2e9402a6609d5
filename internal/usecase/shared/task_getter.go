// Package shared holds helpers used by several use cases.
package shared

import (
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
)

// GetTask retrieves a task by ID and returns domain.ErrTaskNotFound if not found.
// This centralizes the common pattern of:
//
//	task, err := store.Get(taskID)
//	if err != nil { return nil, fmt.Errorf("get task: %w", err) }
//	if task == nil { return nil, domain.ErrTaskNotFound }
func GetTask(store domain.TaskStore, taskID int) (*domain.Task, error) {
	task, err := store.Get(taskID)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if task == nil {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

// WithTaskLock runs fn while holding the exclusive lock for taskID.
func WithTaskLock(store domain.TaskStore, taskID int, fn func() error) error {
	unlock, err := store.Lock(taskID)
	if err != nil {
		return fmt.Errorf("lock task: %w", err)
	}
	defer unlock()
	return fn()
}
