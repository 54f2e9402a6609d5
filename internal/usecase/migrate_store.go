package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/tasktimer/internal/domain"
)

// MigrateStoreInput contains parameters for MigrateStore.
type MigrateStoreInput struct{}

// MigrateStoreOutput contains migration results.
type MigrateStoreOutput struct {
	IDMap map[int]int // Source task ID -> destination task ID
	Tasks int         // Tasks copied
	Notes int         // Notes copied
}

// MigrateStore copies every task and note from one backend into another,
// for example when switching [store] backend from json to sqlite.
type MigrateStore struct {
	source domain.Backend
	dest   domain.Backend
	logger domain.Logger
}

// NewMigrateStore creates a new MigrateStore use case.
func NewMigrateStore(source, dest domain.Backend, logger domain.Logger) *MigrateStore {
	return &MigrateStore{source: source, dest: dest, logger: logger}
}

// Execute copies all data. The destination must hold no tasks. Task IDs are
// reassigned by the destination in source order; running sessions stay running.
func (uc *MigrateStore) Execute(_ context.Context, _ MigrateStoreInput) (*MigrateStoreOutput, error) {
	if uc.source == nil || uc.dest == nil {
		return nil, errors.New("source or destination store is nil")
	}
	if !uc.source.IsInitialized() {
		return nil, fmt.Errorf("source store: %w", domain.ErrNotInitialized)
	}
	if err := uc.dest.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize destination store: %w", err)
	}

	existing, err := uc.dest.ListByOwner("")
	if err != nil {
		return nil, fmt.Errorf("list destination tasks: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w (%d tasks)", domain.ErrStoreNotEmpty, len(existing))
	}

	tasks, err := uc.source.ListByOwner("")
	if err != nil {
		return nil, fmt.Errorf("list source tasks: %w", err)
	}

	out := &MigrateStoreOutput{IDMap: make(map[int]int, len(tasks))}
	for _, task := range tasks {
		notes, err := uc.source.ListByTask(task.ID)
		if err != nil {
			return nil, fmt.Errorf("get source notes for %d: %w", task.ID, err)
		}

		sourceID := task.ID
		copied := task.Clone()
		if err := uc.dest.Create(copied); err != nil {
			return nil, fmt.Errorf("save destination task %d: %w", sourceID, err)
		}
		out.IDMap[sourceID] = copied.ID
		out.Tasks++

		for _, n := range notes {
			note := *n
			note.TaskID = copied.ID
			if err := uc.dest.AddNote(&note); err != nil {
				return nil, fmt.Errorf("save destination note %d: %w", n.ID, err)
			}
			out.Notes++
		}
	}

	if uc.logger != nil {
		uc.logger.Info(0, "store", fmt.Sprintf("migrated %d tasks and %d notes", out.Tasks, out.Notes))
	}
	return out, nil
}
