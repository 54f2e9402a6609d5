// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/tasktimer/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir   string // Data directory (created if missing)
	StorePath string // Store file path, for reporting
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	StorePath          string // Store file path
	AlreadyInitialized bool   // True if the store already existed (schema repaired only)
}

// InitStore creates the data directory and the task store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute initializes the store. Running it again is harmless.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	already := uc.storeInit.IsInitialized()

	if err := os.MkdirAll(filepath.Join(in.DataDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create logs directory: %w", err)
	}
	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &InitStoreOutput{
		StorePath:          in.StorePath,
		AlreadyInitialized: already,
	}, nil
}
