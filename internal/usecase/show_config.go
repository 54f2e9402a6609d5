package usecase

import (
	"context"

	"github.com/runoshun/tasktimer/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	EffectiveConfig *domain.Config    // Merged configuration in use
	GlobalConfig    domain.ConfigInfo // Global config file info
	DataConfig      domain.ConfigInfo // Data dir config file info
}

// ShowConfig reports the configuration files and the effective configuration.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves configuration file information.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	effective, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}

	return &ShowConfigOutput{
		EffectiveConfig: effective,
		GlobalConfig:    uc.configManager.GetGlobalConfigInfo(),
		DataConfig:      uc.configManager.GetDataConfigInfo(),
	}, nil
}
