package usecase_test

import (
	"context"
	"testing"

	"github.com/runoshun/tasktimer/internal/domain"
	"github.com/runoshun/tasktimer/internal/testutil"
	"github.com/runoshun/tasktimer/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowConfig_Execute(t *testing.T) {
	t.Run("returns both config infos and effective config", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.DataConfigInfo = domain.ConfigInfo{
			Path:    "/data/tasktimer/config.toml",
			Content: "[store]\nbackend = \"json\"",
			Exists:  true,
		}
		manager.GlobalConfigInfo = domain.ConfigInfo{
			Path:    "/home/test/.config/tasktimer/config.toml",
			Content: "[log]\nlevel = \"debug\"",
			Exists:  true,
		}

		loader := testutil.NewMockConfigLoader()
		loader.Config = &domain.Config{
			Store: domain.StoreConfig{Backend: domain.BackendJSON},
			Log:   domain.LogConfig{Level: "debug"},
		}

		uc := usecase.NewShowConfig(manager, loader)
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.Equal(t, manager.DataConfigInfo, out.DataConfig)
		assert.Equal(t, manager.GlobalConfigInfo, out.GlobalConfig)
		require.NotNil(t, out.EffectiveConfig)
		assert.Equal(t, domain.BackendJSON, out.EffectiveConfig.Store.Backend)
		assert.Equal(t, "debug", out.EffectiveConfig.Log.Level)
	})

	t.Run("handles non-existent files", func(t *testing.T) {
		manager := testutil.NewMockConfigManager()
		manager.DataConfigInfo = domain.ConfigInfo{Path: "/data/tasktimer/config.toml"}
		manager.GlobalConfigInfo = domain.ConfigInfo{Path: "/home/test/.config/tasktimer/config.toml"}

		uc := usecase.NewShowConfig(manager, testutil.NewMockConfigLoader())
		out, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		require.NoError(t, err)
		assert.False(t, out.DataConfig.Exists)
		assert.False(t, out.GlobalConfig.Exists)
		assert.Empty(t, out.DataConfig.Content)
		assert.Equal(t, domain.DefaultBackend, out.EffectiveConfig.Store.Backend)
	})

	t.Run("propagates loader errors", func(t *testing.T) {
		loader := testutil.NewMockConfigLoader()
		loader.LoadErr = testutil.ErrMock

		uc := usecase.NewShowConfig(testutil.NewMockConfigManager(), loader)
		_, err := uc.Execute(context.Background(), usecase.ShowConfigInput{})

		assert.ErrorIs(t, err, testutil.ErrMock)
	})
}
