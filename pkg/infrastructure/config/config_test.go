package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	orch, err := cfg.Orchestration()
	require.NoError(t, err)
	assert.Equal(t, 90, orch.Forecasting.HorizonDays)
	assert.Equal(t, 0.80, orch.Classification.ABoundary)
	assert.Equal(t, 10*time.Minute, orch.Timeout)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"run:\n"+
			"  history_days: 180\n"+
			"  workers: 2\n"+
			"  timeout: 30s\n"+
			"forecasting:\n"+
			"  horizon_days: 45\n"+
			"  sma_window: 7\n"+
			"  alpha: 0.3\n"+
			"  hw_alpha: 0.3\n"+
			"  hw_beta: 0.1\n"+
			"  hw_gamma: 0.1\n"+
			"  season_candidates: [7]\n"+
			"  season_threshold: 0.3\n"+
			"  holdout_periods: 14\n"+
			"  min_observations: 5\n"+
			"  degradation_threshold: 0.15\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	orch, err := cfg.Orchestration()
	require.NoError(t, err)
	assert.Equal(t, 180, orch.HistoryDays)
	assert.Equal(t, 2, orch.Workers)
	assert.Equal(t, 30*time.Second, orch.Timeout)
	assert.Equal(t, 45, orch.Forecasting.HorizonDays)
	assert.Equal(t, []int{7}, orch.Forecasting.SeasonCandidates)

	// Sections the file omits keep their defaults.
	assert.Equal(t, 0.80, orch.Classification.ABoundary)
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte("runn:\n  workers: 2\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestOrchestration_RejectsBadTimeout(t *testing.T) {
	cfg := Default()
	cfg.Run.Timeout = "sometime"
	_, err := cfg.Orchestration()
	assert.Error(t, err)
}
