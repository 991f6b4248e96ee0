package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okrause/recallflow/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		DueQueueLimit:      50,
		HistoryWorkerCount: 1,
		HistoryQueueSize:   128,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{level: "DEBUG", valid: true},
		{level: "info", valid: true},
		{level: "WARNING", valid: true},
		{level: "ERROR", valid: true},
		{level: "", valid: false},
		{level: "TRACE", valid: false},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_WorkerSettings(t *testing.T) {
	cfg := validConfig()
	cfg.HistoryWorkerCount = 0
	cfg.HistoryQueueSize = 0
	cfg.DueQueueLimit = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY_WORKER_COUNT")
	assert.Contains(t, err.Error(), "HISTORY_QUEUE_SIZE")
	assert.Contains(t, err.Error(), "DUE_QUEUE_LIMIT")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("DUE_QUEUE_LIMIT", "25")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, 25, cfg.DueQueueLimit)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "DB_PATH", "LOG_LEVEL", "DUE_QUEUE_LIMIT", "HISTORY_WORKER_COUNT", "HISTORY_QUEUE_SIZE"} {
		require.NoError(t, os.Unsetenv(key))
	}

	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, 50, cfg.DueQueueLimit)
	assert.Equal(t, 1, cfg.HistoryWorkerCount)
	assert.Equal(t, 128, cfg.HistoryQueueSize)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("HISTORY_QUEUE_SIZE", "lots")

	cfg := config.Load()
	assert.Equal(t, 128, cfg.HistoryQueueSize)
}
