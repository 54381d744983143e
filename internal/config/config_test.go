package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napolitain/buildorder/internal/simulation"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Catalog)
	assert.Equal(t, "buildorder.db", cfg.DB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.JSON)
	assert.Equal(t, 50051, cfg.Server.GRPCPort)
	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 20, cfg.Server.Burst)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, simulation.DefaultEconomy(), cfg.Economy)
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("BUILDORDER_LOG_LEVEL", "debug")
	t.Setenv("BUILDORDER_SERVER_HTTP_PORT", "9090")
	t.Setenv("BUILDORDER_ECONOMY_START_HARVESTERS", "6")
	t.Chdir(t.TempDir())
	require.NoError(t, Init(""))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 6, cfg.Economy.StartHarvesters)
}

func TestLoad_ConfigFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "buildorder.yaml")
	content := `
catalog: data/terran.toml
log:
  json: true
server:
  grpc_port: 6000
  allowed_origins:
    - https://example.org
economy:
  start_mineral: 100
  saturation_threshold: 20
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, Init(path))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/terran.toml", cfg.Catalog)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, 6000, cfg.Server.GRPCPort)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 100.0, cfg.Economy.StartMineral)
	assert.Equal(t, 20, cfg.Economy.SaturationThreshold)
	assert.Equal(t, 45.0/60.0, cfg.Economy.OptimizedMineralSpeed, "unset keys keep defaults")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value any
	}{
		{"server.grpc_port", 70000},
		{"server.rate", 0},
		{"server.burst", 0},
		{"economy.horizon_floor", 0},
		{"economy.start_harvesters", -1},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			viper.Reset()
			t.Cleanup(viper.Reset)
			viper.Set(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestInit_MissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Error(t, Init(filepath.Join(t.TempDir(), "absent.yaml")))
}

func TestInit_MalformedFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0o644))
	assert.Error(t, Init(path))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "warn", JSON: true}, &buf)

	logger.Info("dropped")
	logger.Warn("kept", "order", "opening")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "opening", entry["order"])
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLogLevel(in), in)
	}
}
