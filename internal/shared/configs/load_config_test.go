package configs

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp(t.TempDir(), "test_config_*.yml")
	require.NoError(t, err)

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	return tmpfile.Name()
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	path := writeTempConfig(t, `log:
  level: debug
  file: ./logpulse.log
monitor:
  port: 8080
  read_header_timeout: 5
  read_timeout: 10
  write_timeout: 10
  idle_timeout: 60
pipeline:
  queue_capacity: 2048
window:
  initial_duration: 25s
  high_threshold: 100
  low_threshold: 10
  history_length: 4
  max_duration: 120s
  smoothing_factor: 0.7
report:
  interval: 2s
  top_messages: 5
  export_path: ./snapshot.json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "./logpulse.log", cfg.Log.File)
	assert.Equal(t, 8080, cfg.Monitor.Port)
	assert.Equal(t, 5, cfg.Monitor.ReadHeaderTimeout)
	assert.Equal(t, 2048, cfg.Pipeline.QueueCapacity)
	assert.Equal(t, 25*time.Second, cfg.Window.InitialDuration)
	assert.Equal(t, 100.0, cfg.Window.HighThreshold)
	assert.Equal(t, 10.0, cfg.Window.LowThreshold)
	assert.Equal(t, 4, cfg.Window.HistoryLength)
	assert.Equal(t, 120*time.Second, cfg.Window.MaxDuration)
	assert.Equal(t, 0.7, cfg.Window.SmoothingFactor)
	assert.Equal(t, 2*time.Second, cfg.Report.Interval)
	assert.Equal(t, 5, cfg.Report.TopMessages)
	assert.Equal(t, "./snapshot.json", cfg.Report.ExportPath)
}

func TestLoadConfig_DefaultsFillOptionalKeys(t *testing.T) {
	// Thresholds are the only keys without defaults.
	path := writeTempConfig(t, `window:
  high_threshold: 50
  low_threshold: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, 9600, cfg.Monitor.Port)
	assert.Equal(t, 1024, cfg.Pipeline.QueueCapacity)
	assert.Equal(t, 15*time.Second, cfg.Window.InitialDuration)
	assert.Equal(t, 8, cfg.Window.HistoryLength)
	assert.Equal(t, time.Duration(0), cfg.Window.MaxDuration)
	assert.Equal(t, 0.5, cfg.Window.SmoothingFactor)
	assert.Equal(t, time.Second, cfg.Report.Interval)
	assert.Equal(t, 3, cfg.Report.TopMessages)
	assert.Empty(t, cfg.Report.ExportPath)
}

func TestLoadConfig_MissingThresholds(t *testing.T) {
	path := writeTempConfig(t, `window:
  initial_duration: 30s
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "window.highthreshold")
	assert.Contains(t, err.Error(), "window.lowthreshold")
}

func TestLoadConfig_LowThresholdMustBeBelowHigh(t *testing.T) {
	path := writeTempConfig(t, `window:
  high_threshold: 10
  low_threshold: 10
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "window.lowthreshold")
}

func TestLoadConfig_InitialDurationBelowFloor(t *testing.T) {
	path := writeTempConfig(t, `window:
  initial_duration: 5s
  high_threshold: 50
  low_threshold: 5
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "window.initialduration")
}

func TestLoadConfig_SmoothingFactorOutOfRange(t *testing.T) {
	path := writeTempConfig(t, `window:
  high_threshold: 50
  low_threshold: 5
  smoothing_factor: 1.5
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "window.smoothingfactor")
}

func TestLoadConfig_InvalidPortRange(t *testing.T) {
	path := writeTempConfig(t, `monitor:
  port: 70000
window:
  high_threshold: 50
  low_threshold: 5
`)

	cfg, err := LoadConfig(path)
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), "monitor.port")
}

func TestLoadConfig_InvalidLogLevelPassesValidation(t *testing.T) {
	// Level strings are parsed by the logger, not the config layer.
	path := writeTempConfig(t, `log:
  level: invalid
window:
  high_threshold: 50
  low_threshold: 5
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "invalid", cfg.Log.Level)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/configs.yml")
	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
