package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/persist/pkg/config"
	"github.com/Sumatoshi-tech/persist/pkg/phamt"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, phamt.Bits, cfg.Hamt.Bits)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "persist", cfg.Telemetry.ServiceName)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	configContent := `
telemetry:
  enabled: true
  service_name: "persist-demo"
  metrics_addr: ":9999"

logging:
  level: "debug"
  format: "json"
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	tmpFile.Close()

	cfg, loadErr := config.Load(tmpFile.Name())
	require.NoError(t, loadErr)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "persist-demo", cfg.Telemetry.ServiceName)
	assert.Equal(t, ":9999", cfg.Telemetry.MetricsAddr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PERSIST_TELEMETRY_ENABLED", "true")
	t.Setenv("PERSIST_LOGGING_LEVEL", "warn")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateRejectsBitsMismatch(t *testing.T) {
	t.Parallel()

	configContent := `
hamt:
  bits: 7
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-bad-bits-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	tmpFile.Close()

	_, loadErr := config.Load(tmpFile.Name())
	require.ErrorIs(t, loadErr, config.ErrBitsMismatch)
}

func TestValidateRejectsUnknownLogLevel(t *testing.T) {
	t.Parallel()

	configContent := `
logging:
  level: "verbose"
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-bad-level-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	tmpFile.Close()

	_, loadErr := config.Load(tmpFile.Name())
	require.ErrorIs(t, loadErr, config.ErrInvalidLogLevel)
}

func TestLoggingConfigLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "INFO", config.LoggingConfig{Level: "info"}.Level().String())
	assert.Equal(t, "DEBUG", config.LoggingConfig{Level: "debug"}.Level().String())
	assert.Equal(t, "INFO", config.LoggingConfig{Level: "bogus"}.Level().String())
}
