// Package config loads and validates runtime configuration for the pstore
// CLI and its optional telemetry: viper, layered over defaults, a config
// file, and PERSIST_-prefixed environment variables, unmarshalled into a
// typed struct and validated once at startup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/persist/pkg/phamt"
)

// Sentinel validation errors.
var (
	ErrBitsMismatch    = errors.New("configured hamt bits does not match the compiled fan-out width")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Default configuration values.
const (
	defaultMetricsAddr = ":9090"
	defaultServiceName = "persist"
	defaultLogLevel    = "info"
	defaultLogFormat   = "text"
)

// Config holds all runtime configuration for the persist CLI. The yaml tags
// mirror the mapstructure ones so that `pstore config` can round-trip the
// effective configuration back out as YAML via yaml.Marshal.
type Config struct {
	Hamt      HamtConfig      `mapstructure:"hamt"      yaml:"hamt"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// HamtConfig records the trie fan-out the deployment expects. Bits is not
// actually tunable at runtime (pkg/phamt.Bits is a compile-time constant
// the trie's fixed-size child arrays rely on), so this is validated against
// the binary's compiled-in value rather than used to reconfigure it: it
// exists so a config file that drifts from the binary it's paired with
// fails fast instead of silently mislabeling telemetry.
type HamtConfig struct {
	Bits int `mapstructure:"bits" yaml:"bits"`
}

// TelemetryConfig controls the optional OpenTelemetry tracing and
// Prometheus metrics exporters in pkg/telemetry.
type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	MetricsAddr string `mapstructure:"metrics_addr" yaml:"metrics_addr"`
	Enabled     bool   `mapstructure:"enabled"      yaml:"enabled"`
}

// LoggingConfig controls the log/slog handler used by the CLI.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Load loads configuration from configPath (or the default search path, if
// empty), layering a config file over built-in defaults and PERSIST_-prefixed
// environment variables over both, then validates the result.
func Load(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName("config")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/persist")
	}

	viperCfg.SetEnvPrefix("PERSIST")
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if readErr := viperCfg.ReadInConfig(); readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config

	if err := viperCfg.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(viperCfg *viper.Viper) {
	viperCfg.SetDefault("hamt.bits", phamt.Bits)

	viperCfg.SetDefault("telemetry.enabled", false)
	viperCfg.SetDefault("telemetry.service_name", defaultServiceName)
	viperCfg.SetDefault("telemetry.metrics_addr", defaultMetricsAddr)

	viperCfg.SetDefault("logging.level", defaultLogLevel)
	viperCfg.SetDefault("logging.format", defaultLogFormat)
}

func validateConfig(cfg *Config) error {
	if cfg.Hamt.Bits != phamt.Bits {
		return fmt.Errorf("%w: configured %d, compiled %d", ErrBitsMismatch, cfg.Hamt.Bits, phamt.Bits)
	}

	if _, err := parseLevel(cfg.Logging.Level); err != nil {
		return err
	}

	return nil
}

// parseLevel maps a config string onto an slog.Level, the way the CLI's
// logging setup chooses a handler level.
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, level)
	}
}

// Level returns the logging level as an slog.Level, the level the pstore
// CLI's slog handler is configured with. An unrecognized level yields
// slog.LevelInfo.
func (c LoggingConfig) Level() slog.Level {
	lvl, err := parseLevel(c.Level)
	if err != nil {
		return slog.LevelInfo
	}

	return lvl
}
