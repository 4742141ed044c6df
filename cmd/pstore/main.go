// Package main provides the pstore CLI entry point: a small demonstration
// shell over every persistent container in this module.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/persist/pkg/config"
	"github.com/Sumatoshi-tech/persist/pkg/telemetry"
	"github.com/Sumatoshi-tech/persist/pkg/version"
)

var (
	cfgFile  string              //nolint:gochecknoglobals // CLI flag variable
	cfg      *config.Config      //nolint:gochecknoglobals // loaded once in PersistentPreRunE, read by subcommands
	recorder *telemetry.Recorder //nolint:gochecknoglobals // nil (no-op) unless telemetry.enabled; read by subcommands
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pstore",
		Short: "Demonstrate the persist module's container data structures",
		Long: `pstore exercises the persist module's persistent stack, queue,
ordered map/set, hash map/set, and rose tree from the command line,
printing before/after snapshots to show that every mutation returns a new
version while leaving the one the caller already held untouched.`,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg = loadConfig()
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Logging.Level()})))

			return setupTelemetry(cfg)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")

	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(queueCmd())
	rootCmd.AddCommand(orderedCmd())
	rootCmd.AddCommand(hashCmd())
	rootCmd.AddCommand(treeCmd())
	rootCmd.AddCommand(plotCmd())
	rootCmd.AddCommand(footprintCmd())
	rootCmd.AddCommand(configShowCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "pstore %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)

		cfg, _ = config.Load("")
	}

	return cfg
}

// setupTelemetry installs a *telemetry.Recorder when telemetry is enabled in
// the resolved config, serving Prometheus scrapes on Telemetry.MetricsAddr
// in the background for the lifetime of the process. When telemetry is
// disabled, recorder stays nil, which every Recorder method treats as a
// no-op, so subcommands never need to branch on whether it is configured.
func setupTelemetry(cfg *config.Config) error {
	if !cfg.Telemetry.Enabled {
		return nil
	}

	meterProvider, handler, err := telemetry.PrometheusHandler()
	if err != nil {
		return fmt.Errorf("set up prometheus exporter: %w", err)
	}

	tracerProvider := telemetry.NewTracerProvider(cfg.Telemetry.ServiceName)

	recorder, err = telemetry.New(
		tracerProvider.Tracer(cfg.Telemetry.ServiceName),
		meterProvider.Meter(cfg.Telemetry.ServiceName),
	)
	if err != nil {
		return fmt.Errorf("build telemetry recorder: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	go func() {
		if srvErr := http.ListenAndServe(cfg.Telemetry.MetricsAddr, mux); srvErr != nil { //nolint:gosec // demo CLI, not a production listener
			slog.Error("metrics server stopped", "error", srvErr)
		}
	}()

	slog.Info("telemetry enabled", "metrics_addr", cfg.Telemetry.MetricsAddr, "service", cfg.Telemetry.ServiceName)

	return nil
}
