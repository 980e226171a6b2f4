package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scratchrobin-hq/advanced/pkg/advanced"
	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/cli"
	"scratchrobin-hq/advanced/pkg/config"
	"scratchrobin-hq/advanced/pkg/telemetry/logging"
	"scratchrobin-hq/advanced/pkg/telemetry/metrics"
)

var (
	// Global flags
	cfgFile      string
	verbose      bool
	outputFormat string
	metricsFile  string
)

var rootCmd = &cobra.Command{
	Use:   "advancedctl",
	Short: "ScratchRobin advanced-feature policy and reliability engine",
	Long: `advancedctl runs the ScratchRobin advanced-feature engine locally.

Every gated operation either succeeds or fails with a stable reject code
(SRB1-R-NNNN). Rejects exit with status 2 and print "code: message (detail)".

Without --config the built-in defaults are used.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, csv)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
}

// app is the engine wired for one command invocation.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	collector *metrics.Collector
	store     audit.Storage
	svc       *advanced.Service
}

// loadConfig reads --config with environment overrides applied, or returns
// the defaults when it is unset.
func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and builds the service with logging, metrics and
// the audit mirror. Callers must Close the result.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logCfg := logging.FromConfig(cfg.Telemetry.Logging, cmd.ErrOrStderr())
	if verbose {
		logCfg.Level = "debug"
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:       cfg,
		logger:    logger,
		collector: metrics.NewCollector(&cfg.Telemetry.Metrics, nil),
	}

	opts := []advanced.Option{
		advanced.WithLogger(logger),
		advanced.WithMetrics(a.collector),
		advanced.WithWaiter(time.Sleep),
	}
	if cfg.Audit.Enabled {
		store, err := advanced.OpenAuditStorage(&cfg.Audit)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit storage: %w", err)
		}
		a.store = store
		opts = append(opts, advanced.WithRecorder(advanced.NewAuditRecorder(store, a.collector, logger)))
	}

	svc, err := advanced.New(cfg, opts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.svc = svc
	return a, nil
}

// Close writes the metrics file when requested and releases the audit store.
func (a *app) Close() error {
	var errs []error
	if metricsFile != "" && a.collector.Enabled() {
		errs = append(errs, a.collector.WriteTextfile(metricsFile))
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	return errors.Join(errs...)
}

// render writes data to w in the --format output format.
func render(w io.Writer, data any) error {
	formatter, err := cli.NewFormatter(cli.OutputFormat(outputFormat))
	if err != nil {
		return err
	}
	return formatter.FormatTo(w, data)
}
