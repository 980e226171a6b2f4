// Package telemetry groups the engine's observability packages.
//
// # Components
//
//   - logging: slog construction with secret redaction and request context
//   - metrics: Prometheus counters for CDC delivery, decisions, masking and audit writes
//   - health: concurrent readiness checks
//
// # Usage
//
//	logger, err := logging.New(logging.FromConfig(cfg.Telemetry.Logging, os.Stderr))
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	svc, err := advanced.New(cfg, advanced.WithLogger(logger), advanced.WithMetrics(collector))
//
// Metrics are registered on a caller-supplied registry, never the global
// default one. The CLI writes them to a textfile with --metrics-file.
package telemetry
