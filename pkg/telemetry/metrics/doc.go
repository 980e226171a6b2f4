// Package metrics provides Prometheus metrics for the advanced-feature engine.
//
// # Metrics
//
// All metric names are prefixed with the configured namespace and subsystem
// (default "scratchrobin_advanced_"):
//
//   - cdc_publish_attempts_total: publish attempts
//   - cdc_published_total: events delivered
//   - cdc_dead_lettered_total: events that exhausted their attempts
//   - rejects_total{code,component}: rejects raised by the engine
//   - decisions_total{component,outcome}: gated decisions by outcome
//   - masking_rows_total{profile}: rows masked by previews
//   - audit_write_failures_total{component}: failed audit writes
//
// # Usage
//
//	registry := prometheus.NewRegistry()
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, registry)
//	pipeline := reliability.NewPipeline(nil, reliability.WithObserver(collector.CDC()))
//
// Metrics are kept on a caller-supplied registry; the CLI can dump them to a
// node-exporter textfile with WriteTextfile.
package metrics
