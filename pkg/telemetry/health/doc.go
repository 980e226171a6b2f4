// Package health runs readiness checks over the engine's dependencies: the
// audit store, the metrics registry, credential directories and loaded
// policy tables.
//
// Checks run concurrently, each under its own timeout. A failing check
// marks the report degraded without stopping the others.
package health
