package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"scratchrobin-hq/advanced/pkg/config"
)

// CDCMetrics tracks change-data-capture delivery. It implements
// reliability.Observer.
type CDCMetrics struct {
	attempts     prometheus.Counter
	published    prometheus.Counter
	deadLettered prometheus.Counter
}

// NewCDCMetrics creates and registers CDC metrics with the provided registry.
func NewCDCMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CDCMetrics {
	m := &CDCMetrics{
		attempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cdc_publish_attempts_total",
			Help:      "Total number of CDC publish attempts",
		}),
		published: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cdc_published_total",
			Help:      "Total number of CDC events delivered",
		}),
		deadLettered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cdc_dead_lettered_total",
			Help:      "Total number of CDC events moved to the dead-letter queue",
		}),
	}

	registry.MustRegister(m.attempts, m.published, m.deadLettered)
	return m
}

// Attempt records one publish attempt.
func (m *CDCMetrics) Attempt() { m.attempts.Inc() }

// Published records a delivered event.
func (m *CDCMetrics) Published() { m.published.Inc() }

// DeadLettered records an exhausted event.
func (m *CDCMetrics) DeadLettered() { m.deadLettered.Inc() }
