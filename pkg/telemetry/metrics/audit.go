package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"scratchrobin-hq/advanced/pkg/config"
)

// AuditMetrics tracks the audit mirror. It implements audit.WriteObserver.
type AuditMetrics struct {
	writeFailures *prometheus.CounterVec
}

// NewAuditMetrics creates and registers audit metrics with the provided registry.
func NewAuditMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *AuditMetrics {
	m := &AuditMetrics{
		writeFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_write_failures_total",
				Help:      "Total number of failed audit writes, by component",
			},
			[]string{"component"},
		),
	}

	registry.MustRegister(m.writeFailures)
	return m
}

// WriteFailed counts a failed audit write.
func (m *AuditMetrics) WriteFailed(component string) {
	m.writeFailures.WithLabelValues(component).Inc()
}
