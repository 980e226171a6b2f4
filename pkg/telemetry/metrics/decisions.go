package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"scratchrobin-hq/advanced/pkg/config"
)

// DecisionMetrics tracks gated decisions and the rejects they raise.
type DecisionMetrics struct {
	rejects   *prometheus.CounterVec
	decisions *prometheus.CounterVec
}

// NewDecisionMetrics creates and registers decision metrics with the provided registry.
func NewDecisionMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DecisionMetrics {
	m := &DecisionMetrics{
		rejects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rejects_total",
				Help:      "Total number of rejects raised, by code and component",
			},
			[]string{"code", "component"},
		),
		decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "decisions_total",
				Help:      "Total number of gated decisions, by component and outcome",
			},
			[]string{"component", "outcome"},
		),
	}

	registry.MustRegister(m.rejects, m.decisions)
	return m
}

// RecordReject counts a reject.
//
// Example:
//
//	m.RecordReject("SRB1-R-7301", "review")
func (m *DecisionMetrics) RecordReject(code, component string) {
	m.rejects.WithLabelValues(code, component).Inc()
}

// RecordDecision counts a decision outcome ("allowed" or "rejected").
func (m *DecisionMetrics) RecordDecision(component, outcome string) {
	m.decisions.WithLabelValues(component, outcome).Inc()
}
