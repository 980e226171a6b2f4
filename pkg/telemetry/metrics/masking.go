package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"scratchrobin-hq/advanced/pkg/config"
)

// MaskingMetrics tracks masking previews.
type MaskingMetrics struct {
	rows *prometheus.CounterVec
}

// NewMaskingMetrics creates and registers masking metrics with the provided registry.
func NewMaskingMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *MaskingMetrics {
	m := &MaskingMetrics{
		rows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "masking_rows_total",
				Help:      "Total number of rows masked by previews, by profile",
			},
			[]string{"profile"},
		),
	}

	registry.MustRegister(m.rows)
	return m
}

// RecordRows counts rows masked with a profile. Inline rule sets use the
// profile label "inline".
func (m *MaskingMetrics) RecordRows(profile string, rows int) {
	if profile == "" {
		profile = "inline"
	}
	m.rows.WithLabelValues(profile).Add(float64(rows))
}
