package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"scratchrobin-hq/advanced/pkg/config"
)

// Collector owns every metric subsystem of the engine.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	cdc       *CDCMetrics
	decisions *DecisionMetrics
	masking   *MaskingMetrics
	audit     *AuditMetrics
}

// NewCollector creates and registers all engine metrics. A nil registry gets
// a fresh one.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	local := *cfg
	if local.Namespace == "" {
		local.Namespace = config.DefaultMetricsNamespace
	}
	if local.Subsystem == "" {
		local.Subsystem = config.DefaultMetricsSubsystem
	}

	return &Collector{
		config:    &local,
		registry:  registry,
		cdc:       NewCDCMetrics(&local, registry),
		decisions: NewDecisionMetrics(&local, registry),
		masking:   NewMaskingMetrics(&local, registry),
		audit:     NewAuditMetrics(&local, registry),
	}
}

// Enabled reports whether metric recording is on.
func (c *Collector) Enabled() bool {
	return c != nil && c.config.Enabled
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// CDC returns the CDC delivery metrics.
func (c *Collector) CDC() *CDCMetrics { return c.cdc }

// Decisions returns the decision and reject metrics.
func (c *Collector) Decisions() *DecisionMetrics { return c.decisions }

// Masking returns the masking metrics.
func (c *Collector) Masking() *MaskingMetrics { return c.masking }

// Audit returns the audit metrics.
func (c *Collector) Audit() *AuditMetrics { return c.audit }

// WriteTextfile writes the current metric values to path in the Prometheus
// text exposition format.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
