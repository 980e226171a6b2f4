package advanced

import (
	"fmt"
	"log/slog"

	"scratchrobin-hq/advanced/pkg/audit"
	"scratchrobin-hq/advanced/pkg/audit/retention"
	"scratchrobin-hq/advanced/pkg/audit/storage"
	"scratchrobin-hq/advanced/pkg/config"
	"scratchrobin-hq/advanced/pkg/telemetry/metrics"
)

// OpenAuditStorage opens the backend selected by cfg.Backend.
func OpenAuditStorage(cfg *config.AuditConfig) (audit.Storage, error) {
	switch cfg.Backend {
	case "", "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		store, err := storage.NewSQLiteStorage(&storage.SQLiteConfig{
			Path:        cfg.SQLite.Path,
			Driver:      cfg.SQLite.Driver,
			WALMode:     cfg.SQLite.WALMode,
			BusyTimeout: cfg.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown audit backend %q", cfg.Backend)
	}
}

// NewAuditRecorder wraps store in a recorder that reports write failures to
// collector when it is enabled.
func NewAuditRecorder(store audit.Storage, collector *metrics.Collector, logger *slog.Logger) *audit.Recorder {
	opts := []audit.RecorderOption{audit.WithLogger(logger)}
	if collector.Enabled() {
		opts = append(opts, audit.WithWriteObserver(collector.Audit()))
	}
	return audit.NewRecorder(store, opts...)
}

// NewPruner builds a retention pruner for store from cfg.
func NewPruner(store audit.Storage, cfg *config.RetentionConfig) *retention.Pruner {
	return retention.NewPruner(store, &retention.Config{
		MaxAge:        cfg.MaxAge,
		MaxRecords:    cfg.MaxRecords,
		PruneSchedule: cfg.PruneSchedule,
	})
}
