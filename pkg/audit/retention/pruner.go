package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"scratchrobin-hq/advanced/pkg/audit"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// MaxAge deletes records older than this age. Zero keeps records forever.
	MaxAge time.Duration

	// MaxRecords is the maximum number of records to keep. Zero means unlimited.
	MaxRecords int64

	// PruneSchedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	PruneSchedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxAge:        90 * 24 * time.Hour,
		PruneSchedule: "0 3 * * *",
	}
}

// Pruner enforces retention limits on an audit store.
type Pruner struct {
	storage audit.Storage
	config  *Config
	now     func() time.Time
	logger  *slog.Logger
}

// NewPruner creates a new retention pruner.
func NewPruner(storage audit.Storage, config *Config) *Pruner {
	if config == nil {
		config = DefaultConfig()
	}
	return &Pruner{
		storage: storage,
		config:  config,
		now:     time.Now,
		logger:  slog.Default().With("component", "audit.retention"),
	}
}

// Config returns the pruner's configuration.
func (p *Pruner) Config() Config {
	return *p.config
}

// Prune deletes records older than MaxAge, then the oldest records beyond
// MaxRecords. It returns the total number of records deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.MaxAge > 0 {
		cutoff := p.now().Add(-p.config.MaxAge)
		deleted, err := p.storage.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return total, audit.NewRetentionError(p.config.MaxAge, fmt.Errorf("prune by age failed: %w", err))
		}
		total += deleted
		p.logger.Debug("pruned records by age", "deleted_count", deleted, "cutoff_time", cutoff)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return total, audit.NewRetentionError(p.config.MaxAge, fmt.Errorf("prune by count failed: %w", err))
		}
		total += deleted
	}

	if total > 0 {
		p.logger.Info("audit pruning completed",
			"total_deleted", total,
			"max_age", p.config.MaxAge,
			"max_records", p.config.MaxRecords,
		)
	}

	return total, nil
}

func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &audit.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	if count <= p.config.MaxRecords {
		return 0, nil
	}

	excess := count - p.config.MaxRecords
	p.logger.Debug("record count exceeds limit, pruning oldest",
		"current_count", count,
		"max_records", p.config.MaxRecords,
		"to_delete", excess,
	)
	return p.storage.DeleteOldest(ctx, excess)
}
