package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"mercator-hq/chatlens/pkg/config"
	"mercator-hq/chatlens/pkg/history"
)

// Config contains configuration for the retention pruner.
type Config struct {
	// RetentionDays is the number of days to keep reports.
	// 0 means keep reports forever.
	RetentionDays int

	// MaxRecords is the maximum number of reports to keep.
	// 0 means unlimited.
	MaxRecords int64

	// Schedule is a cron expression for scheduled pruning.
	// Example: "0 3 * * *" (daily at 3 AM)
	Schedule string
}

// DefaultConfig returns the default retention configuration.
func DefaultConfig() *Config {
	return &Config{
		RetentionDays: config.DefaultRetentionDays,
		Schedule:      config.DefaultRetentionSchedule,
	}
}

// ConfigFrom converts the retention section of the application config.
func ConfigFrom(cfg config.RetentionConfig) *Config {
	return &Config{
		RetentionDays: cfg.Days,
		MaxRecords:    cfg.MaxRecords,
		Schedule:      cfg.Schedule,
	}
}

// RetentionError represents an error during retention enforcement.
type RetentionError struct {
	Phase string // "age" or "count"
	Cause error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [phase=%s]: %v", e.Phase, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// Pruner enforces retention on a history store.
type Pruner struct {
	storage history.Storage
	config  *Config
	logger  *slog.Logger
	now     func() time.Time
	onPrune func(deleted int64)
}

// NewPruner creates a new retention pruner.
func NewPruner(storage history.Storage, cfg *Config) *Pruner {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	return &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "history.retention"),
		now:     time.Now,
	}
}

// OnPrune registers fn to receive the count of every successful Prune,
// including zero. It must be called before the pruner is shared.
func (p *Pruner) OnPrune(fn func(deleted int64)) {
	p.onPrune = fn
}

// Config returns the pruner configuration.
func (p *Pruner) Config() *Config {
	return p.config
}

// Prune deletes reports older than the retention period, then the oldest
// reports beyond MaxRecords. It returns the total number deleted.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var totalDeleted int64

	if p.config.RetentionDays > 0 {
		deleted, err := p.pruneByAge(ctx)
		if err != nil {
			return totalDeleted, &RetentionError{Phase: "age", Cause: err}
		}
		totalDeleted += deleted
		p.logger.Debug("pruned reports by age",
			"deleted_count", deleted,
			"retention_days", p.config.RetentionDays,
		)
	}

	if p.config.MaxRecords > 0 {
		deleted, err := p.pruneByCount(ctx)
		if err != nil {
			return totalDeleted, &RetentionError{Phase: "count", Cause: err}
		}
		totalDeleted += deleted
		p.logger.Debug("pruned reports by count",
			"deleted_count", deleted,
			"max_records", p.config.MaxRecords,
		)
	}

	if p.onPrune != nil {
		p.onPrune(totalDeleted)
	}

	if totalDeleted > 0 {
		p.logger.Info("history pruning completed",
			"total_deleted", totalDeleted,
			"retention_days", p.config.RetentionDays,
			"max_records", p.config.MaxRecords,
		)
	}

	return totalDeleted, nil
}

// pruneByAge deletes reports analyzed before the cutoff.
func (p *Pruner) pruneByAge(ctx context.Context) (int64, error) {
	cutoff := p.now().AddDate(0, 0, -p.config.RetentionDays)
	return p.storage.Delete(ctx, &history.Query{Until: cutoff})
}

// pruneByCount deletes the oldest reports beyond MaxRecords.
func (p *Pruner) pruneByCount(ctx context.Context) (int64, error) {
	count, err := p.storage.Count(ctx, &history.Query{})
	if err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}

	excess := count - p.config.MaxRecords
	if excess <= 0 {
		return 0, nil
	}
	if excess > history.MaxLimit {
		excess = history.MaxLimit
	}

	oldest, err := p.storage.Query(ctx, &history.Query{
		SortOrder: history.SortAsc,
		Limit:     int(excess),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to query oldest reports: %w", err)
	}
	if len(oldest) == 0 {
		return 0, nil
	}

	ids := make([]string, len(oldest))
	for i, r := range oldest {
		ids[i] = r.ID
	}

	// IDs rather than a time cutoff, so reports sharing a timestamp with the
	// newest victim survive.
	return p.storage.Delete(ctx, &history.Query{IDs: ids})
}
