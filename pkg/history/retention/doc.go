// Package retention removes old reports from a history store.
//
// A Pruner deletes records older than RetentionDays, then trims the store to
// MaxRecords by removing the oldest records. A Scheduler runs the Pruner on a
// standard 5-field cron expression using github.com/robfig/cron/v3:
//
//	pruner := retention.NewPruner(store, retention.ConfigFrom(cfg.History.Retention))
//	scheduler := retention.NewScheduler(pruner)
//	if err := scheduler.Start(ctx); err != nil {
//		return err
//	}
//	defer scheduler.Stop()
package retention
