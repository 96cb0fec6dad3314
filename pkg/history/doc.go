// Package history persists analysis reports so the status of a dialog can be
// followed across runs.
//
// Two backends implement Storage:
//
//   - MemoryStorage keeps records in a map and is meant for tests and
//     short-lived processes.
//   - SQLiteStorage writes to a SQLite database. The database/sql driver is
//     selectable: "sqlite" uses the pure Go modernc.org/sqlite driver and
//     "sqlite3" uses the cgo github.com/mattn/go-sqlite3 driver.
//
// NewStorage picks the backend from config.HistoryConfig:
//
//	store, err := history.NewStorage(cfg.History)
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	if err := store.Store(ctx, history.FromReport(rep)); err != nil {
//		return err
//	}
//	latest, err := store.Latest(ctx, "exports/chat.json")
//
// Old records are removed by the retention subpackage.
package history
