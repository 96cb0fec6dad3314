package history

import (
	"fmt"

	"mercator-hq/chatlens/pkg/config"
)

const (
	// BackendSQLite selects SQLiteStorage.
	BackendSQLite = "sqlite"
	// BackendMemory selects MemoryStorage.
	BackendMemory = "memory"
)

// NewStorage creates the backend named by cfg.Backend.
func NewStorage(cfg config.HistoryConfig) (Storage, error) {
	switch cfg.Backend {
	case BackendSQLite, "":
		return NewSQLiteStorage(SQLiteConfigFrom(cfg.SQLite))
	case BackendMemory:
		return NewMemoryStorage(), nil
	default:
		return nil, NewStorageError(cfg.Backend, "open", fmt.Errorf("unsupported history backend %q", cfg.Backend))
	}
}
