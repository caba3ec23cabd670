package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/ckd-predict/internal/common"
	"github.com/Veraticus/ckd-predict/internal/service"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Store is a key-value store that can also be listed and wiped.
type Store interface {
	service.KeyValueStore
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// Open returns a ready-to-use store for the configured driver.
// SQLite stores are migrated before being returned.
func Open(ctx context.Context, driver, path string) (Store, error) {
	switch driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite, "":
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: unknown storage driver %q", common.ErrInvalidConfig, driver)
	}
}
