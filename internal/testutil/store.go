// Package testutil provides shared test infrastructure: migrated session stores
// and, in the patients subpackage, clinical fixtures.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/ckd-predict/internal/storage"
)

// SetupTestStore creates an in-memory SQLite session store, migrates it and
// seeds it with the given keys. The store is closed when the test ends.
//
// Example:
//
//	store := testutil.SetupTestStore(t, map[string]string{
//		"user":  `{"name":"Ada","email":"ada@example.com"}`,
//		"token": "tok-1",
//	})
func SetupTestStore(t *testing.T, seed map[string]string) *storage.SQLiteStore {
	t.Helper()

	store, err := storage.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	for key, value := range seed {
		if err := store.Set(ctx, key, value); err != nil {
			t.Fatalf("failed to seed %q: %v", key, err)
		}
	}

	return store
}

// StoreContents returns every key and value in store.
func StoreContents(t *testing.T, store storage.Store) map[string]string {
	t.Helper()

	ctx := context.Background()
	keys, err := store.Keys(ctx)
	if err != nil {
		t.Fatalf("failed to list keys: %v", err)
	}

	out := make(map[string]string, len(keys))
	for _, key := range keys {
		value, ok, err := store.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("failed to read %q: ok=%v err=%v", key, ok, err)
		}
		out[key] = value
	}
	return out
}
