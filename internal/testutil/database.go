// Package testutil provides fakes and fixtures shared by the package tests:
// scripted model adapters, a migrated in-memory database and builders for
// model replies.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/pantrychef/internal/storage"
)

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	// Seed stores raw documents by store name before the test runs.
	Seed           map[string]string
	Path           string
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory database that is closed when the
// test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	pantry, err := store.OpenPantry(ctx, db, store.Options{})
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *storage.SQLiteStorage {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()
	if !opts.SkipMigrations {
		if err := db.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	for name, doc := range opts.Seed {
		if err := db.Save(ctx, name, []byte(doc)); err != nil {
			t.Fatalf("failed to seed %q: %v", name, err)
		}
	}

	return db
}
