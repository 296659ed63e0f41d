// Package testutil provides shared fixtures and a throwaway history database
// for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/sift/internal/model"
	"github.com/Veraticus/sift/internal/storage"
)

// TestDB is a migrated history database closed when the test ends.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// TestDBOptions configures SetupTestDBWithOptions.
type TestDBOptions struct {
	Path           string // Database file; empty means in-memory
	Ingestions     []*model.Ingestion
	SkipMigrations bool
}

// SetupTestDB creates a migrated in-memory database.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	id := db.MustSave(testutil.SampleIngestion("statement.csv"))
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{})
}

// SetupTestDBWithOptions creates a database and seeds the given ingestions.
// A file path lets other code open the same database while the test runs.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := opts.Path
	if path == "" {
		path = ":memory:"
	}

	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if !opts.SkipMigrations {
		if err := store.Migrate(context.Background()); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	db := &TestDB{Storage: store, t: t}
	for _, ing := range opts.Ingestions {
		db.MustSave(ing)
	}
	return db
}

// MustSave saves ing or fails the test.
func (db *TestDB) MustSave(ing *model.Ingestion) int64 {
	db.t.Helper()
	id, err := db.Storage.SaveIngestion(context.Background(), ing)
	if err != nil {
		db.t.Fatalf("failed to save ingestion %q: %v", ing.Source, err)
	}
	return id
}

// MustGet loads a saved ingestion or fails the test.
func (db *TestDB) MustGet(id int64) *model.Ingestion {
	db.t.Helper()
	ing, err := db.Storage.GetIngestion(context.Background(), id)
	if err != nil {
		db.t.Fatalf("failed to get ingestion %d: %v", id, err)
	}
	return ing
}
