package service_test

import (
	"path/filepath"
	"testing"

	"github.com/captain-stacks/nutrition-gpt/internal/db"
	"github.com/captain-stacks/nutrition-gpt/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutrition.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store.New(sqldb)
}
