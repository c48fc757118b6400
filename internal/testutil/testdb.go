package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/amreid/nextup/internal/db"
	"github.com/amreid/nextup/internal/repository"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// SeedUser inserts a user row and returns its id. Most tables have a foreign
// key to users, so tests call this first.
func SeedUser(t *testing.T, database *sql.DB, id string) string {
	t.Helper()
	users := repository.NewSQLiteUserRepo(database)
	if err := users.Create(context.Background(), id, id+"@example.com"); err != nil {
		t.Fatalf("failed to seed user %s: %v", id, err)
	}
	return id
}
