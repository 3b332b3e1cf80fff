// Package databasetest opens throwaway SQLite databases for tests.
package databasetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"tasks-api/internal/database"
)

// New returns a migrated, seeded SQLite database under t.TempDir().
func New(t testing.TB) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, database.SQLite, filepath.Join(t.TempDir(), "test.db"), 1)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := database.MigrateOrCreateSchema(ctx, db, database.SQLite, bcrypt.MinCost); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// Admin and Other are the seeded users.
var (
	Admin = database.SeedUsers[0]
	Other = database.SeedUsers[1]
)
