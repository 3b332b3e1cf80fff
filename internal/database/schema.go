package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

// The same DDL runs on Postgres and SQLite. Timestamps are fixed-width UTC text
// (models.TimeLayout) so range filters compare correctly as strings.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id),
		title TEXT NOT NULL CHECK (length(title) BETWEEN 1 AND 255),
		description TEXT NOT NULL DEFAULT '',
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_completed ON tasks(user_id, completed)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_user_created ON tasks(user_id, created_at)`,
}

// SeedUser is a demo account created at bootstrap.
type SeedUser struct {
	ID       string
	Username string
	Password string
}

// SeedUsers are the demo accounts every fresh database receives.
var SeedUsers = []SeedUser{
	{ID: "58ccc641-49bb-43af-b53f-f9b76764985f", Username: "admin", Password: "password123"},
	{ID: "d7af2463-edcf-468f-b303-bfbe4da895bc", Username: "user", Password: "password456"},
}

// MigrateOrCreateSchema creates the tables and indexes if missing and inserts the
// seed users that do not exist yet. Safe to run repeatedly.
func MigrateOrCreateSchema(ctx context.Context, db *sql.DB, d Dialect, bcryptCost int) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	for _, u := range SeedUsers {
		if err := seedUser(ctx, db, d, u, bcryptCost); err != nil {
			return err
		}
	}
	logger.Info(ctx, "Schema ready", "driver", string(d))
	return nil
}

func seedUser(ctx context.Context, db *sql.DB, d Dialect, u SeedUser, cost int) error {
	var n int
	if err := db.QueryRowContext(ctx, d.Rebind(`SELECT COUNT(*) FROM users WHERE username = ?`), u.Username).Scan(&n); err != nil {
		return fmt.Errorf("seed user %s: %w", u.Username, err)
	}
	if n > 0 {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}
	_, err = db.ExecContext(ctx,
		d.Rebind(`INSERT INTO users (id, username, password_hash, created_at) VALUES (?, ?, ?, ?)`),
		u.ID, u.Username, string(hash), models.FormatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("seed user %s: %w", u.Username, err)
	}
	return nil
}
