package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when no row matches.
var ErrNotFound = errors.New("repository: not found")

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}
