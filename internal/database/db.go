package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"tasks-api/internal/config"
	"tasks-api/pkg/logger"
)

// Dialect is the database/sql driver name, which also selects placeholder style.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a DATABASE_DRIVER value to a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql", "pq":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", driver)
}

// Rebind rewrites ? placeholders into the dialect's form ($1, $2, ... for Postgres).
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}

var (
	pool    *sql.DB
	dialect Dialect
	initErr error
	once    sync.Once
)

// DB returns the global database connection pool (initialized on first use).
// Concurrent first calls share a single initialization.
func DB(ctx context.Context) (*sql.DB, Dialect, error) {
	once.Do(func() {
		cfg := config.Get()
		if cfg.DatabaseURL == "" {
			initErr = errors.New("DATABASE_URL is not set")
			return
		}
		d, err := ParseDialect(cfg.DatabaseDriver)
		if err != nil {
			initErr = err
			return
		}
		db, err := Open(ctx, d, cfg.DatabaseURL, cfg.DBPoolSize)
		if err != nil {
			initErr = err
			return
		}
		pool, dialect = db, d
		logger.Info(ctx, "Database pool initialized", "driver", string(d), "max_open", cfg.DBPoolSize)
	})
	return pool, dialect, initErr
}

// Open opens and pings a connection pool. SQLite is limited to one connection
// since the engine serializes writers anyway.
func Open(ctx context.Context, d Dialect, dsn string, poolSize int) (*sql.DB, error) {
	if d == SQLite {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
		dsn = sqliteDSN(dsn)
	}
	db, err := sql.Open(string(d), dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if d == SQLite {
		db.SetMaxOpenConns(1)
	} else if poolSize > 0 {
		db.SetMaxOpenConns(poolSize)
		db.SetMaxIdleConns(poolSize / 2)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Close releases the global pool if it was opened.
func Close() error {
	if pool == nil {
		return nil
	}
	return pool.Close()
}

func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "_pragma") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
}

func ensureDir(dsn string) error {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}
	return nil
}
