package repository

import (
	"context"
	"database/sql"
	"errors"

	"tasks-api/internal/database"
	"tasks-api/internal/models"
	"tasks-api/pkg/logger"
)

// UserRepository reads accounts.
type UserRepository struct {
	db      *sql.DB
	dialect database.Dialect
}

func NewUserRepository(db *sql.DB, dialect database.Dialect) *UserRepository {
	return &UserRepository{db: db, dialect: dialect}
}

// FindByUsername returns the user or ErrNotFound.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		r.dialect.Rebind(`SELECT id, username, password_hash, created_at FROM users WHERE username = ?`), username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		logger.Error(ctx, "Repository FindByUsername failed", "error", err)
		return models.User{}, err
	}
	return u, nil
}
