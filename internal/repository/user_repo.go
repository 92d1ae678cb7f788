package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carlog/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite { return &UserSQLite{db: db} }

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL           = `INSERT INTO users (id, name, username, password) VALUES (?, ?, ?, ?)`
	selectUserByUsernameSQL = `SELECT id, name, username, password FROM users WHERE username = ?`
	selectUserByIDSQL       = `SELECT id, name, username, password FROM users WHERE id = ?`
	updateUserPasswordSQL   = `UPDATE users SET password = ? WHERE id = ?`
)

func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	if _, err := r.db.ExecContext(ctx, insertUserSQL, u.ID, u.Name, u.Username, u.Password); err != nil {
		return fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	return nil
}

// GetByUsername fetches a user by username. The column is COLLATE NOCASE, so
// the lookup is case-insensitive. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByUsernameSQL, username), username)
}

// GetByID fetches a user by id. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), id)
}

func (r *UserSQLite) UpdatePassword(ctx context.Context, id, password string) error {
	res, err := r.db.ExecContext(ctx, updateUserPasswordSQL, password, id)
	if err != nil {
		return fmt.Errorf("update password for user %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update password: user %q not found", id)
	}
	return nil
}

func (r *UserSQLite) scanOne(row *sql.Row, key string) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Username, &u.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", key, err)
	}
	return &u, nil
}
