package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carlog/internal/models"
)

type SessionSQLite struct {
	db *sql.DB
}

func NewSessionSQLite(db *sql.DB) *SessionSQLite { return &SessionSQLite{db: db} }

var _ Sessions = (*SessionSQLite)(nil)

const (
	insertSessionSQL = `INSERT INTO sessions (token_id, user_id, created_at) VALUES (?, ?, ?)`
	selectSessionSQL = `SELECT token_id FROM sessions WHERE token_id = ?`
	deleteSessionSQL = `DELETE FROM sessions WHERE token_id = ?`
)

func (r *SessionSQLite) Create(ctx context.Context, s models.Session) error {
	created := s.CreatedAt
	if created == "" {
		created = time.Now().UTC().Format("2006-01-02 15:04:05")
	}
	if _, err := r.db.ExecContext(ctx, insertSessionSQL, s.TokenID, s.UserID, created); err != nil {
		return fmt.Errorf("insert session for user %q: %w", s.UserID, err)
	}
	return nil
}

// Exists reports whether the session row for the token is still present.
// A deleted row means the token was revoked by logout.
func (r *SessionSQLite) Exists(ctx context.Context, tokenID string) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, selectSessionSQL, tokenID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("select session: %w", err)
	}
	return true, nil
}

// Delete removes the session row. Deleting an absent row is not an error,
// which makes logout idempotent.
func (r *SessionSQLite) Delete(ctx context.Context, tokenID string) error {
	if _, err := r.db.ExecContext(ctx, deleteSessionSQL, tokenID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
