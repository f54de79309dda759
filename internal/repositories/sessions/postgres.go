// Package sessions provides SQLite- and PostgreSQL-backed repositories for
// session rows.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/dbx"
	"github.com/avolkov/authdb/internal/models"
)

// PostgresRepository implements Repository over a DBTX using PostgreSQL
// placeholders.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT NOT NULL PRIMARY KEY,
			session_key TEXT NOT NULL UNIQUE,
			user_id TEXT REFERENCES users(id) ON DELETE CASCADE,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, session_key, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.SessionKey, session.UserID, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ByKey(ctx context.Context, sessionKey string) (*models.Session, error) {
	query := `
		SELECT id, session_key, user_id, created_at, updated_at FROM sessions
		WHERE session_key = $1
	`
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, sessionKey).
		Scan(&session.ID, &session.SessionKey, &session.UserID, &session.CreatedAt, &session.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return session, nil
}

func (r *PostgresRepository) Refresh(ctx context.Context, id, sessionKey, updatedAt string) error {
	query := `UPDATE sessions SET session_key = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, sessionKey, updatedAt, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) All(ctx context.Context) ([]models.Session, error) {
	query := `SELECT id, session_key, user_id, created_at, updated_at FROM sessions`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.SessionKey, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
