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

// SQLiteRepository implements Repository over a DBTX using SQLite
// placeholders. Cascade delete of sessions with their owning user requires
// PRAGMA foreign_keys=ON on the connection (storemanager enables it).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// CreateTable performs idempotent schema initialization. session_key is
// UNIQUE so that authentication lookup is unambiguous; user_id is nullable
// and cascade-deletes with the owning user.
func (r *SQLiteRepository) CreateTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT NOT NULL PRIMARY KEY,
			session_key TEXT NOT NULL UNIQUE,
			user_id TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (id, session_key, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.SessionKey, session.UserID, session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ByKey(ctx context.Context, sessionKey string) (*models.Session, error) {
	query := `
		SELECT id, session_key, user_id, created_at, updated_at FROM sessions
		WHERE session_key = ?
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

// Refresh replaces the session key and updated_at for the given id. Updating
// a missing id affects zero rows and is not an error.
func (r *SQLiteRepository) Refresh(ctx context.Context, id, sessionKey, updatedAt string) error {
	query := `UPDATE sessions SET session_key = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, sessionKey, updatedAt, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Delete removes a session row by id. Deleting a missing id is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) All(ctx context.Context) ([]models.Session, error) {
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
