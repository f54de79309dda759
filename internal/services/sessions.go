package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/cryptox"
	"github.com/avolkov/authdb/internal/dbx"
	"github.com/avolkov/authdb/internal/logging"
	"github.com/avolkov/authdb/internal/models"
	"github.com/avolkov/authdb/internal/repositories/sessions"
	"github.com/avolkov/authdb/internal/repositories/storemanager"
	"github.com/avolkov/authdb/internal/timex"
	"github.com/google/uuid"
)

// SessionService handles the session lifecycle: issuance, rotation on every
// successful authentication, and revocation. Rotation runs inside a
// transaction so the lookup and the key replacement are observed together.
type SessionService struct {
	db      *sql.DB
	manager storemanager.RepositoryManager
	logger  logging.Logger
}

// NewSessionService constructs a SessionService using the repository manager
// and the database handle transactions are started on.
func NewSessionService(db *sql.DB, m storemanager.RepositoryManager, l logging.Logger) *SessionService {
	return &SessionService{db: db, manager: m, logger: l.With("component", "sessions")}
}

// CreateTable initializes the sessions schema. Idempotent.
func (s *SessionService) CreateTable(ctx context.Context) error {
	return s.manager.Sessions(s.db).CreateTable(ctx)
}

// Create issues a new session for userID with a fresh random key. An empty
// userID issues an unbound session (user_id stays null until bound).
func (s *SessionService) Create(ctx context.Context, userID string) (*models.Session, error) {
	key, err := cryptox.NewSessionKey()
	if err != nil {
		return nil, fmt.Errorf("error generating session key: %w", err)
	}

	timestamp := timex.Now()
	session := &models.Session{
		ID:         uuid.NewString(),
		SessionKey: key,
		UserID:     sql.NullString{String: userID, Valid: userID != ""},
		CreatedAt:  timestamp,
		UpdatedAt:  timestamp,
	}

	if err := s.manager.Sessions(s.db).Create(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	s.logger.Info(ctx, "session created", "id", session.ID, "user_id", userID)
	s.logger.Debug(ctx, "session key issued", "session_key", key)
	return session, nil
}

// Authenticate resolves a presented session key to its owning account.
//
// A nil, nil return means "not authenticated" and is the normal outcome for
// an unknown or stale key. When the key matches, the session is rotated
// before the account is resolved, so the presented key is consumed whether
// or not the session is bound to a user.
func (s *SessionService) Authenticate(ctx context.Context, sessionKey string) (*models.User, error) {
	var session *models.Session

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.manager.Sessions(tx)

		found, err := repo.ByKey(ctx, sessionKey)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("error looking up session: %w", err)
		}
		session = found

		return s.rotate(ctx, repo, session.ID)
	})
	if err != nil {
		return nil, err
	}

	if session == nil || !session.UserID.Valid {
		return nil, nil
	}

	user, err := s.manager.Users(s.db).ByID(ctx, session.UserID.String)
	if err != nil {
		// Cascade delete should prevent a dangling user_id, but it is not
		// guaranteed atomic with this read.
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("error resolving session user: %w", err)
	}
	return user, nil
}

// Refresh rotates the session key for the given id and stamps updated_at.
// Refreshing a missing id is a silent no-op.
func (s *SessionService) Refresh(ctx context.Context, id string) error {
	return s.rotate(ctx, s.manager.Sessions(s.db), id)
}

// Delete revokes a session. Idempotent: deleting an unknown id succeeds.
func (s *SessionService) Delete(ctx context.Context, id string) error {
	if err := s.manager.Sessions(s.db).Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	s.logger.Info(ctx, "session deleted", "id", id)
	return nil
}

// All returns an unordered snapshot of all sessions. The rows carry raw
// session keys; treat this as a privileged debugging operation.
func (s *SessionService) All(ctx context.Context) ([]models.Session, error) {
	return s.manager.Sessions(s.db).All(ctx)
}

func (s *SessionService) rotate(ctx context.Context, repo sessions.Repository, id string) error {
	key, err := cryptox.NewSessionKey()
	if err != nil {
		return fmt.Errorf("error generating session key: %w", err)
	}

	if err := repo.Refresh(ctx, id, key, timex.Now()); err != nil {
		return fmt.Errorf("error refreshing session: %w", err)
	}

	s.logger.Debug(ctx, "session key rotated", "id", id, "session_key", key)
	return nil
}
