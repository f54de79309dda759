package services

import (
	"context"
	"fmt"

	"github.com/avolkov/authdb/internal/cryptox"
	"github.com/avolkov/authdb/internal/logging"
	"github.com/avolkov/authdb/internal/repositories/sessions"
	"github.com/avolkov/authdb/internal/repositories/users"
)

// AuthService is the externally consumed facade: sign-in verifies
// credentials, sign-out revokes a session. Signing in does not itself
// create a session; callers compose SignIn with SessionService.Create as
// two explicit steps.
type AuthService struct {
	users    users.Repository
	sessions sessions.Repository
	logger   logging.Logger
}

// NewAuthService constructs the facade over the given repositories.
func NewAuthService(ur users.Repository, sr sessions.Repository, l logging.Logger) *AuthService {
	return &AuthService{users: ur, sessions: sr, logger: l.With("component", "auth")}
}

// SignIn verifies the password for the given username.
//
// An unknown username surfaces common.ErrNotFound (distinct from a wrong
// password, which is false with a nil error). A stored credential that does
// not decode surfaces common.ErrCorruptSecret. The comparison itself is
// constant time.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (bool, error) {
	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		return false, err
	}

	secret, err := cryptox.ParsePasswordSecret(user.PasswordSecret)
	if err != nil {
		return false, fmt.Errorf("stored credential for %s: %w", username, err)
	}

	ok, err := cryptox.Match(password, secret)
	if err != nil {
		return false, fmt.Errorf("error verifying password: %w", err)
	}

	s.logger.Info(ctx, "sign-in attempt", "username", username, "authenticated", ok)
	return ok, nil
}

// SignOut revokes the session with the given id. Idempotent: an already
// signed-out session is indistinguishable from a successful revocation.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	s.logger.Info(ctx, "signed out", "id", sessionID)
	return nil
}
