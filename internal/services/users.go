// Package services contains the business logic composed from the
// repositories: account creation and lookup, the session lifecycle with
// key rotation, and the sign-in/sign-out facade.
package services

import (
	"context"
	"fmt"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/cryptox"
	"github.com/avolkov/authdb/internal/logging"
	"github.com/avolkov/authdb/internal/models"
	"github.com/avolkov/authdb/internal/repositories/users"
	"github.com/avolkov/authdb/internal/timex"
	"github.com/google/uuid"
)

// Username and password length bounds enforced on account creation.
const (
	UsernameMinLen = 2
	UsernameMaxLen = 32
	PasswordMinLen = 8
	PasswordMaxLen = 32
)

// UserService handles account creation and lookups.
type UserService struct {
	users  users.Repository
	logger logging.Logger
}

// NewUserService constructs a UserService over the given repository.
func NewUserService(r users.Repository, l logging.Logger) *UserService {
	return &UserService{users: r, logger: l.With("component", "users")}
}

// CreateTable initializes the users schema. Idempotent.
func (s *UserService) CreateTable(ctx context.Context) error {
	return s.users.CreateTable(ctx)
}

// Create validates the username and password bounds, rejects duplicate
// usernames, and stores the account with a freshly derived password secret.
//
// The existence pre-check is best effort: two concurrent creators can both
// pass it, and the store's UNIQUE constraint on username is the backstop
// (the insert then fails with a wrapped storage error rather than
// common.ErrAlreadyExists).
func (s *UserService) Create(ctx context.Context, username, password string) (*models.User, error) {
	if len(username) < UsernameMinLen {
		return nil, fmt.Errorf("%w: username must be at least %d characters long", common.ErrValidation, UsernameMinLen)
	}
	if len(username) > UsernameMaxLen {
		return nil, fmt.Errorf("%w: username must be at most %d characters long", common.ErrValidation, UsernameMaxLen)
	}
	if len(password) < PasswordMinLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters long", common.ErrValidation, PasswordMinLen)
	}
	if len(password) > PasswordMaxLen {
		return nil, fmt.Errorf("%w: password must be at most %d characters long", common.ErrValidation, PasswordMaxLen)
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username %s", common.ErrAlreadyExists, username)
	}

	secret, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	timestamp := timex.Now()
	user := &models.User{
		ID:             uuid.NewString(),
		Username:       username,
		PasswordSecret: secret,
		CreatedAt:      timestamp,
		UpdatedAt:      timestamp,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "id", user.ID, "username", user.Username)
	return user, nil
}

// ByID returns the account with the given id, or common.ErrNotFound.
// Absence is a normal outcome for lookups, not a failure.
func (s *UserService) ByID(ctx context.Context, id string) (*models.User, error) {
	return s.users.ByID(ctx, id)
}

// ByUsername returns the account with the given username, or common.ErrNotFound.
func (s *UserService) ByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.users.ByUsername(ctx, username)
}

// Exists reports whether an account with the given username exists. This is
// a pre-condition gate, never an authentication check.
func (s *UserService) Exists(ctx context.Context, username string) (bool, error) {
	return s.users.Exists(ctx, username)
}

// All returns an unordered snapshot of all accounts.
func (s *UserService) All(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// Delete removes an account; the store cascades deletion to any sessions
// bound to it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}
