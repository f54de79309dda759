package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/cryptox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserCreate_ValidationBounds(t *testing.T) {
	s := NewUserService(newFakeUsersRepo(), testLogger())
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		wantMsg  string
	}{
		{"username too short", "a", "password123", "at least 2"},
		{"username too long", strings.Repeat("x", 33), "password123", "at most 32"},
		{"password too short", "ok", "short", "at least 8"},
		{"password too long", "ok", strings.Repeat("x", 33), "at most 32"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(ctx, tc.username, tc.password)
			assert.True(t, errors.Is(err, common.ErrValidation), "got %v", err)
			assert.True(t, errContains(err, tc.wantMsg), "error %v should name the bound", err)
		})
	}
}

func TestUserCreate_BoundaryLengthsAccepted(t *testing.T) {
	s := NewUserService(newFakeUsersRepo(), testLogger())
	ctx := context.Background()

	_, err := s.Create(ctx, "ab", "password")
	require.NoError(t, err)

	_, err = s.Create(ctx, strings.Repeat("x", 32), strings.Repeat("y", 32))
	require.NoError(t, err)
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	s := NewUserService(newFakeUsersRepo(), testLogger())
	ctx := context.Background()

	_, err := s.Create(ctx, "ab", "password123")
	require.NoError(t, err)

	_, err = s.Create(ctx, "ab", "different1")
	assert.True(t, errors.Is(err, common.ErrAlreadyExists), "got %v", err)
}

func TestUserCreate_StoresDerivedSecret(t *testing.T) {
	repo := newFakeUsersRepo()
	s := NewUserService(repo, testLogger())
	ctx := context.Background()

	user, err := s.Create(ctx, "alice", "password123")
	require.NoError(t, err)

	// never the plaintext
	assert.NotEqual(t, "password123", user.PasswordSecret)
	assert.NotContains(t, user.PasswordSecret, "password123")

	secret, err := cryptox.ParsePasswordSecret(user.PasswordSecret)
	require.NoError(t, err)

	ok, err := cryptox.Match("password123", secret)
	require.NoError(t, err)
	assert.True(t, ok)

	// one timestamp computed for both columns
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)

	stored, err := repo.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)
}

func TestUserLookups_AbsentIsErrNotFound(t *testing.T) {
	s := NewUserService(newFakeUsersRepo(), testLogger())
	ctx := context.Background()

	_, err := s.ByID(ctx, "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = s.ByUsername(ctx, "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestUserCreate_ExistsCheckFailurePropagates(t *testing.T) {
	repo := newFakeUsersRepo()
	repo.existsErr = errors.New("db down")
	s := NewUserService(repo, testLogger())

	_, err := s.Create(context.Background(), "alice", "password123")
	assert.True(t, errContains(err, "db down"))
}
