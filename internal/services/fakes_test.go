package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/avolkov/authdb/internal/common"
	"github.com/avolkov/authdb/internal/dbx"
	"github.com/avolkov/authdb/internal/logging"
	"github.com/avolkov/authdb/internal/models"
	sessionsrepo "github.com/avolkov/authdb/internal/repositories/sessions"
	usersrepo "github.com/avolkov/authdb/internal/repositories/users"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// fakeUsersRepo is an in-memory users.Repository.
type fakeUsersRepo struct {
	byID       map[string]*models.User
	byUsername map[string]*models.User

	createErr error
	existsErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		byID:       map[string]*models.User{},
		byUsername: map[string]*models.User{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) {
	f.byID[u.ID] = u
	f.byUsername[u.Username] = u
}

func (f *fakeUsersRepo) CreateTable(ctx context.Context) error { return nil }

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byUsername[u.Username]; ok {
		return fmt.Errorf("db error: UNIQUE constraint failed: users.username")
	}
	cp := *u
	f.add(&cp)
	return nil
}

func (f *fakeUsersRepo) ByID(ctx context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) ByUsername(ctx context.Context, username string) (*models.User, error) {
	u, ok := f.byUsername[username]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) Exists(ctx context.Context, username string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.byUsername[username]
	return ok, nil
}

func (f *fakeUsersRepo) All(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsersRepo) Delete(ctx context.Context, id string) error {
	if u, ok := f.byID[id]; ok {
		delete(f.byUsername, u.Username)
		delete(f.byID, id)
	}
	return nil
}

// fakeSessionsRepo is an in-memory sessions.Repository keyed the way the
// real store is: unique id, unique session_key.
type fakeSessionsRepo struct {
	rows map[string]*models.Session // by id

	createErr error
	byKeyErr  error
}

func newFakeSessionsRepo() *fakeSessionsRepo {
	return &fakeSessionsRepo{rows: map[string]*models.Session{}}
}

func (f *fakeSessionsRepo) CreateTable(ctx context.Context) error { return nil }

func (f *fakeSessionsRepo) Create(ctx context.Context, s *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	cp := *s
	f.rows[s.ID] = &cp
	return nil
}

func (f *fakeSessionsRepo) ByKey(ctx context.Context, sessionKey string) (*models.Session, error) {
	if f.byKeyErr != nil {
		return nil, f.byKeyErr
	}
	for _, s := range f.rows {
		if s.SessionKey == sessionKey {
			cp := *s
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeSessionsRepo) Refresh(ctx context.Context, id, sessionKey, updatedAt string) error {
	if s, ok := f.rows[id]; ok {
		s.SessionKey = sessionKey
		s.UpdatedAt = updatedAt
	}
	return nil
}

func (f *fakeSessionsRepo) Delete(ctx context.Context, id string) error {
	delete(f.rows, id)
	return nil
}

func (f *fakeSessionsRepo) All(ctx context.Context) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.rows {
		out = append(out, *s)
	}
	return out, nil
}

// fakeRepoManager satisfies storemanager.RepositoryManager, handing out the
// same fakes regardless of the DBTX it is given.
type fakeRepoManager struct {
	u *fakeUsersRepo
	s *fakeSessionsRepo
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository       { return m.u }
func (m *fakeRepoManager) Sessions(db dbx.DBTX) sessionsrepo.Repository { return m.s }

// errContains is a small helper for asserting wrapped error text.
func errContains(err error, sub string) bool {
	return err != nil && strings.Contains(err.Error(), sub)
}
