package users

import (
	"context"

	"github.com/avolkov/authdb/internal/models"
)

// Repository is the storage contract for account rows. Lookups return
// common.ErrNotFound when no row matches; callers treat that as a normal
// outcome, not a failure.
type Repository interface {
	CreateTable(ctx context.Context) error
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id string) (*models.User, error)
	ByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	All(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
}
