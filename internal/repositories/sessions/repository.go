package sessions

import (
	"context"

	"github.com/avolkov/authdb/internal/models"
)

// Repository is the storage contract for session rows.
//
// ByKey returns common.ErrNotFound when no row matches the presented key;
// that is the normal "not authenticated" outcome. Refresh and Delete are
// silent no-ops when the id does not exist.
type Repository interface {
	CreateTable(ctx context.Context) error
	Create(ctx context.Context, session *models.Session) error
	ByKey(ctx context.Context, sessionKey string) (*models.Session, error)
	Refresh(ctx context.Context, id, sessionKey, updatedAt string) error
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.Session, error)
}
