package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

// Repository is the pluggable session store behind the auth gate:
// postgres in production, an in-memory map in tests.
type Repository interface {
	Create(ctx context.Context, userID int64, validity time.Duration) (*models.Session, error)
	// Get returns the session row or common.ErrorNotFound.
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) error
}
