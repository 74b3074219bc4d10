package users

import (
	"context"

	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// GetByUsernameOrEmail returns the first user holding either value.
	// Used for the single-query registration conflict check.
	GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.User, error)
	Delete(ctx context.Context, username string) error
}
