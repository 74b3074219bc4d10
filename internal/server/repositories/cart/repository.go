package cart

import (
	"context"

	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

// Repository stores shopping-cart rows. Every mutation is scoped by
// userID so one user can never touch another user's cart.
type Repository interface {
	GetAllByUser(ctx context.Context, userID int64) ([]*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	// UpdateCount sets count on the row matching (userID, partID) and
	// returns the stored value. It does not touch total_price.
	UpdateCount(ctx context.Context, userID, partID, count int64) (int64, error)
	// UpdateTotalPrice sets total_price independently of count.
	UpdateTotalPrice(ctx context.Context, userID, partID, totalPrice int64) (int64, error)
	DeleteOne(ctx context.Context, userID, partID int64) error
	DeleteAll(ctx context.Context, userID int64) error
}
