package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/repomanager"
)

// CartService manages per-user shopping carts. All operations take the
// session user's id; handlers never pass a client-supplied owner.
type CartService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCartService constructs a CartService over the given repositories.
func NewCartService(db *sql.DB, m repomanager.RepositoryManager) *CartService {
	return &CartService{db: db, repomanager: m}
}

// GetAll returns every cart row of the user, possibly an empty slice.
func (s *CartService) GetAll(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	items, err := s.repomanager.Cart(s.db).GetAllByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading cart: %w", err)
	}
	if items == nil {
		items = []*models.CartItem{}
	}
	return items, nil
}

// Add looks the part up, snapshots its display fields, and inserts a
// cart row with count 1 and total_price equal to the part price. The
// lookup and the insert run in one transaction so a part deleted
// concurrently cannot leave behind an orphaned row.
func (s *CartService) Add(ctx context.Context, userID, partID int64) (*models.CartItem, error) {

	var item *models.CartItem
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		part, err := s.repomanager.Parts(tx).GetByID(ctx, partID)
		if err != nil {
			return err
		}

		image := ""
		if images := part.ImageList(); len(images) > 0 {
			image = images[0]
		}

		item = &models.CartItem{
			UserID: userID,
			PartID: part.ID,
			PartSnapshot: models.PartSnapshot{
				BoilerManufacturer: part.BoilerManufacturer,
				PartsManufacturer:  part.PartsManufacturer,
				Price:              part.Price,
				InStock:            part.InStock,
				Image:              image,
				Name:               part.Name,
			},
			Count:      1,
			TotalPrice: part.Price,
		}

		item, err = s.repomanager.Cart(tx).Create(ctx, item)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateCount sets the quantity of the user's row for partID and
// returns the stored value. total_price is deliberately left alone:
// the public API updates the two fields through separate endpoints.
func (s *CartService) UpdateCount(ctx context.Context, userID, partID, count int64) (int64, error) {
	return s.repomanager.Cart(s.db).UpdateCount(ctx, userID, partID, count)
}

// UpdateTotalPrice sets total_price of the user's row for partID,
// independent of count.
func (s *CartService) UpdateTotalPrice(ctx context.Context, userID, partID, totalPrice int64) (int64, error) {
	return s.repomanager.Cart(s.db).UpdateTotalPrice(ctx, userID, partID, totalPrice)
}

// DeleteOne removes the user's cart row for partID.
func (s *CartService) DeleteOne(ctx context.Context, userID, partID int64) error {
	return s.repomanager.Cart(s.db).DeleteOne(ctx, userID, partID)
}

// DeleteAll empties the user's cart.
func (s *CartService) DeleteAll(ctx context.Context, userID int64) error {
	return s.repomanager.Cart(s.db).DeleteAll(ctx, userID)
}
