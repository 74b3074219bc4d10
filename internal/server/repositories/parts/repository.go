package parts

import (
	"context"

	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

// Page is a validated pagination window. Limit and Offset are
// non-negative by construction (the HTTP layer rejects anything else).
type Page struct {
	Limit  int64
	Offset int64
}

// Filter holds the optional predicates of the generic catalog listing.
// The price range applies only when HasPriceRange is set; the bounds are
// inclusive on both ends.
type Filter struct {
	BoilerManufacturer string
	PartsManufacturer  string
	PriceFrom          int64
	PriceTo            int64
	HasPriceRange      bool
}

type Repository interface {
	GetByID(ctx context.Context, id int64) (*models.BoilerPart, error)
	GetByName(ctx context.Context, name string) (*models.BoilerPart, error)
	// List returns the total number of matching rows and one page of them,
	// ordered by popularity descending with id ascending as a tiebreak.
	List(ctx context.Context, filter Filter, page Page) (int64, []*models.BoilerPart, error)
	Bestsellers(ctx context.Context, page Page) (int64, []*models.BoilerPart, error)
	New(ctx context.Context, page Page) (int64, []*models.BoilerPart, error)
	// Search matches the query as a case-insensitive substring of name.
	Search(ctx context.Context, query string) (int64, []*models.BoilerPart, error)
	Create(ctx context.Context, part *models.BoilerPart) (*models.BoilerPart, error)
	DeleteByVendorCode(ctx context.Context, vendorCode string) error
}
