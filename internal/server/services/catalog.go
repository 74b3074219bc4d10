package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/parts"
	"github.com/dmitrijs2005/boilerparts/internal/server/repositories/repomanager"
)

// PartList is the paginated listing payload: Count is the total number
// of matching rows, not the page size.
type PartList struct {
	Count int64                `json:"count"`
	Rows  []*models.BoilerPart `json:"rows"`
}

// CatalogService serves the read-only boiler-parts catalog: lookup,
// flag-filtered listings, the generic filter, and name search.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCatalogService constructs a CatalogService over the given repositories.
func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// FindOne returns the part with the given id or common.ErrorNotFound.
func (s *CatalogService) FindOne(ctx context.Context, id int64) (*models.BoilerPart, error) {
	return s.repomanager.Parts(s.db).GetByID(ctx, id)
}

// GetByName returns the part with exactly the given name or common.ErrorNotFound.
func (s *CatalogService) GetByName(ctx context.Context, name string) (*models.BoilerPart, error) {
	return s.repomanager.Parts(s.db).GetByName(ctx, name)
}

func asList(count int64, rows []*models.BoilerPart, err error) (*PartList, error) {
	if err != nil {
		return nil, fmt.Errorf("error listing parts: %w", err)
	}
	if rows == nil {
		rows = []*models.BoilerPart{}
	}
	return &PartList{Count: count, Rows: rows}, nil
}

// Bestsellers returns one page of parts flagged bestseller, most
// popular first.
func (s *CatalogService) Bestsellers(ctx context.Context, page parts.Page) (*PartList, error) {
	count, rows, err := s.repomanager.Parts(s.db).Bestsellers(ctx, page)
	return asList(count, rows, err)
}

// New returns one page of parts flagged new, most popular first.
func (s *CatalogService) New(ctx context.Context, page parts.Page) (*PartList, error) {
	count, rows, err := s.repomanager.Parts(s.db).New(ctx, page)
	return asList(count, rows, err)
}

// List returns one page of the generic filtered listing.
func (s *CatalogService) List(ctx context.Context, filter parts.Filter, page parts.Page) (*PartList, error) {
	count, rows, err := s.repomanager.Parts(s.db).List(ctx, filter, page)
	return asList(count, rows, err)
}

// Search returns every part whose name contains the query,
// case-insensitively.
func (s *CatalogService) Search(ctx context.Context, query string) (*PartList, error) {
	count, rows, err := s.repomanager.Parts(s.db).Search(ctx, query)
	return asList(count, rows, err)
}
