// Package parts provides a PostgreSQL-backed repository for the boiler
// parts catalog: lookup, filtered/paginated listing, and search.
package parts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

// PostgresRepository implements catalog storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// "new" needs quoting: it is a column name inherited from the original schema.
const partColumns = `id, boiler_manufacturer, parts_manufacturer, vendor_code, name, description, compatibility, images, price, in_stock, bestseller, "new", popularity, created_at, updated_at`

func scanPart(scan func(dest ...any) error) (*models.BoilerPart, error) {
	p := &models.BoilerPart{}
	err := scan(&p.ID, &p.BoilerManufacturer, &p.PartsManufacturer, &p.VendorCode,
		&p.Name, &p.Description, &p.Compatibility, &p.Images, &p.Price, &p.InStock,
		&p.Bestseller, &p.New, &p.Popularity, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, query string, args ...any) (*models.BoilerPart, error) {
	part, err := scanPart(r.db.QueryRowContext(ctx, query, args...).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return part, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.BoilerPart, error) {
	query := `SELECT ` + partColumns + ` FROM boiler_parts WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (*models.BoilerPart, error) {
	query := `SELECT ` + partColumns + ` FROM boiler_parts WHERE name = $1`
	return r.getOne(ctx, query, name)
}

// buildWhere renders the optional filter predicates as a WHERE clause
// with positional args starting at $1.
func buildWhere(f Filter) (string, []any) {
	var conds []string
	var args []any

	if f.BoilerManufacturer != "" {
		args = append(args, f.BoilerManufacturer)
		conds = append(conds, fmt.Sprintf("boiler_manufacturer = $%d", len(args)))
	}
	if f.PartsManufacturer != "" {
		args = append(args, f.PartsManufacturer)
		conds = append(conds, fmt.Sprintf("parts_manufacturer = $%d", len(args)))
	}
	if f.HasPriceRange {
		args = append(args, f.PriceFrom, f.PriceTo)
		conds = append(conds, fmt.Sprintf("price BETWEEN $%d AND $%d", len(args)-1, len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// countAndSelect runs the counting query and one page of the row query
// sharing the same WHERE clause and args.
func (r *PostgresRepository) countAndSelect(ctx context.Context, where string, args []any, page Page) (int64, []*models.BoilerPart, error) {

	var count int64
	countQuery := `SELECT COUNT(*) FROM boiler_parts` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}

	rowsQuery := fmt.Sprintf(`SELECT %s FROM boiler_parts%s ORDER BY popularity DESC, id ASC LIMIT $%d OFFSET $%d`,
		partColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.QueryContext(ctx, rowsQuery, append(args, page.Limit, page.Offset)...)
	if err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.BoilerPart
	for rows.Next() {
		part, err := scanPart(rows.Scan)
		if err != nil {
			return 0, nil, err
		}
		result = append(result, part)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return count, result, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter Filter, page Page) (int64, []*models.BoilerPart, error) {
	where, args := buildWhere(filter)
	return r.countAndSelect(ctx, where, args, page)
}

func (r *PostgresRepository) Bestsellers(ctx context.Context, page Page) (int64, []*models.BoilerPart, error) {
	return r.countAndSelect(ctx, ` WHERE bestseller = TRUE`, nil, page)
}

func (r *PostgresRepository) New(ctx context.Context, page Page) (int64, []*models.BoilerPart, error) {
	return r.countAndSelect(ctx, ` WHERE "new" = TRUE`, nil, page)
}

func (r *PostgresRepository) Search(ctx context.Context, query string) (int64, []*models.BoilerPart, error) {

	var count int64
	countQuery := `SELECT COUNT(*) FROM boiler_parts WHERE name ILIKE '%' || $1 || '%'`
	if err := r.db.QueryRowContext(ctx, countQuery, query).Scan(&count); err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}

	rowsQuery := `SELECT ` + partColumns + ` FROM boiler_parts WHERE name ILIKE '%' || $1 || '%' ORDER BY popularity DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, rowsQuery, query)
	if err != nil {
		return 0, nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.BoilerPart
	for rows.Next() {
		part, err := scanPart(rows.Scan)
		if err != nil {
			return 0, nil, err
		}
		result = append(result, part)
	}
	if err := rows.Err(); err != nil {
		return 0, nil, err
	}
	return count, result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, part *models.BoilerPart) (*models.BoilerPart, error) {

	query :=
		`INSERT INTO boiler_parts (boiler_manufacturer, parts_manufacturer, vendor_code, name, description, compatibility, images, price, in_stock, bestseller, "new", popularity)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		part.BoilerManufacturer, part.PartsManufacturer, part.VendorCode, part.Name,
		part.Description, part.Compatibility, part.Images, part.Price, part.InStock,
		part.Bestseller, part.New, part.Popularity).
		Scan(&part.ID, &part.CreatedAt, &part.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return part, nil
}

func (r *PostgresRepository) DeleteByVendorCode(ctx context.Context, vendorCode string) error {
	query := `DELETE FROM boiler_parts WHERE vendor_code = $1`
	if _, err := r.db.ExecContext(ctx, query, vendorCode); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
