// Package cart provides a PostgreSQL-backed repository for per-user
// shopping carts with denormalized part snapshots.
package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/dbx"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
)

// PostgresRepository implements cart storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const cartColumns = `id, user_id, part_id, boiler_manufacturer, parts_manufacturer, price, in_stock, image, name, count, total_price, created_at, updated_at`

func scanItem(scan func(dest ...any) error) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := scan(&item.ID, &item.UserID, &item.PartID, &item.BoilerManufacturer,
		&item.PartsManufacturer, &item.Price, &item.InStock, &item.Image, &item.Name,
		&item.Count, &item.TotalPrice, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *PostgresRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.CartItem, error) {
	query := `SELECT ` + cartColumns + ` FROM shopping_cart WHERE user_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.CartItem
	for rows.Next() {
		item, err := scanItem(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {

	query :=
		`INSERT INTO shopping_cart (user_id, part_id, boiler_manufacturer, parts_manufacturer, price, in_stock, image, name, count, total_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		item.UserID, item.PartID, item.BoilerManufacturer, item.PartsManufacturer,
		item.Price, item.InStock, item.Image, item.Name, item.Count, item.TotalPrice).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return item, nil
}

func (r *PostgresRepository) UpdateCount(ctx context.Context, userID, partID, count int64) (int64, error) {

	query :=
		`UPDATE shopping_cart SET count = $1, updated_at = now()
		 WHERE user_id = $2 AND part_id = $3
		 RETURNING count
		 `

	var stored int64
	err := r.db.QueryRowContext(ctx, query, count, userID, partID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) UpdateTotalPrice(ctx context.Context, userID, partID, totalPrice int64) (int64, error) {

	query :=
		`UPDATE shopping_cart SET total_price = $1, updated_at = now()
		 WHERE user_id = $2 AND part_id = $3
		 RETURNING total_price
		 `

	var stored int64
	err := r.db.QueryRowContext(ctx, query, totalPrice, userID, partID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrorNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return stored, nil
}

func (r *PostgresRepository) DeleteOne(ctx context.Context, userID, partID int64) error {
	query := `DELETE FROM shopping_cart WHERE user_id = $1 AND part_id = $2`

	res, err := r.db.ExecContext(ctx, query, userID, partID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteAll(ctx context.Context, userID int64) error {
	query := `DELETE FROM shopping_cart WHERE user_id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
