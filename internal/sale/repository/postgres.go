package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	var sales []model.Sale
	query := `SELECT * FROM sales ORDER BY created_at DESC LIMIT $1`
	err := r.DB.SelectContext(ctx, &sales, query, limit)
	return sales, err
}

func (r *PGRepository) ListItemsBySaleIDs(ctx context.Context, saleIDs []string) ([]model.SaleItem, error) {
	if len(saleIDs) == 0 {
		return []model.SaleItem{}, nil
	}

	query, args, err := sqlx.In(`
        SELECT si.sale_id, si.product_id, si.qty, si.price,
               COALESCE(p.name, '') AS product_name
        FROM sale_items si
        LEFT JOIN products p ON p.id = si.product_id
        WHERE si.sale_id IN (?)
    `, saleIDs)
	if err != nil {
		return nil, err
	}

	// Rebind for Postgres ($1, $2...)
	query = r.DB.Rebind(query)

	var items []model.SaleItem
	err = r.DB.SelectContext(ctx, &items, query, args...)
	return items, err
}
