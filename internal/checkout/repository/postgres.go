package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	pkgerrors "github.com/pkg/errors"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type PGStore struct {
	DB *sqlx.DB
}

func NewPGStore(db *sqlx.DB) *PGStore {
	return &PGStore{DB: db}
}

func (s *PGStore) WithinTx(ctx context.Context, fn func(tx checkout.Tx) error) error {
	tx, err := s.DB.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return pkgerrors.Wrap(err, "begin checkout tx")
	}
	defer tx.Rollback()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return pkgerrors.Wrap(err, "commit checkout tx")
	}
	return nil
}

type pgTx struct {
	tx *sqlx.Tx
}

func (t *pgTx) GetProductForUpdate(ctx context.Context, productID string) (*model.Product, error) {
	var p model.Product
	query := `SELECT * FROM products WHERE id = $1 FOR UPDATE`
	err := t.tx.GetContext(ctx, &p, query, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &apperrors.NotFoundError{ProductID: productID}
		}
		return nil, pkgerrors.Wrap(err, "lock product row")
	}
	return &p, nil
}

func (t *pgTx) DecrementStock(ctx context.Context, productID string, qty int) error {
	res, err := t.tx.ExecContext(ctx, `
        UPDATE products
        SET stock = stock - $1, updated_at = NOW()
        WHERE id = $2 AND stock >= $1
    `, qty, productID)
	if err != nil {
		return pkgerrors.Wrap(err, "decrement stock")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return pkgerrors.Wrap(err, "decrement stock rows")
	}
	if rows == 0 {
		// The row is locked by us, so this only fires when the earlier
		// stock check raced nothing: qty simply exceeds stock. Re-read so
		// the error carries the real remaining quantity.
		var available int
		if err := t.tx.GetContext(ctx, &available, `SELECT stock FROM products WHERE id = $1`, productID); err != nil {
			return pkgerrors.Wrap(err, "read stock after failed decrement")
		}
		return &apperrors.InsufficientStockError{ProductID: productID, Requested: qty, Available: available}
	}
	return nil
}

func (t *pgTx) InsertSale(ctx context.Context, sale *model.Sale) error {
	query := `
        INSERT INTO sales (id, total, customer_name, customer_address, customer_phone, created_at)
        VALUES (:id, :total, :customer_name, :customer_address, :customer_phone, :created_at)
    `
	_, err := t.tx.NamedExecContext(ctx, query, sale)
	return pkgerrors.Wrap(err, "insert sale")
}

func (t *pgTx) InsertSaleItems(ctx context.Context, items []model.SaleItem) error {
	query := `
        INSERT INTO sale_items (sale_id, product_id, qty, price)
        VALUES (:sale_id, :product_id, :qty, :price)
    `
	for i := range items {
		if _, err := t.tx.NamedExecContext(ctx, query, &items[i]); err != nil {
			return pkgerrors.Wrap(err, "insert sale item")
		}
	}
	return nil
}

func (t *pgTx) LogMovement(ctx context.Context, movement *model.StockMovement) error {
	query := `
        INSERT INTO stock_movements (
            id, product_id, movement_type, quantity_change,
            quantity_before, quantity_after, reference_id, notes,
            created_by, created_at
        )
        VALUES (
            :id, :product_id, :movement_type, :quantity_change,
            :quantity_before, :quantity_after, :reference_id, :notes,
            :created_by, :created_at
        )
    `
	_, err := t.tx.NamedExecContext(ctx, query, movement)
	return pkgerrors.Wrap(err, "log stock movement")
}
