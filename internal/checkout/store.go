package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

// Store opens the transactional scope a checkout runs in. All Tx calls made
// inside fn share one connection; if fn returns an error nothing it did is
// visible afterwards.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the ledger surface available inside a checkout transaction.
type Tx interface {
	// GetProductForUpdate fetches the authoritative price and stock for a
	// product and locks its row until the transaction ends, serializing
	// concurrent checkouts that touch the same product.
	GetProductForUpdate(ctx context.Context, productID string) (*model.Product, error)

	// DecrementStock reduces stock by qty. Fails with InsufficientStockError
	// if stock < qty; the conditional update is the last guard against
	// overselling even if the caller's own check raced.
	DecrementStock(ctx context.Context, productID string, qty int) error

	InsertSale(ctx context.Context, sale *model.Sale) error
	InsertSaleItems(ctx context.Context, items []model.SaleItem) error
	LogMovement(ctx context.Context, movement *model.StockMovement) error
}
