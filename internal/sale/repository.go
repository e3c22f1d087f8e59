package sale

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type Repository interface {
	ListRecent(ctx context.Context, limit int) ([]model.Sale, error)
	ListItemsBySaleIDs(ctx context.Context, saleIDs []string) ([]model.SaleItem, error)
}
