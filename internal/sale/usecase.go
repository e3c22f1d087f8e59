package sale

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type UseCase interface {
	// RecentSales returns the latest sales with their line items attached.
	RecentSales(ctx context.Context, limit int) ([]model.Sale, error)
}
