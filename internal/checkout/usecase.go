package checkout

import (
	"context"

	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
)

type UseCase interface {
	// Checkout runs the full cart-to-sale transaction and returns the
	// generated sale id. On any failure no stock or sale mutation survives.
	Checkout(ctx context.Context, input *dto.CheckoutInput) (string, error)
}
