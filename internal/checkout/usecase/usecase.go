package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
)

type checkoutUseCase struct {
	store     checkout.Store
	products  product.UseCase
	publisher checkout.EventPublisher
	logger    *zap.Logger
}

// NewCheckoutUseCase builds the coordinator. products and publisher may be
// nil; they only drive post-commit side effects.
func NewCheckoutUseCase(store checkout.Store, products product.UseCase, publisher checkout.EventPublisher, log *zap.Logger) checkout.UseCase {
	return &checkoutUseCase{
		store:     store,
		products:  products,
		publisher: publisher,
		logger:    log,
	}
}

func (uc *checkoutUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (string, error) {
	// Fail fast before touching the database.
	if err := validateInput(input); err != nil {
		return "", err
	}

	saleID := uuid.New().String()
	now := time.Now()

	var createdBy *string
	if input.UserID != "" {
		u := input.UserID
		createdBy = &u
	}

	var sale *model.Sale
	var saleItems []model.SaleItem
	err := uc.store.WithinTx(ctx, func(tx checkout.Tx) error {
		var total float64
		items := make([]model.SaleItem, 0, len(input.Items))

		for _, item := range input.Items {
			// Reprice from the ledger under a row lock. Client prices are
			// never consulted.
			p, err := tx.GetProductForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if p.Stock < item.Qty {
				return &apperrors.InsufficientStockError{
					ProductID: p.ID,
					Requested: item.Qty,
					Available: p.Stock,
				}
			}

			if err := tx.DecrementStock(ctx, p.ID, item.Qty); err != nil {
				return err
			}

			total += p.Price * float64(item.Qty)
			items = append(items, model.SaleItem{
				SaleID:    saleID,
				ProductID: p.ID,
				Qty:       item.Qty,
				Price:     p.Price,
			})

			ref := saleID
			if err := tx.LogMovement(ctx, &model.StockMovement{
				ID:             uuid.New().String(),
				ProductID:      p.ID,
				MovementType:   model.MovementTypeSale,
				QuantityChange: -item.Qty,
				QuantityBefore: p.Stock,
				QuantityAfter:  p.Stock - item.Qty,
				ReferenceID:    &ref,
				CreatedBy:      createdBy,
				CreatedAt:      now,
			}); err != nil {
				return err
			}
		}

		sale = &model.Sale{
			ID:              saleID,
			Total:           total,
			CustomerName:    strings.TrimSpace(input.Customer.Name),
			CustomerAddress: strings.TrimSpace(input.Customer.Address),
			CustomerPhone:   strings.TrimSpace(input.Customer.Phone),
			CreatedAt:       now,
		}
		if err := tx.InsertSale(ctx, sale); err != nil {
			return err
		}
		saleItems = items
		return tx.InsertSaleItems(ctx, items)
	})
	if err != nil {
		return "", err
	}

	uc.logger.Info("checkout committed",
		zap.String("sale_id", sale.ID),
		zap.Float64("total", sale.Total),
		zap.Int("items", len(input.Items)),
	)

	uc.afterCommit(sale, saleItems, input.UserID)

	return sale.ID, nil
}

// afterCommit fires the non-transactional side effects: the committed sale
// is already durable, so failures here are logged and dropped.
func (uc *checkoutUseCase) afterCommit(sale *model.Sale, items []model.SaleItem, userID string) {
	if uc.products != nil {
		go uc.products.InvalidateCaches(context.Background())
	}

	if uc.publisher == nil {
		return
	}

	event := checkout.SaleCompletedEvent{
		EventType: checkout.EventTypeSaleCompleted,
		SaleID:    sale.ID,
		Total:     sale.Total,
		UserID:    userID,
		CreatedAt: sale.CreatedAt,
	}
	for _, item := range items {
		event.Items = append(event.Items, checkout.SaleCompletedItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			Price:     item.Price,
		})
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.publisher.PublishJSON(ctx, sale.ID, event); err != nil {
			uc.logger.Warn("failed to publish sale event",
				zap.String("sale_id", sale.ID), zap.Error(err))
		}
	}()
}

func validateInput(input *dto.CheckoutInput) error {
	if len(input.Items) == 0 {
		return apperrors.NewValidation("cart is empty")
	}
	if strings.TrimSpace(input.Customer.Name) == "" ||
		strings.TrimSpace(input.Customer.Address) == "" ||
		strings.TrimSpace(input.Customer.Phone) == "" {
		return apperrors.NewValidation("customer name, address and phone are required")
	}
	for _, item := range input.Items {
		if strings.TrimSpace(item.ProductID) == "" {
			return apperrors.NewValidation("item product_id is required")
		}
		if item.Qty < 1 {
			return apperrors.NewValidation("item qty must be at least 1")
		}
	}
	return nil
}
