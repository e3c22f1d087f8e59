package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/sale"
)

const defaultReportLimit = 5

type saleUseCase struct {
	repo   sale.Repository
	logger *zap.Logger
}

func NewSaleUseCase(repo sale.Repository, log *zap.Logger) sale.UseCase {
	return &saleUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *saleUseCase) RecentSales(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}

	sales, err := uc.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return []model.Sale{}, nil
	}

	ids := make([]string, len(sales))
	for i, s := range sales {
		ids[i] = s.ID
	}

	items, err := uc.repo.ListItemsBySaleIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	itemsBySale := map[string][]model.SaleItem{}
	for _, item := range items {
		itemsBySale[item.SaleID] = append(itemsBySale[item.SaleID], item)
	}

	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].ID]
		if sales[i].Items == nil {
			sales[i].Items = []model.SaleItem{}
		}
	}

	return sales, nil
}
