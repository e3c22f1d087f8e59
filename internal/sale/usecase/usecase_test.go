package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/model"
)

type fakeRepo struct {
	sales []model.Sale
	items []model.SaleItem
}

func (r *fakeRepo) ListRecent(ctx context.Context, limit int) ([]model.Sale, error) {
	if limit > len(r.sales) {
		limit = len(r.sales)
	}
	out := make([]model.Sale, limit)
	copy(out, r.sales[:limit])
	return out, nil
}

func (r *fakeRepo) ListItemsBySaleIDs(ctx context.Context, saleIDs []string) ([]model.SaleItem, error) {
	wanted := map[string]bool{}
	for _, id := range saleIDs {
		wanted[id] = true
	}
	out := []model.SaleItem{}
	for _, item := range r.items {
		if wanted[item.SaleID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func TestRecentSales_GroupsItems(t *testing.T) {
	repo := &fakeRepo{
		sales: []model.Sale{
			{ID: "s2", Total: 15.00, CreatedAt: time.Now()},
			{ID: "s1", Total: 20.00, CreatedAt: time.Now().Add(-time.Hour)},
		},
		items: []model.SaleItem{
			{SaleID: "s1", ProductID: "p1", Qty: 2, Price: 10.00, ProductName: "Espresso"},
			{SaleID: "s2", ProductID: "p2", Qty: 3, Price: 5.00, ProductName: "Tea"},
		},
	}
	uc := NewSaleUseCase(repo, zap.NewNop())

	sales, err := uc.RecentSales(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, sales, 2)

	assert.Equal(t, "s2", sales[0].ID)
	require.Len(t, sales[0].Items, 1)
	assert.Equal(t, "Tea", sales[0].Items[0].ProductName)

	require.Len(t, sales[1].Items, 1)
	assert.Equal(t, 2, sales[1].Items[0].Qty)
}

func TestRecentSales_DefaultLimit(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 10; i++ {
		repo.sales = append(repo.sales, model.Sale{ID: string(rune('a' + i))})
	}
	uc := NewSaleUseCase(repo, zap.NewNop())

	sales, err := uc.RecentSales(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, sales, 5)
}

func TestRecentSales_Empty(t *testing.T) {
	uc := NewSaleUseCase(&fakeRepo{}, zap.NewNop())

	sales, err := uc.RecentSales(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, sales)
	assert.Empty(t, sales)
}

func TestRecentSales_SaleWithoutItemsGetsEmptySlice(t *testing.T) {
	repo := &fakeRepo{sales: []model.Sale{{ID: "s1"}}}
	uc := NewSaleUseCase(repo, zap.NewNop())

	sales, err := uc.RecentSales(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.NotNil(t, sales[0].Items)
	assert.Empty(t, sales[0].Items)
}
