package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
)

type fakeRepo struct {
	products  map[string]*model.Product
	movements []model.StockMovement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{products: map[string]*model.Product{}}
}

func (r *fakeRepo) Create(ctx context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, p *model.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) AdjustStockWithMovement(ctx context.Context, productID string, change int, movement *model.StockMovement) (*model.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, &apperrors.NotFoundError{ProductID: productID}
	}
	if p.Stock+change < 0 {
		return nil, &apperrors.InsufficientStockError{ProductID: productID, Requested: -change, Available: p.Stock}
	}
	movement.QuantityBefore = p.Stock
	p.Stock += change
	movement.QuantityAfter = p.Stock
	movement.QuantityChange = change
	r.movements = append(r.movements, *movement)
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) ListMovements(ctx context.Context, f *dto.MovementFilters) ([]model.StockMovement, int, error) {
	out := []model.StockMovement{}
	for _, m := range r.movements {
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		out = append(out, m)
	}
	return out, len(out), nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, nil, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:  "Espresso",
		Price: 3.50,
		Stock: 10,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.WithinDuration(t, time.Now(), p.CreatedAt, time.Minute)
	assert.Equal(t, 10, p.Stock)

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Espresso", stored.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), nil, nil, zap.NewNop())

	_, err := uc.GetProduct(context.Background(), "missing")
	var nfe *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Equal(t, "missing", nfe.ProductID)
}

func TestUpdateProduct(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, nil, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "Tea", Price: 2.00, Stock: 5})
	require.NoError(t, err)

	updated, err := uc.UpdateProduct(context.Background(), p.ID, &dto.UpdateProductInput{
		Name:  "Green Tea",
		Price: 2.50,
		Stock: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "Green Tea", updated.Name)
	assert.Equal(t, 2.50, updated.Price)
	assert.Equal(t, 7, updated.Stock)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), nil, nil, zap.NewNop())

	_, err := uc.UpdateProduct(context.Background(), "missing", &dto.UpdateProductInput{Name: "X"})
	var nfe *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestDeleteProduct_NotFound(t *testing.T) {
	uc := NewProductUseCase(newFakeRepo(), nil, nil, zap.NewNop())

	err := uc.DeleteProduct(context.Background(), "missing")
	var nfe *apperrors.NotFoundError
	require.ErrorAs(t, err, &nfe)
}

func TestAdjustStock(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, nil, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "Mug", Price: 8.00, Stock: 4})
	require.NoError(t, err)

	adjusted, err := uc.AdjustStock(context.Background(), p.ID, &dto.AdjustStockInput{
		QuantityChange: -3,
		Reason:         "breakage",
		UserID:         "admin-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, adjusted.Stock)

	movements, total, err := uc.ListMovements(context.Background(), &dto.MovementFilters{ProductID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, movements, 1)
	assert.Equal(t, model.MovementTypeAdjustment, movements[0].MovementType)
	assert.Equal(t, 4, movements[0].QuantityBefore)
	assert.Equal(t, 1, movements[0].QuantityAfter)
	require.NotNil(t, movements[0].CreatedBy)
	assert.Equal(t, "admin-1", *movements[0].CreatedBy)
}

func TestAdjustStock_CannotGoNegative(t *testing.T) {
	repo := newFakeRepo()
	uc := NewProductUseCase(repo, nil, nil, zap.NewNop())

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{Name: "Mug", Price: 8.00, Stock: 2})
	require.NoError(t, err)

	_, err = uc.AdjustStock(context.Background(), p.ID, &dto.AdjustStockInput{
		QuantityChange: -5,
		Reason:         "typo",
	})
	var ise *apperrors.InsufficientStockError
	require.ErrorAs(t, err, &ise)

	stored, err := uc.GetProduct(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Stock)
}
