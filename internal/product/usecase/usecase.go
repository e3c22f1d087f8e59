package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/model"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/pkg/cache"
	"github.com/fekuna/omnipos-storefront-service/pkg/search"
)

const (
	productIndexName   = "products"
	productCachePrefix = "products:list:"
	productCacheTTL    = 5 * time.Minute
)

const productIndexMapping = `{
	"mappings": {
		"properties": {
			"name": { "type": "text" },
			"price": { "type": "double" },
			"stock": { "type": "integer" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     *search.Client
	logger *zap.Logger
}

func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log *zap.Logger) product.UseCase {
	return &productUseCase{
		repo:   repo,
		cache:  cache,
		es:     es,
		logger: log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	now := time.Now()
	p := &model.Product{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		Name:      input.Name,
		Price:     input.Price,
		Stock:     input.Stock,
	}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.InvalidateCaches(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &apperrors.NotFoundError{ProductID: id}
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, keyErr := uc.generateCacheKey(filters)
	if keyErr == nil && uc.cache != nil {
		var result struct {
			Products []model.Product
			Count    int
		}
		if err := uc.cache.GetJSON(ctx, cacheKey, &result); err == nil {
			return result.Products, result.Count, nil
		}
	}

	// Full-text path via Elastic when a query is present; degrade to the
	// SQL ILIKE filter when ES is not configured or the search fails.
	if filters.SearchQuery != "" && uc.es != nil {
		if products, count, err := uc.searchElastic(ctx, filters); err == nil {
			return products, count, nil
		} else {
			uc.logger.Warn("elastic search failed, falling back to sql", zap.Error(err))
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if keyErr == nil && uc.cache != nil {
		payload := struct {
			Products []model.Product
			Count    int
		}{products, count}
		if err := uc.cache.SetJSON(ctx, cacheKey, payload, productCacheTTL); err != nil {
			uc.logger.Warn("failed to cache product list", zap.Error(err))
		}
	}

	return products, count, nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &apperrors.NotFoundError{ProductID: id}
	}

	p.Name = input.Name
	p.Price = input.Price
	p.Stock = input.Stock
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.InvalidateCaches(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return &apperrors.NotFoundError{ProductID: id}
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.InvalidateCaches(context.Background())
	if uc.es != nil {
		go func() {
			if err := uc.es.Delete(context.Background(), productIndexName, id); err != nil {
				uc.logger.Warn("failed to delete product from index", zap.Error(err))
			}
		}()
	}

	return nil
}

func (uc *productUseCase) AdjustStock(ctx context.Context, productID string, input *dto.AdjustStockInput) (*model.Product, error) {
	var createdBy *string
	if input.UserID != "" {
		createdBy = &input.UserID
	}

	movement := &model.StockMovement{
		ID:           uuid.New().String(),
		ProductID:    productID,
		MovementType: model.MovementTypeAdjustment,
		Notes:        input.Reason,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}

	p, err := uc.repo.AdjustStockWithMovement(ctx, productID, input.QuantityChange, movement)
	if err != nil {
		return nil, err
	}

	go uc.InvalidateCaches(context.Background())
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func (uc *productUseCase) ListMovements(ctx context.Context, filters *dto.MovementFilters) ([]model.StockMovement, int, error) {
	return uc.repo.ListMovements(ctx, filters)
}

func (uc *productUseCase) InvalidateCaches(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteByPattern(ctx, productCachePrefix+"*"); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.Error(err))
	}
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%x", productCachePrefix, md5.Sum(data)), nil
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	// Lazy index creation keeps dev setups working without a migration step.
	_ = uc.es.CreateIndex(ctx, productIndexName, productIndexMapping)

	if err := uc.es.Index(ctx, productIndexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.Error(err))
	}
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"name": map[string]interface{}{
					"query":     filters.SearchQuery,
					"fuzziness": "AUTO",
				},
			},
		},
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
		q["from"] = (filters.Page - 1) * filters.PageSize
	}

	docs, err := uc.es.Search(ctx, productIndexName, q)
	if err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, len(docs))
	for _, doc := range docs {
		var p model.Product
		if err := json.Unmarshal(doc, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, len(products), nil
}
