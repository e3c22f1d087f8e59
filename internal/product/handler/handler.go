package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/product"
	"github.com/fekuna/omnipos-storefront-service/internal/product/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/validation"
)

type ProductHandler struct {
	uc       product.UseCase
	validate *validatorv10.Validate
	logger   *zap.Logger
}

func NewProductHandler(uc product.UseCase, validate *validatorv10.Validate, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

func (h *ProductHandler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		SearchQuery: c.Query("q"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 20),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "total": count})
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input dto.CreateProductInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "product": p})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "product": p})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var input dto.AdjustStockInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}
	input.UserID = auth.UserID(c)

	p, err := h.uc.AdjustStock(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "product": p})
}

func (h *ProductHandler) ListMovements(c *gin.Context) {
	filters := &dto.MovementFilters{
		ProductID:    c.Param("id"),
		MovementType: c.Query("movement_type"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 20),
	}

	movements, count, err := h.uc.ListMovements(c.Request.Context(), filters)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": movements, "total": count})
}

func (h *ProductHandler) writeError(c *gin.Context, err error) {
	if apperrors.IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("product handler failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
