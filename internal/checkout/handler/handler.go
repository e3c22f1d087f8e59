package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/auth"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/validation"
)

type CheckoutHandler struct {
	uc       checkout.UseCase
	validate *validatorv10.Validate
	logger   *zap.Logger
}

func NewCheckoutHandler(uc checkout.UseCase, validate *validatorv10.Validate, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

// Checkout handles POST /api/checkout.
// Business failures (empty cart, unknown product, insufficient stock) are
// 400 with a message specific enough for the client to fix the cart.
// Storage failures are 500 and never leak internals.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var input dto.CheckoutInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}
	input.UserID = auth.UserID(c)

	saleID, err := h.uc.Checkout(c.Request.Context(), &input)
	if err != nil {
		if apperrors.IsClientError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("checkout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "sale_id": saleID})
}
