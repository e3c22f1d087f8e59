package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/user"
	"github.com/fekuna/omnipos-storefront-service/internal/user/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/validation"
)

type UserHandler struct {
	uc       user.UseCase
	validate *validatorv10.Validate
	logger   *zap.Logger
}

func NewUserHandler(uc user.UseCase, validate *validatorv10.Validate, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:       uc,
		validate: validate,
		logger:   log,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}

	u, err := h.uc.Register(c.Request.Context(), &input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *UserHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := validation.BindAndValidate(c, &input, h.validate); err != nil {
		return
	}

	token, u, err := h.uc.Login(c.Request.Context(), &input)
	if err != nil {
		if apperrors.IsClientError(err) {
			// Credential failures are 401, not 400.
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

func (h *UserHandler) writeError(c *gin.Context, err error) {
	if apperrors.IsClientError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.logger.Error("user handler failure", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
