package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fekuna/omnipos-storefront-service/internal/apperrors"
	"github.com/fekuna/omnipos-storefront-service/internal/checkout/dto"
	"github.com/fekuna/omnipos-storefront-service/internal/validation"
)

type stubUseCase struct {
	saleID string
	err    error
}

func (s *stubUseCase) Checkout(ctx context.Context, input *dto.CheckoutInput) (string, error) {
	return s.saleID, s.err
}

func newRouter(uc *stubUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCheckoutHandler(uc, validation.New(), zap.NewNop())
	r := gin.New()
	r.POST("/api/checkout", h.Checkout)
	return r
}

func doCheckout(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validBody = `{
	"items": [{"product_id": "p1", "qty": 2}],
	"customer": {"name": "A", "address": "B", "phone": "C"}
}`

func TestCheckoutHandler_Success(t *testing.T) {
	r := newRouter(&stubUseCase{saleID: "sale-123"})

	w := doCheckout(t, r, validBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		OK     bool   `json:"ok"`
		SaleID string `json:"sale_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.OK)
	assert.Equal(t, "sale-123", resp.SaleID)
}

func TestCheckoutHandler_BusinessFailuresAre400(t *testing.T) {
	cases := []error{
		apperrors.NewValidation("cart is empty"),
		&apperrors.NotFoundError{ProductID: "p9"},
		&apperrors.InsufficientStockError{ProductID: "p1", Requested: 3, Available: 1},
	}

	for _, ucErr := range cases {
		r := newRouter(&stubUseCase{err: ucErr})
		w := doCheckout(t, r, validBody)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, ucErr.Error(), resp["error"])
	}
}

func TestCheckoutHandler_StorageFailureIs500WithoutDetails(t *testing.T) {
	r := newRouter(&stubUseCase{err: errors.New("pq: connection refused host=10.0.0.1")})

	w := doCheckout(t, r, validBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), "internal server error")
}

func TestCheckoutHandler_RejectsBadPayloadBeforeUseCase(t *testing.T) {
	uc := &stubUseCase{saleID: "should-not-be-reached"}
	r := newRouter(uc)

	bodies := []string{
		`{"items": [], "customer": {"name": "A", "address": "B", "phone": "C"}}`,
		`{"items": [{"product_id": "p1", "qty": 0}], "customer": {"name": "A", "address": "B", "phone": "C"}}`,
		`{"items": [{"product_id": "p1", "qty": 1}], "customer": {"name": "", "address": "B", "phone": "C"}}`,
		`not json`,
	}

	for _, body := range bodies {
		w := doCheckout(t, r, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}
}
