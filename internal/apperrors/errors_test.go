package apperrors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(NewValidation("cart is empty")))
	assert.True(t, IsClientError(&NotFoundError{ProductID: "p1"}))
	assert.True(t, IsClientError(&InsufficientStockError{ProductID: "p1", Requested: 2, Available: 1}))

	assert.False(t, IsClientError(errors.New("connection refused")))
	assert.False(t, IsClientError(nil))
}

func TestIsClientError_Wrapped(t *testing.T) {
	err := errors.Wrap(&NotFoundError{ProductID: "p2"}, "checkout")
	assert.True(t, IsClientError(err))
	assert.Contains(t, err.Error(), "product p2 not found")
}

func TestInsufficientStockError_Message(t *testing.T) {
	err := &InsufficientStockError{ProductID: "abc", Requested: 5, Available: 3}
	assert.Equal(t, "not enough stock for product abc: requested 5, available 3", err.Error())
}
