package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError covers business-input failures detected before any
// transaction is opened (empty cart, missing customer fields, bad qty).
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced product id does not exist in the ledger.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError means the requested quantity exceeds current stock
// for one product. The whole enclosing transaction is rolled back.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// IsClientError reports whether err should surface as a 400 to the caller.
// Anything else is a storage/internal failure and must not leak details.
func IsClientError(err error) bool {
	var ve *ValidationError
	var nfe *NotFoundError
	var ise *InsufficientStockError
	return errors.As(err, &ve) || errors.As(err, &nfe) || errors.As(err, &ise)
}
