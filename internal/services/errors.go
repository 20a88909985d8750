package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on any login or token failure without
// revealing which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden is returned when an authenticated user is not allowed to
// access the requested resource.
var ErrForbidden = errors.New("not authorized to access this resource")

// ValidationError signals rejected input. It is raised before any side
// effect, in particular before a database transaction is opened.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError signals that a cart line requested more units than
// the product has in stock. It aborts the whole order transaction.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested: %d, available: %d)",
		e.ProductName, e.Requested, e.Available)
}
