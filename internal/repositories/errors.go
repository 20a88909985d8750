package repositories

import "errors"

// Sentinel errors returned by repositories when a referenced entity is
// absent. Callers match with errors.Is.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrProductNotFound     = errors.New("product not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrQuoteNotFound       = errors.New("quote not found")
)
