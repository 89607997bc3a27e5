package usecase

import "errors"

var (
	// ErrStockNotFound is returned when a stock cannot be found by ID or symbol.
	ErrStockNotFound = errors.New("stock not found")

	// ErrSymbolAlreadyExists is returned when creating a stock whose symbol is already registered.
	ErrSymbolAlreadyExists = errors.New("stock symbol already registered")

	// ErrQuoteUnavailable is returned when every quote provider in the chain failed for a symbol.
	ErrQuoteUnavailable = errors.New("live quote unavailable")

	// ErrInvalidQuantity is returned when a holding is created with a negative quantity.
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)
