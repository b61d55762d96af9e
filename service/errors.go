package service

import "errors"

// Business errors recognized by the transport layer. Handlers dispatch on
// these with errors.Is; anything else is treated as an internal failure.
var (
	ErrInvalidProductID     = errors.New("invalid product id")
	ErrInvalidCategoryID    = errors.New("invalid category id")
	ErrEmptyProductName     = errors.New("product name must not be empty")
	ErrCategoryNotFound     = errors.New("category does not exist")
	ErrDuplicateProductName = errors.New("product with this name already exists")
	ErrProductNotFound      = errors.New("product not found")
	ErrInvalidFilterFormat  = errors.New("invalid filter format")
	ErrInvalidSortFormat    = errors.New("invalid sort format")
)
