package shared

import "errors"

var (
	// ErrValidation indicates a malformed or missing input field.
	ErrValidation = errors.New("invalid input")
	// ErrNotFound indicates an unknown entity ID was referenced.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateSKU occurs when a SKU collides with a live product.
	ErrDuplicateSKU = errors.New("sku already exists")
	// ErrDependency blocks deletion of an entity still referenced elsewhere.
	ErrDependency = errors.New("entity has live references")
	// ErrInsufficientStock occurs when a movement would drive stock negative.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStorage wraps failures of the underlying table files.
	ErrStorage = errors.New("storage failure")
)
