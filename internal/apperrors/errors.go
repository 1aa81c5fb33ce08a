// Package apperrors defines the sentinel errors shared across services and
// handlers. Repositories wrap driver errors into these so callers can match
// with errors.Is without depending on GORM.
package apperrors

import "errors"

var (
	// ErrNotFound indicates a referenced user, product, cart line or order
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates malformed input, e.g. a quantity below 1.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyCart indicates a checkout attempt on a cart with no resolvable lines.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")
)
