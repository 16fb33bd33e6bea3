package services

import "errors"

// Sentinel errors for the handler layer to map onto HTTP statuses.
// Handlers never forward raw store errors to clients.
var (
	ErrBadCreds             = errors.New("invalid email or password")
	ErrEmailTaken           = errors.New("email already registered")
	ErrClassificationExists = errors.New("classification already exists")
	ErrNotFound             = errors.New("not found")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrStoreUnavailable     = errors.New("store unavailable")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrForbidden            = errors.New("admin access required")
)
