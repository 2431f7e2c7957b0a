package service

import "errors"

// Taxonomie des erreurs du coeur panier/commande. Les handlers les
// traduisent en familles HTTP : NotFound → 404, Validation → 400,
// Unauthorized → 401/403, Conflict → 409, le reste → 500.
var (
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrOrderNotFound   = errors.New("order not found")

	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrEmptyOrder      = errors.New("cannot create an order with no items")

	ErrUnauthorized = errors.New("caller is not allowed to access this resource")

	ErrAlreadyPaid      = errors.New("order is already paid with a different transaction")
	ErrAlreadyDelivered = errors.New("order is already delivered")
	ErrNotPaid          = errors.New("order must be paid before delivery")
)
