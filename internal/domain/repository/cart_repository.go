// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartLineNotFound is returned when removing a line that is not in the cart.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository defines the operations for the per-user shopping cart.
type CartRepository interface {
	// FindByUser retrieves the user's cart. A user with no lines gets an
	// empty cart, not an error.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Cart, error)

	// UpsertLine adds a line to the cart or replaces the quantity of an
	// existing line for the same product.
	UpsertLine(ctx context.Context, userID uuid.UUID, line entity.CartLine) error

	// RemoveLine deletes one product's line from the cart.
	RemoveLine(ctx context.Context, userID, productID uuid.UUID) error

	// Clear removes all lines from the user's cart.
	Clear(ctx context.Context, userID uuid.UUID) error
}
