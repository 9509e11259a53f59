// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for order persistence.
var (
	// ErrOrderNotFound is returned when no order matches the lookup scope.
	// A vendor-scoped lookup returns it both for absent orders and for
	// orders owned by another vendor; callers cannot tell the two apart.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderVersionConflict is returned when an update loses the
	// compare-and-swap on the order's version column.
	ErrOrderVersionConflict = errors.New("order version conflict")
)

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order and fills in generated fields (ID,
	// version, timestamps).
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves any order by its unique ID. Admin-scoped.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindByIDForUser retrieves an order only if it belongs to the customer.
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*entity.Order, error)

	// FindByIDForVendor retrieves an order only if it belongs to the vendor.
	// The scope is part of the query, so foreign orders are undiscoverable.
	FindByIDForVendor(ctx context.Context, id, vendorID uuid.UUID) (*entity.Order, error)

	// ListByUser returns the customer's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListByVendor returns the vendor's orders, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order, newest first. Admin-scoped.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// Update persists the order's mutable fields (status, payment status,
	// history) with a compare-and-swap on Version, returning
	// ErrOrderVersionConflict on a stale write. On success the entity's
	// Version is advanced to the stored value.
	Update(ctx context.Context, order *entity.Order) error
}
