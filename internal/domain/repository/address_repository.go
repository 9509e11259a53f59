// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// AddressRepository defines the operations for the user's saved address book.
// Orders never reference these rows; they embed their own copy.
type AddressRepository interface {
	// Create persists a new address-book entry.
	Create(ctx context.Context, address *entity.Address) error

	// ListByUser retrieves all saved addresses for a user, default first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Address, error)
}
