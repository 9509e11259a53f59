// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the operations for the product catalog.
type ProductRepository interface {
	// Create persists a new product for a vendor.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// FindByIDs retrieves the products matching the given IDs. Missing IDs
	// are simply absent from the result; the caller decides whether that
	// is an error.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)

	// ListActive returns all active products, newest first.
	ListActive(ctx context.Context) ([]*entity.Product, error)

	// ListByVendor returns a vendor's products, newest first.
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.Product, error)
}
