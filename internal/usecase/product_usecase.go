// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// ProductUsecase exposes the minimal catalog surface: browsing for
// customers, product creation for vendors.
type ProductUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	CreateProduct(ctx context.Context, actor entity.Actor, input *CreateProductInput) (*entity.Product, error)
	ListVendorProducts(ctx context.Context, actor entity.Actor) ([]*entity.Product, error)
}

// CreateProductInput defines the data required to create a product.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price" validate:"required,gt=0"` // Minor currency units.
	Image       string `json:"image,omitempty"`
	IsActive    *bool  `json:"isActive,omitempty"` // Defaults to true.
}
