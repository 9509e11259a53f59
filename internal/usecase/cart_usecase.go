// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase manages the user's pre-checkout basket.
type CartUsecase interface {
	GetCart(ctx context.Context, actor entity.Actor) (*entity.Cart, error)
	AddItem(ctx context.Context, actor entity.Actor, input *AddCartItemInput) error
	RemoveItem(ctx context.Context, actor entity.Actor, productID uuid.UUID) error
	ClearCart(ctx context.Context, actor entity.Actor) error
}

// AddCartItemInput defines the body for adding or re-quantifying a cart line.
type AddCartItemInput struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}
