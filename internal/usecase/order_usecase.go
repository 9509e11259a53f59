// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase exposes order views to their owners and the audited status
// state machine to vendors and admins.
type OrderUsecase interface {
	// ListMyOrders returns the customer's own orders, newest first.
	ListMyOrders(ctx context.Context, actor entity.Actor) ([]*entity.Order, error)

	// GetMyOrder returns one of the customer's own orders with full history.
	GetMyOrder(ctx context.Context, actor entity.Actor, orderID uuid.UUID) (*entity.Order, error)

	// ListVendorOrders returns the orders owned by the acting vendor.
	ListVendorOrders(ctx context.Context, actor entity.Actor) ([]*entity.Order, error)

	// UpdateStatusAsVendor applies a transition to an order the actor owns.
	// Orders of other vendors are indistinguishable from missing ones.
	UpdateStatusAsVendor(ctx context.Context, actor entity.Actor, orderID uuid.UUID, input *UpdateStatusInput) (*entity.Order, error)

	// ListAllOrders returns every order on the platform. Admin only.
	ListAllOrders(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatusAsAdmin applies a transition to any order by id.
	UpdateStatusAsAdmin(ctx context.Context, actor entity.Actor, orderID uuid.UUID, input *UpdateStatusInput) (*entity.Order, error)
}

// UpdateStatusInput defines the body of a status-transition request.
// Omitted fields are left unchanged. Note is mandatory. ExpectedVersion, when
// set, must match the order's current version or the write is rejected.
type UpdateStatusInput struct {
	Status          *string `json:"status,omitempty"`
	PaymentStatus   *string `json:"paymentStatus,omitempty"`
	Note            string  `json:"note"`
	ExpectedVersion *int64  `json:"expectedVersion,omitempty"`
}
