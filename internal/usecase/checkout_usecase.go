// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// CheckoutUsecase converts the acting user's cart into one persisted order
// per vendor. The whole fan-out (order creation, optional address save, cart
// clear) commits or rolls back as a single transaction.
type CheckoutUsecase interface {
	Checkout(ctx context.Context, actor entity.Actor, input *CheckoutInput) (*CheckoutOutput, error)
}

// ShippingAddressInput carries the shipping fields of a checkout request.
// FullName, Phone, AddressLine1, City, State and PostalCode are required;
// a missing one rejects the checkout before anything is written.
type ShippingAddressInput struct {
	FullName       string   `json:"fullName"`
	Phone          string   `json:"phone"`
	AlternatePhone string   `json:"alternatePhone,omitempty"`
	Email          string   `json:"email,omitempty"`
	State          string   `json:"state"`
	City           string   `json:"city"`
	Locality       string   `json:"locality,omitempty"`
	AddressLine1   string   `json:"addressLine1"`
	PostalCode     string   `json:"postalCode"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Country        string   `json:"country,omitempty"`
}

// CheckoutInput defines the body of a checkout request.
type CheckoutInput struct {
	ShippingAddressInput
	PaymentMethod string `json:"paymentMethod,omitempty"` // Defaults to "cod".
	SaveAddress   bool   `json:"saveAddress,omitempty"`
}

// CheckoutOutput returns the created orders, one per vendor represented in
// the cart, in first-occurrence vendor order.
type CheckoutOutput struct {
	Orders []*entity.Order `json:"orders"`
}
