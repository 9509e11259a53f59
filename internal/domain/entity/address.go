// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved entry in a user's address book. It is the source a
// checkout may copy from, never what an order references: the order embeds
// its own ShippingAddress copy.
type Address struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	FullName       string
	Phone          string
	AlternatePhone string
	Email          string
	State          string
	City           string
	Locality       string
	AddressLine1   string
	PostalCode     string
	Latitude       *float64
	Longitude      *float64
	Country        string
	IsDefault      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FromShipping builds an address-book entry from an order's shipping
// address. Entries saved during checkout are always non-default.
func FromShipping(userID uuid.UUID, s ShippingAddress) *Address {
	return &Address{
		UserID:         userID,
		FullName:       s.FullName,
		Phone:          s.Phone,
		AlternatePhone: s.AlternatePhone,
		Email:          s.Email,
		State:          s.State,
		City:           s.City,
		Locality:       s.Locality,
		AddressLine1:   s.AddressLine1,
		PostalCode:     s.PostalCode,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		Country:        s.Country,
		IsDefault:      false,
	}
}
