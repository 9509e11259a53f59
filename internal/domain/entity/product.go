// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item offered by a vendor. Orders snapshot its display
// fields at checkout; the catalog remains free to change afterwards.
type Product struct {
	ID          uuid.UUID
	VendorID    uuid.UUID // uuid.Nil means the product has no assigned vendor and cannot be purchased.
	Name        string
	Description string
	Price       int64 // Unit price in minor currency units.
	Image       string
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Purchasable reports whether the product may appear in a checkout: it must
// be active and belong to a vendor.
func (p *Product) Purchasable() bool {
	return p != nil && p.IsActive && p.VendorID != uuid.Nil
}
