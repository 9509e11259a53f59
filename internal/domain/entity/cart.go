// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// CartLine is one (product, quantity) pair in a user's pre-checkout basket.
// It holds only a reference; prices are resolved at checkout time.
type CartLine struct {
	ProductID uuid.UUID
	Quantity  int
}

// Cart is a user's current basket. One cart per user; lines are keyed by
// product.
type Cart struct {
	UserID    uuid.UUID
	Lines     []CartLine
	UpdatedAt time.Time
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// ResolvedLine is a cart line after product lookup: enriched with its owning
// vendor and a name/price/image snapshot taken at read time.
type ResolvedLine struct {
	ProductID    uuid.UUID
	ProductName  string
	ProductPrice int64 // Minor currency units.
	ProductImage string
	VendorID     uuid.UUID
	Quantity     int
}

// OrderItem converts the resolved line into an order line item, carrying the
// snapshot fields forward.
func (l ResolvedLine) OrderItem() OrderItem {
	return OrderItem{
		ProductID:    l.ProductID,
		ProductName:  l.ProductName,
		ProductPrice: l.ProductPrice,
		ProductImage: l.ProductImage,
		Quantity:     l.Quantity,
	}
}

// VendorGroup is the slice of resolved lines belonging to one vendor, the
// input for one vendor-pure order.
type VendorGroup struct {
	VendorID uuid.UUID
	Lines    []ResolvedLine
}

// PartitionByVendor groups resolved lines by vendor. Groups appear in the
// insertion order of their first line, which keeps the fan-out deterministic
// for a given cart.
func PartitionByVendor(lines []ResolvedLine) []VendorGroup {
	groups := make([]VendorGroup, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))

	for _, line := range lines {
		i, ok := index[line.VendorID]
		if !ok {
			i = len(groups)
			index[line.VendorID] = i
			groups = append(groups, VendorGroup{VendorID: line.VendorID})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	return groups
}
