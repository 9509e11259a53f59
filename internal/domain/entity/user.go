// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a person or account on the platform. Customers, vendors and
// admins share the same table; Roles carries what they may do. The vendor
// fields are populated only for accounts holding RoleVendor.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string // Never serialized out of the persistence layer.
	Roles        Roles
	StoreName    string // Vendor storefront name; empty for customers.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
