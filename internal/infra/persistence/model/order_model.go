package model

import (
	"time"

	"github.com/google/uuid"
)

// OrderItemJSON is one order line as stored inside the orders row. The
// product reference and the display/price snapshot are distinct fields on
// purpose: the snapshot keeps historical orders stable while the reference
// keeps them traceable.
type OrderItemJSON struct {
	ProductID    uuid.UUID `json:"productId"`
	ProductName  string    `json:"productName"`
	ProductPrice int64     `json:"productPrice"`
	ProductImage string    `json:"productImage"`
	Quantity     int       `json:"quantity"`
}

// ShippingAddressJSON is the embedded copy of the shipping address.
type ShippingAddressJSON struct {
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
	Country        string   `json:"country"`
}

// StatusHistoryJSON is one append-only audit record inside the orders row.
type StatusHistoryJSON struct {
	ChangedBy             string    `json:"changedBy"`
	PreviousStatus        string    `json:"previousStatus"`
	NewStatus             string    `json:"newStatus"`
	PreviousPaymentStatus string    `json:"previousPaymentStatus"`
	NewPaymentStatus      string    `json:"newPaymentStatus"`
	Note                  string    `json:"note"`
	ChangedAt             time.Time `json:"changedAt"`
}

// OrderModel is the GORM-specific struct for the 'orders' table. Items,
// history and the address copy live in JSONB columns; they are owned by the
// order and never queried relationally.
type OrderModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID          uuid.UUID           `gorm:"type:uuid;not null;index:idx_orders_on_user"`
	VendorID        uuid.UUID           `gorm:"type:uuid;not null;index:idx_orders_on_vendor"`
	Items           []OrderItemJSON     `gorm:"type:jsonb;not null;serializer:json"`
	Subtotal        int64               `gorm:"not null"`
	ShippingFee     int64               `gorm:"not null;default:0"`
	TotalAmount     int64               `gorm:"not null"`
	PaymentMethod   string              `gorm:"type:varchar(20);not null;default:'cod'"`
	Status          string              `gorm:"type:varchar(20);not null;index"`
	PaymentStatus   string              `gorm:"type:varchar(20);not null"`
	StatusHistory   []StatusHistoryJSON `gorm:"type:jsonb;not null;serializer:json"`
	ShippingAddress ShippingAddressJSON `gorm:"type:jsonb;not null;serializer:json"`
	Version         int64               `gorm:"not null;default:1"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}
