package model

import (
	"time"

	"github.com/google/uuid"
)

// ProductModel is the GORM-specific struct for the 'products' table.
// VendorID is nullable: a vendor-less product exists in the catalog but can
// never be checked out.
type ProductModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VendorID    *uuid.UUID `gorm:"type:uuid;index:idx_products_on_vendor"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	Price       int64      `gorm:"not null"`
	Image       string     `gorm:"type:text"`
	IsActive    bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
