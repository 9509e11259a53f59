package model

import (
	"time"

	"github.com/google/uuid"
)

// CartLineModel is the GORM-specific struct for the 'cart_lines' table.
// One row per (user, product); the composite primary key makes quantity
// updates an upsert.
type CartLineModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (CartLineModel) TableName() string {
	return "cart_lines"
}
