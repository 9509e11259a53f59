package model

import (
	"time"

	"github.com/google/uuid"
)

// AddressModel is the GORM-specific struct for the 'addresses' table , the
// user's saved address book. Orders do not reference these rows.
type AddressModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index:idx_addresses_on_user"`
	FullName       string    `gorm:"type:varchar(100);not null"`
	Phone          string    `gorm:"type:varchar(20);not null"`
	AlternatePhone string    `gorm:"type:varchar(20)"`
	Email          string    `gorm:"type:varchar(255)"`
	State          string    `gorm:"type:varchar(100);not null"`
	City           string    `gorm:"type:varchar(100);not null"`
	Locality       string    `gorm:"type:varchar(255)"`
	AddressLine1   string    `gorm:"type:text;not null"`
	PostalCode     string    `gorm:"type:varchar(20);not null"`
	Latitude       *float64  `gorm:"type:decimal(10,8)"`
	Longitude      *float64  `gorm:"type:decimal(11,8)"`
	Country        string    `gorm:"type:varchar(100);not null;default:'India'"`
	IsDefault      bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "addresses"
}
