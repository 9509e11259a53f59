package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Customers, vendors and admins share
// it; Roles is a small JSONB list rather than a join table.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Roles        []string  `gorm:"type:jsonb;not null;serializer:json"`
	StoreName    string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
