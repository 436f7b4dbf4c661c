package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a business client in the system
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Auth0ID      string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	BusinessName string         `gorm:"not null" json:"business_name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	KYCVerified  bool           `gorm:"default:false" json:"kyc_verified"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
