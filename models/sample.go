package models

import (
	"time"
)

// SampleStatus is the closed set of states a fabric sample request moves through.
type SampleStatus string

const (
	SamplePending   SampleStatus = "pending"
	SampleApproved  SampleStatus = "approved"
	SampleRejected  SampleStatus = "rejected"
	SampleShipped   SampleStatus = "shipped"
	SampleDelivered SampleStatus = "delivered"
)

// Valid reports whether s is one of the known sample statuses.
func (s SampleStatus) Valid() bool {
	switch s {
	case SamplePending, SampleApproved, SampleRejected, SampleShipped, SampleDelivered:
		return true
	}
	return false
}

// Sample represents a fabric sample request placed before a bulk order
type Sample struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	UserID              uint         `gorm:"not null;index" json:"user_id"` // foreign key to users table
	User                User         `gorm:"foreignKey:UserID" json:"-"`
	ProductID           uint         `gorm:"not null;index" json:"product_id"` // foreign key to products table
	Product             Product      `gorm:"foreignKey:ProductID" json:"product"`
	Status              SampleStatus `gorm:"not null;default:'pending'" json:"status"`
	ShippingAddress     string       `gorm:"not null" json:"shipping_address"`
	ContactName         string       `gorm:"not null" json:"contact_name"`
	ContactPhone        string       `gorm:"not null" json:"contact_phone"`
	SpecialInstructions string       `json:"special_instructions"`
	SampleFee           float64      `json:"sample_fee"`
	ShippingFee         float64      `json:"shipping_fee"`
	Tax                 float64      `json:"tax"`
	TotalFee            float64      `json:"total_fee"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the Sample model
func (Sample) TableName() string {
	return "samples"
}
