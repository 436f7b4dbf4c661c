package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog item that clients order in bulk
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	CategoryID  uint           `gorm:"not null;index" json:"category_id"` // foreign key to categories table
	Category    Category       `gorm:"foreignKey:CategoryID" json:"-"`
	MOQ         int            `gorm:"not null" json:"moq"` // minimum order quantity
	PriceMin    float64        `gorm:"not null" json:"price_min"`
	PriceMax    float64        `gorm:"not null" json:"price_max"`
	Unit        string         `gorm:"not null" json:"unit"` // e.g. pieces, meters
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	Tags        StringList     `gorm:"type:jsonb" json:"tags"`
	Specs       JSONMap        `gorm:"type:jsonb" json:"specs"` // product specifications (gsm, material, ...)
	CreatedAt   time.Time      `json:"created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
