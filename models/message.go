package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a client/staff communication, optionally tied to an
// order, sample, or design
type Message struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"user_id"` // foreign key to users table
	User       User           `gorm:"foreignKey:UserID" json:"-"`
	OrderID    *uint          `gorm:"index" json:"order_id,omitempty"`
	SampleID   *uint          `gorm:"index" json:"sample_id,omitempty"`
	DesignID   *uint          `gorm:"index" json:"design_id,omitempty"`
	Content    string         `gorm:"type:text;not null" json:"content"`
	IsFromUser bool           `gorm:"not null" json:"is_from_user"` // true if from client, false if from staff
	Read       bool           `gorm:"default:false" json:"read"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
