package models

import (
	"time"
)

// DesignStatus is the closed set of states a design submission moves through.
type DesignStatus string

const (
	DesignSubmitted DesignStatus = "submitted"
	DesignReviewed  DesignStatus = "reviewed"
	DesignApproved  DesignStatus = "approved"
	DesignRejected  DesignStatus = "rejected"
)

// Valid reports whether s is one of the known design statuses.
func (s DesignStatus) Valid() bool {
	switch s {
	case DesignSubmitted, DesignReviewed, DesignApproved, DesignRejected:
		return true
	}
	return false
}

// DesignTypes are the accepted design categories.
var DesignTypes = []string{"Logo", "Full Print", "Pattern", "Embroidery"}

// ValidDesignType reports whether t is one of the accepted design categories.
func ValidDesignType(t string) bool {
	for _, dt := range DesignTypes {
		if dt == t {
			return true
		}
	}
	return false
}

// Design represents an uploaded artwork submission, optionally tied to an order
type Design struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"not null;index" json:"user_id"` // foreign key to users table
	User      User         `gorm:"foreignKey:UserID" json:"-"`
	Name      string       `gorm:"not null" json:"name"`
	Type      string       `gorm:"not null" json:"type"` // Logo, Full Print, Pattern, Embroidery
	OrderID   *uint        `gorm:"index" json:"order_id,omitempty"`
	FileKeys  StringList   `gorm:"type:jsonb" json:"file_keys"`  // S3 keys for uploaded files
	FileURLs  []string     `gorm:"-" json:"file_urls,omitempty"` // computed, presigned URLs
	Notes     string       `json:"notes"`
	Status    DesignStatus `gorm:"not null;default:'submitted'" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
}

// TableName specifies the table name for the Design model
func (Design) TableName() string {
	return "designs"
}
