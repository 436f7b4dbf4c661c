package models

import (
	"time"
)

// Activity feed entry types.
const (
	ActivityOrderCreated      = "order_created"
	ActivityOrderStatusChange = "order_status_change"
	ActivitySampleRequest     = "sample_request"
	ActivityDesignUploaded    = "design_uploaded"
)

// Activity is a per-user feed entry emitted by lifecycle events. Activities
// are best-effort: a failed insert never fails the mutation that emitted it.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"` // foreign key to users table
	Type        string    `gorm:"not null" json:"type"`
	RelatedID   uint      `json:"related_id"` // ID of the related entity (order, sample, ...)
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the Activity model
func (Activity) TableName() string {
	return "activities"
}
