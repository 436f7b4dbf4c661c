package models

import (
	"time"
)

// Order represents a bulk production order placed by a business client.
// The order number is assigned once at creation and never changes; the
// status timeline is append-only.
type Order struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	OrderNumber        string         `gorm:"uniqueIndex;not null" json:"order_number"` // Format: DAS-YYYY-XXXX
	UserID             uint           `gorm:"not null;index" json:"user_id"`            // foreign key to users table
	User               User           `gorm:"foreignKey:UserID" json:"-"`
	ProductID          uint           `gorm:"not null;index" json:"product_id"` // foreign key to products table
	Product            Product        `gorm:"foreignKey:ProductID" json:"product"`
	Quantity           int            `gorm:"not null" json:"quantity"`
	SizeBreakdown      QuantityMap    `gorm:"type:jsonb" json:"size_breakdown"` // size label -> count
	Colors             QuantityMap    `gorm:"type:jsonb" json:"colors"`         // color label -> count
	Customization      JSONMap        `gorm:"type:jsonb" json:"customization"`
	DeliveryDate       *time.Time     `json:"delivery_date"`
	Status             OrderStatus    `gorm:"not null;default:'pending'" json:"status"`
	StatusTimeline     StatusTimeline `gorm:"type:jsonb" json:"status_timeline"`
	TotalAmount        float64        `gorm:"not null" json:"total_amount"`
	Subtotal           float64        `gorm:"not null" json:"subtotal"`
	CustomizationFee   float64        `json:"customization_fee"`
	ShippingFee        float64        `json:"shipping_fee"`
	Tax                float64        `json:"tax"`
	ShippingAddress    string         `gorm:"not null" json:"shipping_address"`
	ContactName        string         `gorm:"not null" json:"contact_name"`
	ContactPhone       string         `gorm:"not null" json:"contact_phone"`
	Notes              string         `json:"notes"`
	ProgressPercentage int            `gorm:"default:0" json:"progress_percentage"` // set independently from status
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Timeline step states as rendered to clients.
const (
	StepCompleted = "completed"
	StepCurrent   = "current"
	StepFuture    = "future"
)

// TimelineStep is one rendered entry of the order tracking view.
type TimelineStep struct {
	Status    OrderStatus `json:"status"`
	State     string      `json:"state"`
	Timestamp *time.Time  `json:"timestamp,omitempty"`
}

// TimelineView projects the order's timeline onto the canonical status
// sequence. Each step is marked completed (reached, not current), current,
// or future. awaiting_approval is spliced in after pending when the order
// actually passed through it. Duplicate timeline entries for a status are
// collapsed to the latest timestamp.
func (o *Order) TimelineView() []TimelineStep {
	sequence := make([]OrderStatus, 0, len(StatusSequence)+1)
	for _, status := range StatusSequence {
		sequence = append(sequence, status)
		if status == StatusPending &&
			(o.Status == StatusAwaitingApproval || o.StatusTimeline.Contains(StatusAwaitingApproval)) {
			sequence = append(sequence, StatusAwaitingApproval)
		}
	}

	steps := make([]TimelineStep, 0, len(sequence))
	for _, status := range sequence {
		step := TimelineStep{Status: status, State: StepFuture}
		if ts, ok := o.StatusTimeline.LatestTimestamp(status); ok {
			t := ts
			step.Timestamp = &t
			step.State = StepCompleted
		}
		if status == o.Status {
			step.State = StepCurrent
		}
		steps = append(steps, step)
	}
	return steps
}
