package models

// OrderCounter is the dedicated per-year sequence backing order number
// assignment. The value only ever increments; it is never recomputed from a
// row count, so numbers stay unique even if orders were ever removed.
type OrderCounter struct {
	Year  int   `gorm:"primaryKey" json:"year"`
	Value int64 `gorm:"not null;default:0" json:"value"`
}

// TableName specifies the table name for the OrderCounter model
func (OrderCounter) TableName() string {
	return "order_counters"
}
