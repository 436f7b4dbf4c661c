package models

// Category groups products in the catalog (t-shirts, hoodies, fabrics, ...)
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
