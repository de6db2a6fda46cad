package models

// Category is a spending category with a monthly limit in cents.
type Category struct {
	Base
	Name         string `gorm:"not null;uniqueIndex" json:"name"`
	MonthlyLimit int64  `gorm:"type:bigint;not null;default:0" json:"monthly_limit"`
	Description  string `json:"description"`
	Color        string `json:"color"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
