package models

// Account is a bank account. Its balance is debited when a transaction is
// recorded against it and credited back when that transaction is deleted.
type Account struct {
	Base
	Name        string `gorm:"not null;uniqueIndex" json:"name"`
	Description string `json:"description"`
	Balance     int64  `gorm:"type:bigint;not null;default:0" json:"balance"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
