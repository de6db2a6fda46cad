package models

import "time"

// Transaction is a signed amount spent from an account against a category.
// Positive amounts are spending and debit the account; negative amounts are
// refunds.
//
// FinancialMonth is the "YYYY-MM" tag of the financial month the transaction
// fell in when it was recorded. It is written once and never recomputed, so
// changing the start day later does not reclassify history.
type Transaction struct {
	Base
	AccountID      string    `gorm:"type:uuid;not null;index" json:"account_id"`
	CategoryID     string    `gorm:"type:uuid;not null;index" json:"category_id"`
	Amount         int64     `gorm:"type:bigint;not null" json:"amount"`
	Description    string    `json:"description"`
	OccurredAt     time.Time `gorm:"not null;index" json:"occurred_at"`
	FinancialMonth string    `gorm:"size:7;not null;index" json:"financial_month"`

	// Relationships
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
