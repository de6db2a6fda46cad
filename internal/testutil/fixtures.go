package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/gorm"

	"budgettracker/internal/models"
	"budgettracker/internal/period"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with zero balance.
func CreateTestAccount(t *testing.T, db *gorm.DB) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, db, 0)
}

// CreateTestAccountWithBalance creates an account with the given balance (in cents).
func CreateTestAccountWithBalance(t *testing.T, db *gorm.DB, balance int64) *models.Account {
	t.Helper()

	account := &models.Account{
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestCategory creates a category with the given monthly limit (in cents).
func CreateTestCategory(t *testing.T, db *gorm.DB, limit int64) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:         fmt.Sprintf("Test Category %d", nextID()),
		MonthlyLimit: limit,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestTransaction inserts a transaction directly, tagging it with
// startDay. It does not touch the account balance.
func CreateTestTransaction(t *testing.T, db *gorm.DB, accountID, categoryID string, amount int64, occurredAt time.Time, startDay int) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		AccountID:      accountID,
		CategoryID:     categoryID,
		Amount:         amount,
		OccurredAt:     occurredAt,
		FinancialMonth: period.TagFor(occurredAt, startDay),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}
