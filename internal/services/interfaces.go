package services

import (
	"time"

	"gorm.io/gorm"

	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/performance"
	"budgettracker/internal/period"
)

// AccountUpdateFields holds optional fields for updating an account.
// Nil pointer means "don't update this field".
type AccountUpdateFields struct {
	Name        *string
	Description *string
	Balance     *int64
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name, description string, initialBalance int64) (*models.Account, error)
	GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(accountID string) (*models.Account, error)
	GetAccountByName(name string) (*models.Account, error)
	UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(accountID string) error
	AdjustBalance(tx *gorm.DB, accountID string, delta int64) error
}

// CategoryUpdateFields holds optional fields for updating a category.
type CategoryUpdateFields struct {
	Name         *string
	MonthlyLimit *int64
	Description  *string
	Color        *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, monthlyLimit int64, description, color string) (*models.Category, error)
	GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	GetCategoryByName(name string) (*models.Category, error)
	UpdateCategory(categoryID string, fields CategoryUpdateFields) (*models.Category, error)
	DeleteCategory(categoryID string) error
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	FinancialMonth *string
	AccountID      *string
	CategoryID     *string
	FromDate       *time.Time
	ToDate         *time.Time
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	RecordTransaction(accountID, categoryID string, amount int64, description string, occurredAt time.Time) (*models.Transaction, error)
	GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(transactionID string) (*models.Transaction, error)
	DeleteTransaction(transactionID string) error
}

// SettingsServicer defines the contract for application settings.
type SettingsServicer interface {
	GetFinancialMonthStartDay() (int, error)
	SetFinancialMonthStartDay(day int) error
}

// CategoryAnalysis is one category's spending and transactions in a financial month.
type CategoryAnalysis struct {
	FinancialMonth string                       `json:"financialMonth"`
	Category       performance.CategorySpending `json:"category"`
	Transactions   []models.Transaction         `json:"transactions"`
}

// PerformanceServicer defines the contract for budget reporting.
type PerformanceServicer interface {
	GetPerformance(now time.Time) (*performance.Report, error)
	GetMonthlyOverview(now time.Time, tag string) (*performance.Summary, error)
	GetCategoryAnalysis(now time.Time, categoryID, tag string) (*CategoryAnalysis, error)
	GetFinancialPeriod(date time.Time) (*period.Period, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
