package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/metrics"
	"budgettracker/internal/models"
	"budgettracker/internal/pagination"
	"budgettracker/internal/period"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db              *gorm.DB
	accountService  AccountServicer
	categoryService CategoryServicer
	settings        SettingsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer, categoryService CategoryServicer, settings SettingsServicer) TransactionServicer {
	return &transactionService{
		db:              db,
		accountService:  accountService,
		categoryService: categoryService,
		settings:        settings,
	}
}

// RecordTransaction stores a transaction tagged with the financial month its
// date falls in and debits the amount from the account.
func (s *transactionService) RecordTransaction(
	accountID string,
	categoryID string,
	amount int64,
	description string,
	occurredAt time.Time,
) (*models.Transaction, error) {
	if amount == 0 {
		return nil, apperrors.ErrZeroAmount
	}
	if accountID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}
	if categoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category ID is required")
	}

	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	account, err := s.accountService.GetAccountByID(accountID)
	if err != nil {
		return nil, err
	}
	category, err := s.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	startDay, err := s.settings.GetFinancialMonthStartDay()
	if err != nil {
		return nil, err
	}

	// The tag follows the caller's calendar day; the instant is stored in UTC
	// so range filters compare like with like.
	transaction := &models.Transaction{
		AccountID:      account.ID,
		CategoryID:     category.ID,
		Amount:         amount,
		Description:    description,
		OccurredAt:     occurredAt.UTC(),
		FinancialMonth: period.TagFor(occurredAt, startDay),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.AdjustBalance(tx, account.ID, -amount)
	})
	if err != nil {
		return nil, err
	}

	metrics.TransactionsRecorded.WithLabelValues(transaction.FinancialMonth).Inc()
	logger.Get().Debugw("transaction recorded",
		"id", transaction.ID,
		"financial_month", transaction.FinancialMonth,
		"amount", amount,
	)

	transaction.Account = account
	transaction.Category = category
	return transaction, nil
}

// GetTransactions retrieves a paginated, filtered list of transactions, newest first.
func (s *transactionService) GetTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if filter.FinancialMonth != nil {
		if _, err := period.ParseTag(*filter.FinancialMonth); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidFinancialMonth, err)
		}
	}

	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Preload("Account").
		Preload("Category").
		Order("occurred_at DESC").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.FinancialMonth != nil {
		q = q.Where("financial_month = ?", *f.FinancialMonth)
	}
	if f.AccountID != nil {
		q = q.Where("account_id = ?", *f.AccountID)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.FromDate != nil {
		q = q.Where("occurred_at >= ?", f.FromDate.UTC())
	}
	if f.ToDate != nil {
		q = q.Where("occurred_at <= ?", f.ToDate.UTC())
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID
func (s *transactionService) GetTransactionByID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Preload("Account").Preload("Category").
		Where("id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// DeleteTransaction deletes a transaction and credits its amount back to the account.
func (s *transactionService) DeleteTransaction(transactionID string) error {
	transaction, err := s.GetTransactionByID(transactionID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Transaction{}, "id = ?", transaction.ID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return s.accountService.AdjustBalance(tx, transaction.AccountID, transaction.Amount)
	})
	if err != nil {
		return err
	}

	metrics.TransactionsDeleted.Inc()
	return nil
}
