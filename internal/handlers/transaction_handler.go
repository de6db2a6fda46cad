package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/pagination"
	"budgettracker/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	accountService     services.AccountServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, accountService services.AccountServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		accountService:     accountService,
		auditService:       auditService,
	}
}

// RecordTransactionRequest represents the request body for recording a transaction.
// Amount is in cents; positive amounts are spending, negative amounts refunds.
type RecordTransactionRequest struct {
	AccountID   string  `json:"account_id" binding:"required,uuid"`
	CategoryID  string  `json:"category_id" binding:"required,uuid"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description" binding:"max=500"`
	OccurredAt  *string `json:"occurred_at"`
}

// TransactionListQuery holds the list filters accepted on the query string.
type TransactionListQuery struct {
	FinancialMonth string `form:"financial_month" binding:"omitempty,financial_month"`
	AccountID      string `form:"account_id"`
	CategoryID     string `form:"category_id"`
	From           string `form:"from"`
	To             string `form:"to"`
}

// RecordTransaction records a transaction and debits the account
// @Summary     Record a transaction
// @Description Tags the transaction with its financial month and debits the account
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Param       request body RecordTransactionRequest true "Transaction details"
// @Success     201 {object} map[string]models.Transaction
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Account or category not found"
// @Router      /transactions [post]
func (h *TransactionHandler) RecordTransaction(c *gin.Context) {
	var req RecordTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var occurredAt time.Time
	if req.OccurredAt != nil && *req.OccurredAt != "" {
		parsed, err := parseFlexibleTime(*req.OccurredAt)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid occurred_at format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		occurredAt = parsed
	}

	transaction, err := h.transactionService.RecordTransaction(req.AccountID, req.CategoryID, req.Amount, req.Description, occurredAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionCreate, "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{
			"account_id":      transaction.AccountID,
			"category_id":     transaction.CategoryID,
			"amount":          transaction.Amount,
			"financial_month": transaction.FinancialMonth,
		})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransactions lists transactions, newest first
// @Summary     List transactions
// @Tags        transactions
// @Produce     json
// @Param       financial_month query string false "Financial month (YYYY-MM)"
// @Param       account_id      query string false "Account ID"
// @Param       category_id     query string false "Category ID"
// @Param       from            query string false "Earliest occurred_at (RFC3339 or YYYY-MM-DD)"
// @Param       to              query string false "Latest occurred_at (RFC3339 or YYYY-MM-DD)"
// @Param       page            query int    false "Page number"
// @Param       page_size       query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     400 {object} middleware.ErrorResponse "Invalid filter"
// @Router      /transactions [get]
func (h *TransactionHandler) GetTransactions(c *gin.Context) {
	page, filter, err := parseTransactionQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAccountTransactions lists the transactions of one account
// @Summary     List an account's transactions
// @Tags        accounts
// @Produce     json
// @Param       id              path  string true  "Account ID"
// @Param       financial_month query string false "Financial month (YYYY-MM)"
// @Param       page            query int    false "Page number"
// @Param       page_size       query int    false "Page size"
// @Success     200 {object} pagination.PageResponse[models.Transaction]
// @Failure     404 {object} middleware.ErrorResponse "Account not found"
// @Router      /accounts/{id}/transactions [get]
func (h *TransactionHandler) GetAccountTransactions(c *gin.Context) {
	accountID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if _, err := h.accountService.GetAccountByID(accountID); err != nil {
		respondWithError(c, err)
		return
	}

	page, filter, err := parseTransactionQuery(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	filter.AccountID = &accountID

	result, err := h.transactionService.GetTransactions(page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionByID returns a specific transaction
// @Summary     Get a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]models.Transaction
// @Failure     404 {object} middleware.ErrorResponse "Not found"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(transactionID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction deletes a transaction and restores the account balance
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse
// @Failure     404 {object} middleware.ErrorResponse "Not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionDelete, "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Transaction deleted successfully"})
}

func parseTransactionQuery(c *gin.Context) (pagination.PageRequest, services.TransactionFilter, error) {
	var (
		page   pagination.PageRequest
		query  TransactionListQuery
		filter services.TransactionFilter
	)

	if err := c.ShouldBindQuery(&page); err != nil {
		return page, filter, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		return page, filter, apperrors.ErrInvalidFinancialMonth
	}

	if query.FinancialMonth != "" {
		filter.FinancialMonth = &query.FinancialMonth
	}

	var err error
	if filter.AccountID, err = parseOptionalID(query.AccountID, "account_id"); err != nil {
		return page, filter, err
	}
	if filter.CategoryID, err = parseOptionalID(query.CategoryID, "category_id"); err != nil {
		return page, filter, err
	}

	if query.From != "" {
		t, err := parseFlexibleTime(query.From)
		if err != nil {
			return page, filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid from format, use RFC3339 or YYYY-MM-DD")
		}
		filter.FromDate = &t
	}
	if query.To != "" {
		t, err := parseFlexibleTime(query.To)
		if err != nil {
			return page, filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid to format, use RFC3339 or YYYY-MM-DD")
		}
		filter.ToDate = &t
	}

	return page, filter, nil
}
