package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"budgettracker/internal/charts"
	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/services"
)

// PerformanceHandler serves budget reports.
type PerformanceHandler struct {
	performanceService services.PerformanceServicer
}

// NewPerformanceHandler creates a new PerformanceHandler.
func NewPerformanceHandler(performanceService services.PerformanceServicer) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

type overviewURI struct {
	Month string `uri:"month" binding:"required,financial_month"`
}

type analysisQuery struct {
	Month string `form:"month" binding:"omitempty,financial_month"`
}

// GetPerformance returns the report for the current financial month
// @Summary     Budget performance
// @Description Spending against limits for the financial month containing date (default now)
// @Tags        performance
// @Produce     json
// @Param       date query string false "Reference date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {object} performance.Report
// @Failure     400 {object} middleware.ErrorResponse "Invalid date"
// @Router      /performance [get]
func (h *PerformanceHandler) GetPerformance(c *gin.Context) {
	now, err := dateOrNow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.performanceService.GetPerformance(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetPerformanceChart renders spending per category as a PNG
// @Summary     Budget performance chart
// @Tags        performance
// @Produce     png
// @Param       date query string false "Reference date (RFC3339 or YYYY-MM-DD)"
// @Success     200 {file} binary
// @Success     204 "No categories to chart"
// @Router      /performance/chart [get]
func (h *PerformanceHandler) GetPerformanceChart(c *gin.Context) {
	now, err := dateOrNow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	report, err := h.performanceService.GetPerformance(now)
	if err != nil {
		respondWithError(c, err)
		return
	}

	img, err := charts.SpendingByCategory(report)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	if img == nil {
		c.Status(http.StatusNoContent)
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}

// GetMonthlyOverview summarizes a financial month
// @Summary     Monthly overview
// @Tags        performance
// @Produce     json
// @Param       month path string true "Financial month (YYYY-MM)"
// @Success     200 {object} performance.Summary
// @Failure     400 {object} middleware.ErrorResponse "Invalid month"
// @Router      /overview/{month} [get]
func (h *PerformanceHandler) GetMonthlyOverview(c *gin.Context) {
	var uri overviewURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondWithError(c, apperrors.ErrInvalidFinancialMonth)
		return
	}

	summary, err := h.performanceService.GetMonthlyOverview(time.Now(), uri.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetCategoryAnalysis returns a category's spending and transactions
// @Summary     Category analysis
// @Tags        categories
// @Produce     json
// @Param       id    path  string true  "Category ID"
// @Param       month query string false "Financial month (YYYY-MM), default the month containing date"
// @Param       date  query string false "Reference date (RFC3339 or YYYY-MM-DD), default now"
// @Success     200 {object} services.CategoryAnalysis
// @Failure     400 {object} middleware.ErrorResponse "Invalid input"
// @Failure     404 {object} middleware.ErrorResponse "Category not found"
// @Router      /categories/{id}/analysis [get]
func (h *PerformanceHandler) GetCategoryAnalysis(c *gin.Context) {
	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var q analysisQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, apperrors.ErrInvalidFinancialMonth)
		return
	}

	now, err := dateOrNow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	analysis, err := h.performanceService.GetCategoryAnalysis(now, categoryID, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis)
}

// GetFinancialMonth returns the financial month containing a date
// @Summary     Financial month lookup
// @Tags        performance
// @Produce     json
// @Param       date query string false "Date (RFC3339 or YYYY-MM-DD), default now"
// @Success     200 {object} period.Period
// @Failure     400 {object} middleware.ErrorResponse "Invalid date"
// @Router      /financial-month [get]
func (h *PerformanceHandler) GetFinancialMonth(c *gin.Context) {
	date, err := dateOrNow(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	p, err := h.performanceService.GetFinancialPeriod(date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}
