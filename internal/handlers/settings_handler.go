package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/services"
)

// SettingsHandler handles application settings.
type SettingsHandler struct {
	settingsService services.SettingsServicer
	auditService    services.AuditServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer, auditService services.AuditServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, auditService: auditService}
}

// FinancialMonthStartRequest is the body for changing the start day.
type FinancialMonthStartRequest struct {
	StartDay *int `json:"start_day" binding:"required,start_day"`
}

// FinancialMonthStartResponse reports the current start day.
type FinancialMonthStartResponse struct {
	StartDay int    `json:"start_day"`
	Message  string `json:"message,omitempty"`
}

// GetFinancialMonthStart returns the financial month start day
// @Summary     Get the financial month start day
// @Tags        settings
// @Produce     json
// @Success     200 {object} FinancialMonthStartResponse
// @Router      /settings/financial-month-start [get]
func (h *SettingsHandler) GetFinancialMonthStart(c *gin.Context) {
	day, err := h.settingsService.GetFinancialMonthStartDay()
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, FinancialMonthStartResponse{StartDay: day})
}

// SetFinancialMonthStart changes the financial month start day
// @Summary     Set the financial month start day
// @Description Accepts a day between 1 and 28. Existing transactions keep their financial month.
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body FinancialMonthStartRequest true "New start day"
// @Success     200 {object} FinancialMonthStartResponse
// @Failure     400 {object} middleware.ErrorResponse "Invalid start day"
// @Router      /settings/financial-month-start [put]
func (h *SettingsHandler) SetFinancialMonthStart(c *gin.Context) {
	var req FinancialMonthStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "start_day" {
					respondWithError(c, apperrors.ErrInvalidStartDay)
					return
				}
			}
		}
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	if err := h.settingsService.SetFinancialMonthStartDay(*req.StartDay); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(services.AuditActionUpdate, "setting", "", c.ClientIP(),
		map[string]interface{}{"financial_month_start_day": *req.StartDay})

	c.JSON(http.StatusOK, FinancialMonthStartResponse{
		StartDay: *req.StartDay,
		Message:  "Financial month start day updated successfully",
	})
}
