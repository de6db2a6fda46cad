// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"budgettracker/internal/period"
)

var (
	hexColorRegex       = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	financialMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("hex_color", validateHexColor)
	_ = v.RegisterValidation("financial_month", validateFinancialMonth)
	_ = v.RegisterValidation("start_day", validateStartDay)
}

func validateHexColor(fl validator.FieldLevel) bool {
	return hexColorRegex.MatchString(fl.Field().String())
}

func validateFinancialMonth(fl validator.FieldLevel) bool {
	return financialMonthRegex.MatchString(fl.Field().String())
}

func validateStartDay(fl validator.FieldLevel) bool {
	return period.ValidateStartDay(int(fl.Field().Int())) == nil
}
