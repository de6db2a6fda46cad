// Package money converts between minor-unit amounts (cents) and their decimal
// representations. All stored amounts are int64 cents.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned when an amount string cannot be parsed.
var ErrInvalidAmount = errors.New("invalid amount")

var hundred = decimal.NewFromInt(100)

// Parse converts a decimal string such as "12.34", "12,34" or "-5" to cents,
// rounding half away from zero on the third decimal place.
func Parse(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return d.Mul(hundred).Round(0).IntPart(), nil
}

// Decimal returns cents as a decimal in major units.
func Decimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// Format renders cents with two fixed decimals, e.g. 123456 -> "1234.56".
func Format(cents int64) string {
	return Decimal(cents).StringFixed(2)
}

// Float returns cents in major units as a float64, for charting.
func Float(cents int64) float64 {
	return Decimal(cents).InexactFloat64()
}

// Percent returns part/whole*100 rounded to one decimal place. A zero whole
// yields 0 rather than an error or NaN.
func Percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	p := decimal.NewFromInt(part).Mul(hundred).Div(decimal.NewFromInt(whole))
	return p.Round(1).InexactFloat64()
}
