package models

import "time"

// SettingFinancialMonthStartDay is the settings row holding the start day.
const SettingFinancialMonthStartDay = "financial_month_start_day"

// Setting is a single key/value configuration row.
type Setting struct {
	Name      string    `gorm:"primaryKey;size:64" json:"name"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
