package services

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/logger"
	"budgettracker/internal/models"
	"budgettracker/internal/period"
)

// settingsService stores application settings as name/value rows.
type settingsService struct {
	db              *gorm.DB
	defaultStartDay int
}

// NewSettingsService creates a new SettingsServicer. defaultStartDay is
// returned until a start day has been saved.
func NewSettingsService(db *gorm.DB, defaultStartDay int) SettingsServicer {
	if period.ValidateStartDay(defaultStartDay) != nil {
		defaultStartDay = period.DefaultStartDay
	}
	return &settingsService{db: db, defaultStartDay: defaultStartDay}
}

// GetFinancialMonthStartDay returns the saved start day, or the default.
func (s *settingsService) GetFinancialMonthStartDay() (int, error) {
	var setting models.Setting
	err := s.db.Where("name = ?", models.SettingFinancialMonthStartDay).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.defaultStartDay, nil
	}
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	day, err := strconv.Atoi(setting.Value)
	if err != nil || period.ValidateStartDay(day) != nil {
		logger.Get().Warnw("ignoring invalid stored start day",
			"value", setting.Value,
			"default", s.defaultStartDay,
		)
		return s.defaultStartDay, nil
	}
	return day, nil
}

// SetFinancialMonthStartDay validates and saves the start day.
func (s *settingsService) SetFinancialMonthStartDay(day int) error {
	if err := period.ValidateStartDay(day); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidStartDay, err)
	}

	setting := &models.Setting{
		Name:      models.SettingFinancialMonthStartDay,
		Value:     strconv.Itoa(day),
		UpdatedAt: time.Now(),
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
