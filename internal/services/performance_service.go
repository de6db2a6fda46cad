package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "budgettracker/internal/errors"
	"budgettracker/internal/models"
	"budgettracker/internal/performance"
	"budgettracker/internal/period"
)

// performanceService reads categories and tagged transactions and hands them
// to the performance package.
type performanceService struct {
	db              *gorm.DB
	settings        SettingsServicer
	categoryService CategoryServicer
}

// NewPerformanceService creates a new PerformanceServicer.
func NewPerformanceService(db *gorm.DB, settings SettingsServicer, categoryService CategoryServicer) PerformanceServicer {
	return &performanceService{
		db:              db,
		settings:        settings,
		categoryService: categoryService,
	}
}

// GetPerformance builds the report for the financial month containing now.
func (s *performanceService) GetPerformance(now time.Time) (*performance.Report, error) {
	startDay, err := s.settings.GetFinancialMonthStartDay()
	if err != nil {
		return nil, err
	}
	calc := period.NewCalculator(startDay)

	categories, err := s.categoryLimits()
	if err != nil {
		return nil, err
	}
	rows, err := s.taggedAmounts(calc.TagFor(now), calc.PreviousTag(now))
	if err != nil {
		return nil, err
	}

	return performance.Build(now, startDay, categories, rows), nil
}

// GetMonthlyOverview summarizes spending per category for tag. An empty tag
// means the financial month containing now.
func (s *performanceService) GetMonthlyOverview(now time.Time, tag string) (*performance.Summary, error) {
	tag, err := s.resolveTag(now, tag)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryLimits()
	if err != nil {
		return nil, err
	}
	rows, err := s.taggedAmounts(tag)
	if err != nil {
		return nil, err
	}

	summary := performance.Summarize(tag, categories, rows)
	return &summary, nil
}

// GetCategoryAnalysis returns one category's spending and its transactions for
// tag, newest first. An empty tag means the financial month containing now.
func (s *performanceService) GetCategoryAnalysis(now time.Time, categoryID, tag string) (*CategoryAnalysis, error) {
	tag, err := s.resolveTag(now, tag)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryService.GetCategoryByID(categoryID)
	if err != nil {
		return nil, err
	}

	var transactions []models.Transaction
	if err := s.db.Preload("Account").
		Where("category_id = ? AND financial_month = ?", category.ID, tag).
		Order("occurred_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	rows := make([]performance.TaggedAmount, 0, len(transactions))
	for _, t := range transactions {
		rows = append(rows, performance.TaggedAmount{CategoryID: t.CategoryID, Amount: t.Amount, FinancialMonth: t.FinancialMonth})
	}
	summary := performance.Summarize(tag, []performance.CategoryLimit{{
		ID:    category.ID,
		Name:  category.Name,
		Limit: category.MonthlyLimit,
	}}, rows)

	if transactions == nil {
		transactions = []models.Transaction{}
	}
	return &CategoryAnalysis{
		FinancialMonth: tag,
		Category:       summary.Categories[0],
		Transactions:   transactions,
	}, nil
}

// GetFinancialPeriod returns the financial month containing date.
func (s *performanceService) GetFinancialPeriod(date time.Time) (*period.Period, error) {
	startDay, err := s.settings.GetFinancialMonthStartDay()
	if err != nil {
		return nil, err
	}
	p := period.BoundsFor(date, startDay)
	return &p, nil
}

func (s *performanceService) resolveTag(now time.Time, tag string) (string, error) {
	if tag == "" {
		p, err := s.GetFinancialPeriod(now)
		if err != nil {
			return "", err
		}
		return p.Tag, nil
	}
	if _, err := period.ParseTag(tag); err != nil {
		return "", apperrors.Wrap(apperrors.ErrInvalidFinancialMonth, err)
	}
	return tag, nil
}

func (s *performanceService) categoryLimits() ([]performance.CategoryLimit, error) {
	var categories []models.Category
	if err := s.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	limits := make([]performance.CategoryLimit, 0, len(categories))
	for _, c := range categories {
		limits = append(limits, performance.CategoryLimit{ID: c.ID, Name: c.Name, Limit: c.MonthlyLimit})
	}
	return limits, nil
}

func (s *performanceService) taggedAmounts(tags ...string) ([]performance.TaggedAmount, error) {
	var rows []performance.TaggedAmount
	if err := s.db.Model(&models.Transaction{}).
		Select("category_id, SUM(amount) AS amount, financial_month").
		Where("financial_month IN ?", tags).
		Group("category_id, financial_month").
		Scan(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}
