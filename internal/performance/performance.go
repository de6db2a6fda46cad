// Package performance aggregates tagged transactions against category limits.
//
// It is pure: callers fetch categories and transaction rows, and this package
// only groups and sums them. Rows are matched to periods by their stored
// financial month tag, never by re-deriving a tag from their dates.
package performance

import (
	"time"

	"budgettracker/internal/money"
	"budgettracker/internal/period"
)

// CategoryLimit is a category and its monthly limit in cents.
type CategoryLimit struct {
	ID    string
	Name  string
	Limit int64
}

// TaggedAmount is the part of a transaction the aggregator needs.
type TaggedAmount struct {
	CategoryID     string
	Amount         int64
	FinancialMonth string
}

// CategorySpending is one category line of a summary.
type CategorySpending struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Limit       int64   `json:"limit"`
	Spent       int64   `json:"spent"`
	Remaining   int64   `json:"remaining"`
	PercentUsed float64 `json:"percentUsed"`
}

// Summary is the spending of every category within one financial month.
type Summary struct {
	FinancialMonth string             `json:"financialMonth"`
	TotalBudget    int64              `json:"totalBudget"`
	TotalSpent     int64              `json:"totalSpent"`
	Remaining      int64              `json:"remaining"`
	PercentUsed    float64            `json:"percentUsed"`
	Categories     []CategorySpending `json:"categories"`
}

// Report is the performance of the current financial month.
type Report struct {
	TotalBudget            int64              `json:"totalBudget"`
	TotalSpent             int64              `json:"totalSpent"`
	PercentUsed            float64            `json:"percentUsed"`
	Categories             []CategorySpending `json:"categories"`
	DaysRemaining          int                `json:"daysRemaining"`
	LastMonthSpent         int64              `json:"lastMonthSpent"`
	FinancialMonthStartDay int                `json:"financialMonthStartDay"`
	CurrentFinancialMonth  string             `json:"currentFinancialMonth"`
	PeriodStart            time.Time          `json:"periodStart"`
	PeriodEnd              time.Time          `json:"periodEnd"`
}

// Summarize groups the rows tagged tag by category. Every category appears,
// in input order, whether or not it has spending; rows for other tags or for
// unknown categories are ignored.
func Summarize(tag string, categories []CategoryLimit, rows []TaggedAmount) Summary {
	spent := make(map[string]int64, len(categories))
	for _, r := range rows {
		if r.FinancialMonth == tag {
			spent[r.CategoryID] += r.Amount
		}
	}

	summary := Summary{
		FinancialMonth: tag,
		Categories:     make([]CategorySpending, 0, len(categories)),
	}
	for _, c := range categories {
		s := spent[c.ID]
		summary.Categories = append(summary.Categories, CategorySpending{
			ID:          c.ID,
			Name:        c.Name,
			Limit:       c.Limit,
			Spent:       s,
			Remaining:   c.Limit - s,
			PercentUsed: money.Percent(s, c.Limit),
		})
		summary.TotalBudget += c.Limit
		summary.TotalSpent += s
	}
	summary.Remaining = summary.TotalBudget - summary.TotalSpent
	summary.PercentUsed = money.Percent(summary.TotalSpent, summary.TotalBudget)

	return summary
}

// Build produces the report for the financial month containing now. The
// start day is used as a single snapshot for every nested period lookup.
func Build(now time.Time, startDay int, categories []CategoryLimit, rows []TaggedAmount) *Report {
	calc := period.NewCalculator(startDay)
	bounds := calc.BoundsFor(now)
	previous := calc.PreviousTag(now)

	summary := Summarize(bounds.Tag, categories, rows)

	var lastMonthSpent int64
	for _, r := range rows {
		if r.FinancialMonth == previous {
			lastMonthSpent += r.Amount
		}
	}

	return &Report{
		TotalBudget:            summary.TotalBudget,
		TotalSpent:             summary.TotalSpent,
		PercentUsed:            summary.PercentUsed,
		Categories:             summary.Categories,
		DaysRemaining:          calc.DaysRemaining(now),
		LastMonthSpent:         lastMonthSpent,
		FinancialMonthStartDay: startDay,
		CurrentFinancialMonth:  bounds.Tag,
		PeriodStart:            bounds.Start,
		PeriodEnd:              bounds.End,
	}
}
