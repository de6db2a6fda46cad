package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"budgettracker/internal/models"
	"budgettracker/internal/money"
	"budgettracker/internal/performance"
	"budgettracker/internal/services"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	overStyle   = numberStyle.Foreground(lipgloss.Color("9"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// newTable returns a table whose columns listed in numeric are right
// aligned. Rows for which over returns true get their numeric cells in red.
func newTable(headers []string, numeric map[int]bool, over func(row int) bool) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case numeric[col] && over != nil && over(row):
				return overStyle
			case numeric[col]:
				return numberStyle
			default:
				return cellStyle
			}
		})
}

func renderAccounts(accounts []models.Account) string {
	if len(accounts) == 0 {
		return mutedStyle.Render("No accounts.")
	}
	t := newTable([]string{"Name", "Balance", "Description"}, map[int]bool{1: true}, nil)
	for _, a := range accounts {
		t.Row(a.Name, money.Format(a.Balance), a.Description)
	}
	return t.Render()
}

func renderCategories(categories []models.Category) string {
	if len(categories) == 0 {
		return mutedStyle.Render("No categories.")
	}
	t := newTable([]string{"Name", "Monthly limit", "Description"}, map[int]bool{1: true}, nil)
	for _, c := range categories {
		t.Row(c.Name, money.Format(c.MonthlyLimit), c.Description)
	}
	return t.Render()
}

func spendingTable(lines []performance.CategorySpending, totalBudget, totalSpent int64, percent float64) string {
	t := newTable(
		[]string{"Category", "Limit", "Spent", "Remaining", "Used"},
		map[int]bool{1: true, 2: true, 3: true, 4: true},
		func(row int) bool { return row < len(lines) && lines[row].Remaining < 0 },
	)
	for _, l := range lines {
		t.Row(l.Name, money.Format(l.Limit), money.Format(l.Spent), money.Format(l.Remaining), formatPercent(l.PercentUsed))
	}
	t.Row("Total", money.Format(totalBudget), money.Format(totalSpent), money.Format(totalBudget-totalSpent), formatPercent(percent))
	return t.Render()
}

func renderReport(r *performance.Report) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Financial month %s (%s to %s)",
		r.CurrentFinancialMonth, r.PeriodStart.Format("2006-01-02"), r.PeriodEnd.Format("2006-01-02"))))
	b.WriteString("\n")
	b.WriteString(spendingTable(r.Categories, r.TotalBudget, r.TotalSpent, r.PercentUsed))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%d day(s) remaining · last month spent %s · month starts on day %d\n",
		r.DaysRemaining, money.Format(r.LastMonthSpent), r.FinancialMonthStartDay)
	return b.String()
}

func renderSummary(s *performance.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Overview " + s.FinancialMonth))
	b.WriteString("\n")
	b.WriteString(spendingTable(s.Categories, s.TotalBudget, s.TotalSpent, s.PercentUsed))
	b.WriteString("\n")
	return b.String()
}

func renderTransactions(title string, txs []models.Transaction) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if len(txs) == 0 {
		b.WriteString(mutedStyle.Render("No transactions."))
		b.WriteString("\n")
		return b.String()
	}

	t := newTable([]string{"Date", "Month", "Account", "Category", "Amount", "Description", "ID"}, map[int]bool{4: true}, nil)
	for _, tx := range txs {
		t.Row(
			tx.OccurredAt.Format("2006-01-02"),
			tx.FinancialMonth,
			accountName(tx),
			categoryName(tx),
			money.Format(tx.Amount),
			tx.Description,
			tx.ID,
		)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")
	return b.String()
}

func renderAnalysis(a *services.CategoryAnalysis) string {
	c := a.Category
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s in %s", c.Name, a.FinancialMonth)))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Spent %s of %s (%s), %s remaining\n\n",
		money.Format(c.Spent), money.Format(c.Limit), formatPercent(c.PercentUsed), money.Format(c.Remaining))
	b.WriteString(renderTransactions("Transactions", a.Transactions))
	return b.String()
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

func accountName(tx models.Transaction) string {
	if tx.Account != nil {
		return tx.Account.Name
	}
	return tx.AccountID
}

func categoryName(tx models.Transaction) string {
	if tx.Category != nil {
		return tx.Category.Name
	}
	return tx.CategoryID
}
