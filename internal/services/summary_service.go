package services

import (
	"fintrack/internal/models"

	"github.com/shopspring/decimal"
)

const trendLabelLayout = "2006-01"

// summaryService computes dashboard aggregates from a user's transaction
// history. It is pure: no repository access, no side effects, deterministic
// for a given input sequence.
type summaryService struct{}

// NewSummaryService creates a new SummaryServiceInterface instance
func NewSummaryService() SummaryServiceInterface {
	return &summaryService{}
}

// Summarize derives all dashboard values in a single pass over the input.
//
// The input order matters twice over: category totals keep the insertion
// order of each category's first occurrence, and the trend series emits one
// point per transaction in input order rather than bucketing by month.
// Callers wanting dashboard semantics pass the list sorted date-descending,
// the same order the dashboard displays.
func (s *summaryService) Summarize(transactions []models.Transaction) models.DashboardSummary {
	summary := models.DashboardSummary{
		Balance:           decimal.Zero,
		CategoryTotals:    []models.CategoryTotal{},
		TrendLabels:       make([]string, 0, len(transactions)),
		TrendExpense:      make([]decimal.Decimal, 0, len(transactions)),
		TrendIncome:       make([]decimal.Decimal, 0, len(transactions)),
		MySalaryTotal:     decimal.Zero,
		FamilySalaryTotal: decimal.Zero,
		OtherIncomeTotal:  decimal.Zero,
		ExpenseTotal:      decimal.Zero,
	}

	categoryIndex := make(map[string]int)
	incomeTotal := decimal.Zero

	for i := range transactions {
		t := &transactions[i]

		summary.Balance = summary.Balance.Add(t.SignedAmount())

		if t.IsExpense() {
			summary.ExpenseTotal = summary.ExpenseTotal.Add(t.Amount)

			idx, seen := categoryIndex[t.Category]
			if !seen {
				categoryIndex[t.Category] = len(summary.CategoryTotals)
				summary.CategoryTotals = append(summary.CategoryTotals, models.CategoryTotal{
					Category: t.Category,
					Amount:   t.Amount,
				})
			} else {
				summary.CategoryTotals[idx].Amount = summary.CategoryTotals[idx].Amount.Add(t.Amount)
			}
		}

		if t.IsIncome() {
			incomeTotal = incomeTotal.Add(t.Amount)
			switch t.Category {
			case models.CategoryMySalary:
				summary.MySalaryTotal = summary.MySalaryTotal.Add(t.Amount)
			case models.CategoryFamilySalary:
				summary.FamilySalaryTotal = summary.FamilySalaryTotal.Add(t.Amount)
			}
		}

		summary.TrendLabels = append(summary.TrendLabels, t.Date.Format(trendLabelLayout))
		if t.IsExpense() {
			summary.TrendExpense = append(summary.TrendExpense, t.Amount)
			summary.TrendIncome = append(summary.TrendIncome, decimal.Zero)
		} else {
			summary.TrendExpense = append(summary.TrendExpense, decimal.Zero)
			summary.TrendIncome = append(summary.TrendIncome, t.Amount)
		}
	}

	// Other income is computed by difference rather than by exclusion
	// filter, so income in any unreserved category lands here by arithmetic.
	summary.OtherIncomeTotal = incomeTotal.Sub(summary.MySalaryTotal).Sub(summary.FamilySalaryTotal)

	return summary
}
