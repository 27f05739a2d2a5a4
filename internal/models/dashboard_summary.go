package models

import "github.com/shopspring/decimal"

// CategoryTotal is one slice of the expense breakdown. Totals are kept in a
// slice rather than a map so the insertion order of first occurrence is
// preserved for chart rendering.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// DashboardSummary holds the aggregated values the dashboard renders.
//
// The trend series are parallel slices with one point per transaction in
// input order. The YYYY-MM labels look monthly but the points are not
// bucketed per month; chart rendering depends on the row count matching the
// transaction count, so the per-transaction granularity is load-bearing.
type DashboardSummary struct {
	Balance           decimal.Decimal   `json:"balance"`
	CategoryTotals    []CategoryTotal   `json:"category_totals"`
	TrendLabels       []string          `json:"trend_labels"`
	TrendExpense      []decimal.Decimal `json:"trend_expense"`
	TrendIncome       []decimal.Decimal `json:"trend_income"`
	MySalaryTotal     decimal.Decimal   `json:"my_salary_total"`
	FamilySalaryTotal decimal.Decimal   `json:"family_salary_total"`
	OtherIncomeTotal  decimal.Decimal   `json:"other_income_total"`
	ExpenseTotal      decimal.Decimal   `json:"expense_total"`
}

// IncomeTotal reconstructs the total income from the subtotals. The identity
// my + family + other == total income holds exactly because other income is
// computed by difference.
func (s *DashboardSummary) IncomeTotal() decimal.Decimal {
	return s.MySalaryTotal.Add(s.FamilySalaryTotal).Add(s.OtherIncomeTotal)
}
