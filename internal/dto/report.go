package dto

import "fintrack/internal/models"

// MonthlyReport is a period-bounded summary over one calendar month of a
// user's transactions.
type MonthlyReport struct {
	Year             int                     `json:"year"`
	Month            int                     `json:"month"`
	TransactionCount int                     `json:"transaction_count"`
	Summary          models.DashboardSummary `json:"summary"`
}
