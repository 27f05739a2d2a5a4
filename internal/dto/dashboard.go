package dto

import "fintrack/internal/models"

// DashboardResponse bundles the aggregated summary with the transaction
// list and the user's display preferences, everything the dashboard view
// needs in one request.
type DashboardResponse struct {
	Summary       models.DashboardSummary `json:"summary"`
	Transactions  []TransactionResponse   `json:"transactions"`
	Currency      string                  `json:"currency"`
	MonthlyBudget string                  `json:"monthly_budget"`
}
