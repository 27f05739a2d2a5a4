package dto

// UpdateProfileRequest represents the request body for profile updates.
// All validation happens before any field is written; a rejected update
// leaves the profile untouched.
type UpdateProfileRequest struct {
	Username      string `json:"username" validate:"required,min=1,max=150"`
	Email         string `json:"email" validate:"required,email"`
	Currency      string `json:"currency" validate:"required,max=10"`
	Language      string `json:"language" validate:"required,max=10"`
	MonthlyBudget string `json:"monthly_budget" validate:"required"`
}
