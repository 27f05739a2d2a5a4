package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTransactionRequest represents the request body for adding a
// transaction. Amount is accepted as a string and parsed into a decimal;
// negative input is normalized to its magnitude since direction comes from
// Type. Tags is the raw comma-separated tag string.
type CreateTransactionRequest struct {
	Type            string `json:"type" validate:"required,oneof=income expense"`
	Category        string `json:"category" validate:"required,max=50"`
	Amount          string `json:"amount" validate:"required"`
	Note            string `json:"note" validate:"max=1024"`
	PaymentMethod   string `json:"payment_method" validate:"max=50"`
	RecurringPeriod string `json:"recurring_period" validate:"omitempty,oneof=daily weekly monthly"`
	Tags            string `json:"tags"`
}

// UpdateTransactionRequest represents the request body for editing a
// transaction. Edits are full field replacements; the tag set is replaced
// wholesale from Tags. Date and owner are not editable.
type UpdateTransactionRequest struct {
	Type            string `json:"type" validate:"required,oneof=income expense"`
	Category        string `json:"category" validate:"required,max=50"`
	Amount          string `json:"amount" validate:"required"`
	Note            string `json:"note" validate:"max=1024"`
	PaymentMethod   string `json:"payment_method" validate:"max=50"`
	RecurringPeriod string `json:"recurring_period" validate:"omitempty,oneof=daily weekly monthly"`
	Tags            string `json:"tags"`
}

// TransactionResponse is the public projection of a transaction
type TransactionResponse struct {
	ID              uuid.UUID `json:"id"`
	Type            string    `json:"type"`
	Category        string    `json:"category"`
	Amount          string    `json:"amount"`
	Note            string    `json:"note,omitempty"`
	Date            time.Time `json:"date"`
	PaymentMethod   string    `json:"payment_method,omitempty"`
	IsRecurring     bool      `json:"is_recurring"`
	RecurringPeriod string    `json:"recurring_period,omitempty"`
	Receipt         string    `json:"receipt,omitempty"`
	Tags            []string  `json:"tags"`
	CreatedAt       time.Time `json:"created_at"`
}

// ListTransactionsResponse represents the response for listing transactions
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
}
