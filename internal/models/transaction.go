package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	RecurringPeriodDaily   = "daily"
	RecurringPeriodWeekly  = "weekly"
	RecurringPeriodMonthly = "monthly"

	// Reserved income categories with dedicated dashboard subtotals.
	CategoryMySalary     = "my_salary"
	CategoryFamilySalary = "family_salary"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrInvalidRecurringPeriod = errors.New("invalid recurring period")
)

// Transaction is a single income or expense entry. Amount is stored as a
// non-negative magnitude; direction is derived from Type only, never from
// the sign of Amount.
type Transaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Type            string          `gorm:"type:varchar(20);not null" json:"type"`
	Category        string          `gorm:"type:varchar(50);not null" json:"category"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Note            string          `gorm:"type:text" json:"note,omitempty"`
	Date            time.Time       `gorm:"not null;index" json:"date"`
	PaymentMethod   string          `gorm:"type:varchar(50)" json:"payment_method,omitempty"`
	IsRecurring     bool            `gorm:"not null;default:false" json:"is_recurring"`
	RecurringPeriod string          `gorm:"type:varchar(20)" json:"recurring_period,omitempty"`
	Receipt         string          `gorm:"type:varchar(256)" json:"receipt,omitempty"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	// Associations
	User User  `gorm:"foreignKey:UserID" json:"-"`
	Tags []Tag `gorm:"many2many:transaction_tags" json:"tags"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	now := time.Now()

	// Date defaults to creation time and is not user-editable afterwards.
	if t.Date.IsZero() {
		t.Date = now
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}

	return t.Validate()
}

// BeforeUpdate hook for Transaction
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty Transaction struct; only
	// model-based updates get full validation.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	t.UpdatedAt = time.Now()
	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}

	if t.Category == "" {
		return errors.New("transaction category is required")
	}

	if len(t.Category) > 50 {
		return errors.New("category too long")
	}

	if t.IsRecurring && !IsValidRecurringPeriod(t.RecurringPeriod) {
		return ErrInvalidRecurringPeriod
	}

	if !t.IsRecurring && t.RecurringPeriod != "" {
		return errors.New("recurring period set on non-recurring transaction")
	}

	return nil
}

// IsIncome returns true if the transaction adds to the balance
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// IsExpense returns true if the transaction subtracts from the balance
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// SignedAmount returns the amount with its direction applied. Computed on
// demand only; the stored amount stays non-negative.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// Helper functions

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeIncome, TransactionTypeExpense:
		return true
	default:
		return false
	}
}

// IsValidRecurringPeriod checks if the recurring period is valid
func IsValidRecurringPeriod(period string) bool {
	switch period {
	case RecurringPeriodDaily, RecurringPeriodWeekly, RecurringPeriodMonthly:
		return true
	default:
		return false
	}
}
