package models

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultCurrency = "INR"
	DefaultLanguage = "en"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

	ErrNegativeBudget = errors.New("monthly budget cannot be negative")
)

// User owns transactions and carries dashboard preferences
// (currency, language, monthly budget).
type User struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Username      string          `gorm:"type:varchar(150);not null" json:"username"`
	Email         string          `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`
	PasswordHash  string          `gorm:"type:varchar(256);not null" json:"-"`
	ProfilePic    string          `gorm:"type:varchar(256)" json:"profile_pic,omitempty"`
	Currency      string          `gorm:"type:varchar(10);not null;default:'INR'" json:"currency"`
	Language      string          `gorm:"type:varchar(10);not null;default:'en'" json:"language"`
	MonthlyBudget decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"monthly_budget"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}

	if u.Currency == "" {
		u.Currency = DefaultCurrency
	}
	if u.Language == "" {
		u.Language = DefaultLanguage
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	return u.Validate()
}

func (u *User) BeforeUpdate(tx *gorm.DB) error {
	// Map-based updates carry an empty User struct; only model-based
	// updates get full validation.
	if tx.Statement.Dest != nil {
		if _, ok := tx.Statement.Dest.(map[string]interface{}); ok {
			return nil
		}
	}

	return u.Validate()
}

func (u *User) Validate() error {
	if u.Username == "" {
		return errors.New("username is required")
	}

	if u.Email == "" {
		return errors.New("email is required")
	}

	if !emailRegex.MatchString(u.Email) {
		return errors.New("invalid email format")
	}

	if u.MonthlyBudget.IsNegative() {
		return ErrNegativeBudget
	}

	return nil
}

func (u *User) TableName() string {
	return "users"
}
