package repositories

import (
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithTags creates a transaction together with its tag associations as
// a single unit of work. Tags are resolved lazily inside the same database
// transaction, so either the whole mutation commits or none of it does.
func (r *transactionRepository) CreateWithTags(transaction *models.Transaction, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		if len(tagNames) == 0 {
			return nil
		}

		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		if err := tx.Model(transaction).Association("Tags").Append(tags); err != nil {
			return fmt.Errorf("failed to attach tags: %w", err)
		}

		transaction.Tags = tags
		return nil
	})
}

// GetByID retrieves a transaction with its tags
func (r *transactionRepository) GetByID(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Preload("Tags").First(&transaction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByUserID retrieves all of a user's transactions, newest first. The
// dashboard recomputes its summary from this full set on every request.
func (r *transactionRepository) GetByUserID(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Tags").
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetByUserIDAndDateRange retrieves a user's transactions within a date range
func (r *transactionRepository) GetByUserIDAndDateRange(userID uuid.UUID, startDate, endDate time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Preload("Tags").
		Where("user_id = ? AND date >= ? AND date < ?", userID, startDate, endDate).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions by date range: %w", err)
	}
	return transactions, nil
}

// UpdateWithTags replaces the transaction's fields and its whole tag set as
// a single unit of work. Partial tag edits are not supported; the
// association set is rebuilt from tagNames. Orphaned tag rows are kept.
func (r *transactionRepository) UpdateWithTags(transaction *models.Transaction, tagNames []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Transaction{}).
			Where("id = ?", transaction.ID).
			Updates(map[string]interface{}{
				"type":             transaction.Type,
				"category":         transaction.Category,
				"amount":           transaction.Amount,
				"note":             transaction.Note,
				"payment_method":   transaction.PaymentMethod,
				"is_recurring":     transaction.IsRecurring,
				"recurring_period": transaction.RecurringPeriod,
				"receipt":          transaction.Receipt,
				"updated_at":       time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}

		tags, err := resolveTags(tx, tagNames)
		if err != nil {
			return err
		}

		if err := tx.Model(transaction).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to replace tags: %w", err)
		}

		transaction.Tags = tags
		return nil
	})
}

// Delete removes a transaction and clears its tag associations. Tag rows
// themselves are never deleted.
func (r *transactionRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		transaction := &models.Transaction{ID: id}

		if err := tx.Model(transaction).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tag associations: %w", err)
		}

		result := tx.Delete(transaction)
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}
		return nil
	})
}

// resolveTags get-or-creates each tag name inside the caller's database
// transaction, preserving input order.
func resolveTags(tx *gorm.DB, tagNames []string) ([]models.Tag, error) {
	tagRepo := NewTagRepository(tx)

	tags := make([]models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag, err := tagRepo.GetOrCreate(name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve tag %q: %w", name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}
