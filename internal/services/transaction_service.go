package services

import (
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotOwner is returned when a transaction exists but belongs to a
	// different user. Kept distinct from the repository's not-found error
	// so handlers can map them to different responses.
	ErrNotOwner = errors.New("transaction does not belong to the user")
)

// TransactionService handles transaction mutations and queries
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	tagService      TagServiceInterface
	auditService    AuditServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	tagService TagServiceInterface,
	auditService AuditServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		tagService:      tagService,
		auditService:    auditService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create validates the request and stores a new transaction for the user.
// The row and its tag associations commit as one unit of work.
func (s *TransactionService) Create(userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	transaction := &models.Transaction{
		UserID:          userID,
		Type:            req.Type,
		Category:        req.Category,
		Amount:          amount,
		Note:            req.Note,
		PaymentMethod:   req.PaymentMethod,
		IsRecurring:     req.RecurringPeriod != "",
		RecurringPeriod: req.RecurringPeriod,
	}

	tagNames := s.tagService.ParseTagNames(req.Tags)

	if err := s.transactionRepo.CreateWithTags(transaction, tagNames); err != nil {
		return nil, err
	}

	s.auditService.Record(&userID, models.AuditActionTransactionCreated, "transaction", transaction.ID.String(), "", "",
		map[string]interface{}{"type": transaction.Type, "category": transaction.Category})
	s.metrics.RecordTransactionMutation("create", transaction.Type)

	return transaction, nil
}

// Get retrieves a single transaction after checking ownership
func (s *TransactionService) Get(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}

	if transaction.UserID != userID {
		return nil, ErrNotOwner
	}

	return transaction, nil
}

// List retrieves the user's full transaction history, newest first
func (s *TransactionService) List(userID uuid.UUID) ([]models.Transaction, error) {
	return s.transactionRepo.GetByUserID(userID)
}

// Update replaces a transaction's fields and its whole tag set. The owner
// check happens before any write; the stored date and owner are untouched.
func (s *TransactionService) Update(userID, transactionID uuid.UUID, req *dto.UpdateTransactionRequest) (*models.Transaction, error) {
	existing, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	existing.Type = req.Type
	existing.Category = req.Category
	existing.Amount = amount
	existing.Note = req.Note
	existing.PaymentMethod = req.PaymentMethod
	existing.IsRecurring = req.RecurringPeriod != ""
	existing.RecurringPeriod = req.RecurringPeriod

	if err := existing.Validate(); err != nil {
		return nil, err
	}

	tagNames := s.tagService.ParseTagNames(req.Tags)

	if err := s.transactionRepo.UpdateWithTags(existing, tagNames); err != nil {
		return nil, err
	}

	s.auditService.Record(&userID, models.AuditActionTransactionUpdated, "transaction", existing.ID.String(), "", "",
		map[string]interface{}{"type": existing.Type, "category": existing.Category})
	s.metrics.RecordTransactionMutation("update", existing.Type)

	return existing, nil
}

// Delete removes a transaction by id after checking ownership
func (s *TransactionService) Delete(userID, transactionID uuid.UUID) error {
	existing, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return ErrNotOwner
	}

	if err := s.transactionRepo.Delete(transactionID); err != nil {
		return err
	}

	s.auditService.Record(&userID, models.AuditActionTransactionDeleted, "transaction", transactionID.String(), "", "", nil)
	s.metrics.RecordTransactionMutation("delete", existing.Type)

	return nil
}

// AttachReceipt stores the receipt file reference on an owned transaction
func (s *TransactionService) AttachReceipt(userID, transactionID uuid.UUID, filename string) error {
	existing, err := s.transactionRepo.GetByID(transactionID)
	if err != nil {
		return err
	}

	if existing.UserID != userID {
		return ErrNotOwner
	}

	existing.Receipt = filename
	return s.transactionRepo.UpdateWithTags(existing, tagNamesOf(existing))
}

// parseAmount parses the request amount and normalizes it to its magnitude;
// the sign of a stored amount is always implied by the transaction type.
func parseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", models.ErrInvalidAmount, err)
	}
	return amount.Abs(), nil
}

func tagNamesOf(t *models.Transaction) []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}
	return names
}

// TransactionToResponse converts a transaction model to its public projection
func TransactionToResponse(t *models.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:              t.ID,
		Type:            t.Type,
		Category:        t.Category,
		Amount:          t.Amount.StringFixed(2),
		Note:            t.Note,
		Date:            t.Date,
		PaymentMethod:   t.PaymentMethod,
		IsRecurring:     t.IsRecurring,
		RecurringPeriod: t.RecurringPeriod,
		Receipt:         t.Receipt,
		Tags:            tagNamesOf(t),
		CreatedAt:       t.CreatedAt,
	}
}

// TransactionsToResponse converts a transaction slice preserving order
func TransactionsToResponse(transactions []models.Transaction) []dto.TransactionResponse {
	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, TransactionToResponse(&transactions[i]))
	}
	return responses
}
