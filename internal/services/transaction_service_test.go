package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionServiceTestSuite defines the test suite for TransactionService
type TransactionServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	user    *models.User
	other   *models.User
	metrics *stubMetrics
	service TransactionServiceInterface
}

// SetupTest runs before each test
func (s *TransactionServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.other = database.CreateTestUser(s.T(), s.db, "other@example.com")
	s.metrics = newStubMetrics()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	tagService := NewTagService(repositories.NewTagRepository(s.db.DB))
	auditService := NewAuditService(repositories.NewAuditLogRepository(s.db.DB), logger)

	s.service = NewTransactionService(transactionRepo, tagService, auditService, s.metrics, logger)
}

// TearDownTest runs after each test
func (s *TransactionServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionServiceSuite runs the test suite
func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) createExpense() *models.Transaction {
	transaction, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "groceries",
		Amount:   "42.50",
		Note:     "weekly shop",
		Tags:     "food, weekly",
	})
	s.Require().NoError(err)
	return transaction
}

func (s *TransactionServiceTestSuite) TestCreate_Success() {
	transaction := s.createExpense()

	s.NotEmpty(transaction.ID)
	s.Equal(s.user.ID, transaction.UserID)
	s.True(transaction.Amount.Equal(decimal.RequireFromString("42.50")))
	s.False(transaction.Date.IsZero())
	s.False(transaction.IsRecurring)

	stored, err := s.service.Get(s.user.ID, transaction.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Tags, 2)
	s.ElementsMatch([]string{"food", "weekly"}, []string{stored.Tags[0].Name, stored.Tags[1].Name})
}

func (s *TransactionServiceTestSuite) TestCreate_NegativeAmountNormalized() {
	transaction, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "refund-error",
		Amount:   "-100",
	})

	s.Require().NoError(err)
	s.True(transaction.Amount.Equal(decimal.NewFromInt(100)))
}

func (s *TransactionServiceTestSuite) TestCreate_MalformedAmount() {
	_, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "groceries",
		Amount:   "not-a-number",
	})

	s.ErrorIs(err, models.ErrInvalidAmount)
}

func (s *TransactionServiceTestSuite) TestCreate_RecurringFlagDerivedFromPeriod() {
	transaction, err := s.service.Create(s.user.ID, &dto.CreateTransactionRequest{
		Type:            models.TransactionTypeExpense,
		Category:        "rent",
		Amount:          "900",
		RecurringPeriod: models.RecurringPeriodMonthly,
	})

	s.Require().NoError(err)
	s.True(transaction.IsRecurring)
	s.Equal(models.RecurringPeriodMonthly, transaction.RecurringPeriod)
}

func (s *TransactionServiceTestSuite) TestGet_NotFound() {
	_, err := s.service.Get(s.user.ID, uuid.New())

	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *TransactionServiceTestSuite) TestGet_OtherUsersTransaction() {
	transaction := s.createExpense()

	_, err := s.service.Get(s.other.ID, transaction.ID)

	s.ErrorIs(err, ErrNotOwner)
}

func (s *TransactionServiceTestSuite) TestList_NewestFirst() {
	first := database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeExpense, "groceries", "10")
	second := database.CreateTestTransaction(s.T(), s.db, s.user, models.TransactionTypeIncome, "my_salary", "3000")

	// Push the second transaction later in time so ordering is deterministic
	s.Require().NoError(s.db.Model(second).Update("date", first.Date.Add(time.Hour)).Error)

	transactions, err := s.service.List(s.user.ID)
	s.Require().NoError(err)
	s.Require().Len(transactions, 2)
	s.Equal(second.ID, transactions[0].ID)
	s.Equal(first.ID, transactions[1].ID)
}

func (s *TransactionServiceTestSuite) TestList_ScopedToUser() {
	s.createExpense()
	database.CreateTestTransaction(s.T(), s.db, s.other, models.TransactionTypeExpense, "rent", "500")

	transactions, err := s.service.List(s.user.ID)
	s.Require().NoError(err)
	s.Len(transactions, 1)
}

func (s *TransactionServiceTestSuite) TestUpdate_ReplacesFieldsAndTags() {
	transaction := s.createExpense()
	originalDate := transaction.Date

	updated, err := s.service.Update(s.user.ID, transaction.ID, &dto.UpdateTransactionRequest{
		Type:     models.TransactionTypeIncome,
		Category: "freelance",
		Amount:   "250",
		Note:     "invoice 12",
		Tags:     "work",
	})
	s.Require().NoError(err)

	s.Equal(models.TransactionTypeIncome, updated.Type)
	s.Equal("freelance", updated.Category)
	s.True(updated.Amount.Equal(decimal.NewFromInt(250)))

	stored, err := s.service.Get(s.user.ID, transaction.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Tags, 1)
	s.Equal("work", stored.Tags[0].Name)
	s.WithinDuration(originalDate, stored.Date, time.Second, "date must not change on update")
}

func (s *TransactionServiceTestSuite) TestUpdate_OldTagsSurviveAsRecords() {
	transaction := s.createExpense()

	_, err := s.service.Update(s.user.ID, transaction.ID, &dto.UpdateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "groceries",
		Amount:   "42.50",
		Tags:     "market",
	})
	s.Require().NoError(err)

	// Detached tags keep their rows; only the association is replaced
	var count int64
	s.Require().NoError(s.db.Table("tags").Count(&count).Error)
	s.Equal(int64(3), count)
}

func (s *TransactionServiceTestSuite) TestUpdate_OtherUsersTransaction() {
	transaction := s.createExpense()

	_, err := s.service.Update(s.other.ID, transaction.ID, &dto.UpdateTransactionRequest{
		Type:     models.TransactionTypeExpense,
		Category: "hijack",
		Amount:   "1",
	})

	s.ErrorIs(err, ErrNotOwner)

	stored, err := s.service.Get(s.user.ID, transaction.ID)
	s.Require().NoError(err)
	s.Equal("groceries", stored.Category)
}

func (s *TransactionServiceTestSuite) TestDelete_Success() {
	transaction := s.createExpense()

	s.Require().NoError(s.service.Delete(s.user.ID, transaction.ID))

	_, err := s.service.Get(s.user.ID, transaction.ID)
	s.ErrorIs(err, repositories.ErrTransactionNotFound)
}

func (s *TransactionServiceTestSuite) TestDelete_KeepsTagRecords() {
	transaction := s.createExpense()

	s.Require().NoError(s.service.Delete(s.user.ID, transaction.ID))

	var count int64
	s.Require().NoError(s.db.Table("tags").Count(&count).Error)
	s.Equal(int64(2), count)
}

func (s *TransactionServiceTestSuite) TestDelete_OtherUsersTransaction() {
	transaction := s.createExpense()

	err := s.service.Delete(s.other.ID, transaction.ID)
	s.ErrorIs(err, ErrNotOwner)

	_, err = s.service.Get(s.user.ID, transaction.ID)
	s.NoError(err)
}

func (s *TransactionServiceTestSuite) TestAttachReceipt() {
	transaction := s.createExpense()

	s.Require().NoError(s.service.AttachReceipt(s.user.ID, transaction.ID, "1700000000_receipt.pdf"))

	stored, err := s.service.Get(s.user.ID, transaction.ID)
	s.Require().NoError(err)
	s.Equal("1700000000_receipt.pdf", stored.Receipt)
	s.Len(stored.Tags, 2, "attaching a receipt must not disturb tags")
}
