package repositories

import (
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositoryTestSuite defines the test suite for the transaction repository
type TransactionRepositoryTestSuite struct {
	suite.Suite
	db   *database.DB
	user *models.User
	repo TransactionRepositoryInterface
}

// SetupTest runs before each test
func (s *TransactionRepositoryTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "owner@example.com")
	s.repo = NewTransactionRepository(s.db.DB)
}

// TearDownTest runs after each test
func (s *TransactionRepositoryTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositoryTestSuite))
}

func (s *TransactionRepositoryTestSuite) newTransaction(category, amount string) *models.Transaction {
	return &models.Transaction{
		UserID:   s.user.ID,
		Type:     models.TransactionTypeExpense,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func (s *TransactionRepositoryTestSuite) TestCreateWithTags() {
	transaction := s.newTransaction("groceries", "42.50")

	s.Require().NoError(s.repo.CreateWithTags(transaction, []string{"food", "weekly"}))

	stored, err := s.repo.GetByID(transaction.ID)
	s.Require().NoError(err)
	s.Len(stored.Tags, 2)
	s.False(stored.Date.IsZero(), "date defaults to creation time")
}

func (s *TransactionRepositoryTestSuite) TestCreateWithTags_SharedTagsAcrossTransactions() {
	first := s.newTransaction("groceries", "10")
	second := s.newTransaction("restaurant", "25")

	s.Require().NoError(s.repo.CreateWithTags(first, []string{"food"}))
	s.Require().NoError(s.repo.CreateWithTags(second, []string{"food"}))

	var count int64
	s.Require().NoError(s.db.Table("tags").Count(&count).Error)
	s.Equal(int64(1), count, "tag records are shared, not duplicated")
}

func (s *TransactionRepositoryTestSuite) TestGetByID_NotFound() {
	_, err := s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestGetByUserIDAndDateRange_HalfOpen() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	inside := s.newTransaction("rent", "900")
	s.Require().NoError(s.repo.CreateWithTags(inside, nil))
	s.Require().NoError(s.db.Model(inside).Update("date", start).Error)

	boundary := s.newTransaction("groceries", "50")
	s.Require().NoError(s.repo.CreateWithTags(boundary, nil))
	s.Require().NoError(s.db.Model(boundary).Update("date", end).Error)

	transactions, err := s.repo.GetByUserIDAndDateRange(s.user.ID, start, end)
	s.Require().NoError(err)
	s.Require().Len(transactions, 1)
	s.Equal(inside.ID, transactions[0].ID)
}

func (s *TransactionRepositoryTestSuite) TestUpdateWithTags_ReplacesAssociationSet() {
	transaction := s.newTransaction("groceries", "42.50")
	s.Require().NoError(s.repo.CreateWithTags(transaction, []string{"food", "weekly"}))

	transaction.Category = "restaurant"
	s.Require().NoError(s.repo.UpdateWithTags(transaction, []string{"eating-out"}))

	stored, err := s.repo.GetByID(transaction.ID)
	s.Require().NoError(err)
	s.Equal("restaurant", stored.Category)
	s.Require().Len(stored.Tags, 1)
	s.Equal("eating-out", stored.Tags[0].Name)

	// Detached tags keep their rows
	var count int64
	s.Require().NoError(s.db.Table("tags").Count(&count).Error)
	s.Equal(int64(3), count)
}

func (s *TransactionRepositoryTestSuite) TestUpdateWithTags_MissingTransaction() {
	ghost := s.newTransaction("nothing", "1")
	ghost.ID = uuid.New()

	err := s.repo.UpdateWithTags(ghost, nil)
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositoryTestSuite) TestDelete_ClearsAssociationsKeepsTags() {
	transaction := s.newTransaction("groceries", "42.50")
	s.Require().NoError(s.repo.CreateWithTags(transaction, []string{"food"}))

	s.Require().NoError(s.repo.Delete(transaction.ID))

	_, err := s.repo.GetByID(transaction.ID)
	s.ErrorIs(err, ErrTransactionNotFound)

	var joinCount, tagCount int64
	s.Require().NoError(s.db.Table("transaction_tags").Count(&joinCount).Error)
	s.Require().NoError(s.db.Table("tags").Count(&tagCount).Error)
	s.Zero(joinCount)
	s.Equal(int64(1), tagCount)
}

func (s *TransactionRepositoryTestSuite) TestDelete_MissingTransaction() {
	s.ErrorIs(s.repo.Delete(uuid.New()), ErrTransactionNotFound)
}
