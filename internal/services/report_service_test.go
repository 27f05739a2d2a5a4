package services

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// ReportServiceTestSuite defines the test suite for ReportService
type ReportServiceTestSuite struct {
	suite.Suite
	db      *database.DB
	user    *models.User
	service ReportServiceInterface
}

// SetupTest runs before each test
func (s *ReportServiceTestSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.user = database.CreateTestUser(s.T(), s.db, "reporter@example.com")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = NewReportService(
		repositories.NewTransactionRepository(s.db.DB),
		NewSummaryService(),
		logger,
	)
}

// TearDownTest runs after each test
func (s *ReportServiceTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestReportServiceSuite runs the test suite
func TestReportServiceSuite(t *testing.T) {
	suite.Run(t, new(ReportServiceTestSuite))
}

func (s *ReportServiceTestSuite) createDated(txType, category, amount string, date time.Time) {
	tx := database.CreateTestTransaction(s.T(), s.db, s.user, txType, category, amount)
	s.Require().NoError(s.db.Model(tx).Update("date", date).Error)
}

func (s *ReportServiceTestSuite) TestGenerateMonthlyReport_BoundsAreHalfOpen() {
	s.createDated(models.TransactionTypeExpense, "rent", "900", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	s.createDated(models.TransactionTypeExpense, "groceries", "50", time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC))
	// Outside the period on both sides
	s.createDated(models.TransactionTypeExpense, "rent", "900", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC))
	s.createDated(models.TransactionTypeExpense, "rent", "900", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	report, err := s.service.GenerateMonthlyReport(s.user.ID, 2024, 3)

	s.Require().NoError(err)
	s.Equal(2024, report.Year)
	s.Equal(3, report.Month)
	s.Equal(2, report.TransactionCount)
	s.True(report.Summary.ExpenseTotal.Equal(decimal.NewFromInt(950)))
}

func (s *ReportServiceTestSuite) TestGenerateMonthlyReport_EmptyMonth() {
	report, err := s.service.GenerateMonthlyReport(s.user.ID, 2024, 1)

	s.Require().NoError(err)
	s.Zero(report.TransactionCount)
	s.True(report.Summary.Balance.Equal(decimal.Zero))
	s.Empty(report.Summary.TrendLabels)
}

func (s *ReportServiceTestSuite) TestGenerateMonthlyReport_InvalidMonth() {
	_, err := s.service.GenerateMonthlyReport(s.user.ID, 2024, 0)
	s.ErrorIs(err, ErrInvalidReportPeriod)

	_, err = s.service.GenerateMonthlyReport(s.user.ID, 2024, 13)
	s.ErrorIs(err, ErrInvalidReportPeriod)
}

func (s *ReportServiceTestSuite) TestGenerateMonthlyReport_FuturePeriod() {
	future := time.Now().UTC().AddDate(1, 0, 0)

	_, err := s.service.GenerateMonthlyReport(s.user.ID, future.Year(), int(future.Month()))

	s.ErrorIs(err, ErrFutureReportPeriod)
}
