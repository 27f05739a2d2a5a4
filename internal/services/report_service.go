package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/dto"
	"fintrack/internal/repositories"
)

var (
	ErrInvalidReportPeriod = errors.New("invalid report period")
	ErrFutureReportPeriod  = errors.New("report period is in the future")
)

// ReportService builds monthly summaries for a user over a calendar month
type ReportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	summaryService  SummaryServiceInterface
	logger          *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	summaryService SummaryServiceInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &ReportService{
		transactionRepo: transactionRepo,
		summaryService:  summaryService,
		logger:          logger,
	}
}

// GenerateMonthlyReport aggregates the user's transactions for the given
// calendar month. The period must not lie in the future.
func (s *ReportService) GenerateMonthlyReport(userID uuid.UUID, year, month int) (*dto.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidReportPeriod
	}
	if year < 1970 || year > 9999 {
		return nil, ErrInvalidReportPeriod
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	if start.After(time.Now().UTC()) {
		return nil, ErrFutureReportPeriod
	}
	end := start.AddDate(0, 1, 0)

	transactions, err := s.transactionRepo.GetByUserIDAndDateRange(userID, start, end)
	if err != nil {
		s.logger.Error("Failed to load transactions for report",
			slog.String("user_id", userID.String()),
			slog.Int("year", year),
			slog.Int("month", month),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := s.summaryService.Summarize(transactions)

	return &dto.MonthlyReport{
		Year:             year,
		Month:            month,
		TransactionCount: len(transactions),
		Summary:          summary,
	}, nil
}
