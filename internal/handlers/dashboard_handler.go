package handlers

import (
	"net/http"
	"time"

	"fintrack/internal/dto"
	apperrors "fintrack/internal/errors"
	"fintrack/internal/repositories"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the aggregated dashboard view
type DashboardHandler struct {
	transactionService services.TransactionServiceInterface
	summaryService     services.SummaryServiceInterface
	userRepo           repositories.UserRepositoryInterface
	metrics            services.MetricsRecorderInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	transactionService services.TransactionServiceInterface,
	summaryService services.SummaryServiceInterface,
	userRepo repositories.UserRepositoryInterface,
	metrics services.MetricsRecorderInterface,
) *DashboardHandler {
	return &DashboardHandler{
		transactionService: transactionService,
		summaryService:     summaryService,
		userRepo:           userRepo,
		metrics:            metrics,
	}
}

// Get returns the dashboard: balance, category totals, trend series and
// the full transaction list for the authenticated user
func (h *DashboardHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	start := time.Now()

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	summary := h.summaryService.Summarize(transactions)
	h.metrics.RecordDashboardRequest(time.Since(start))

	return c.JSON(http.StatusOK, dto.DashboardResponse{
		Summary:       summary,
		Transactions:  services.TransactionsToResponse(transactions),
		Currency:      user.Currency,
		MonthlyBudget: user.MonthlyBudget.StringFixed(2),
	})
}
