package handlers

import (
	"errors"
	"net/http"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler serves period-bounded summary reports
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// Monthly returns the aggregated summary for a calendar month. Year and
// month default to the current period when omitted.
func (h *ReportHandler) Monthly(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	now := time.Now().UTC()
	year := getIntParam(c, "year", now.Year())
	month := getIntParam(c, "month", int(now.Month()))

	report, err := h.reportService.GenerateMonthlyReport(userID, year, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidReportPeriod) {
			return SendError(c, apperrors.ReportInvalidPeriod)
		}
		if errors.Is(err, services.ErrFutureReportPeriod) {
			return SendError(c, apperrors.ReportFuturePeriod)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: report,
	})
}
