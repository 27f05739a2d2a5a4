package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/services"

	"github.com/labstack/echo/v4"
)

// ExportHandler serves transaction exports as downloadable files
type ExportHandler struct {
	transactionService services.TransactionServiceInterface
	exportService      services.ExportServiceInterface
	auditService       services.AuditServiceInterface
}

// NewExportHandler creates a new export handler
func NewExportHandler(
	transactionService services.TransactionServiceInterface,
	exportService services.ExportServiceInterface,
	auditService services.AuditServiceInterface,
) *ExportHandler {
	return &ExportHandler{
		transactionService: transactionService,
		exportService:      exportService,
		auditService:       auditService,
	}
}

// ExportCSV streams the full transaction table as a CSV attachment
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteCSV(&buf, transactions); err != nil {
		return SendError(c, apperrors.ExportFailed)
	}

	h.auditService.Record(&userID, models.AuditActionExportGenerated, "export", "",
		getClientIP(c), c.Request().UserAgent(),
		map[string]interface{}{"format": "csv", "rows": len(transactions)})

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", exportFilename("csv")))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ExportSpreadsheet streams the transaction table as an XLSX workbook.
// When no spreadsheet encoder is configured the endpoint refuses with a
// distinct error; CSV export remains available.
func (h *ExportHandler) ExportSpreadsheet(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, apperrors.AuthMissingToken)
	}

	if !h.exportService.SpreadsheetAvailable() {
		return SendError(c, apperrors.ExportSpreadsheetUnavailable)
	}

	transactions, err := h.transactionService.List(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	var buf bytes.Buffer
	if err := h.exportService.WriteSpreadsheet(&buf, transactions); err != nil {
		return SendError(c, apperrors.ExportFailed)
	}

	h.auditService.Record(&userID, models.AuditActionExportGenerated, "export", "",
		getClientIP(c), c.Request().UserAgent(),
		map[string]interface{}{"format": "xlsx", "rows": len(transactions)})

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", exportFilename("xlsx")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func exportFilename(ext string) string {
	return fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102_150405"), ext)
}
