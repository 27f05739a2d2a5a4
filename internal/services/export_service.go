package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fintrack/internal/dto"
	"fintrack/internal/models"
)

const exportDateLayout = "2006-01-02"

// ErrSpreadsheetUnavailable is returned when spreadsheet export is requested
// but no encoder was configured. CSV export is unaffected.
var ErrSpreadsheetUnavailable = errors.New("spreadsheet encoder is not available")

// exportHeader is the fixed header row shared by CSV and spreadsheet export
var exportHeader = []string{"Date", "Type", "Category", "Amount", "Payment Method", "Note", "Tags"}

// ExportService projects transactions into flat export rows and encodes
// them. The spreadsheet encoder is optional; a service built without one
// refuses spreadsheet export while keeping CSV as the fallback path.
type ExportService struct {
	spreadsheet SpreadsheetEncoder
	metrics     MetricsRecorderInterface
}

// NewExportService creates a new export service. spreadsheet may be nil.
func NewExportService(spreadsheet SpreadsheetEncoder, metrics MetricsRecorderInterface) ExportServiceInterface {
	return &ExportService{
		spreadsheet: spreadsheet,
		metrics:     metrics,
	}
}

// ExportRows projects each transaction into a flat record, one row per
// transaction in input order. Tag names are joined in the transaction's
// association order.
func (s *ExportService) ExportRows(transactions []models.Transaction) []dto.ExportRow {
	rows := make([]dto.ExportRow, 0, len(transactions))

	for i := range transactions {
		t := &transactions[i]

		tagNames := make([]string, 0, len(t.Tags))
		for _, tag := range t.Tags {
			tagNames = append(tagNames, tag.Name)
		}

		rows = append(rows, dto.ExportRow{
			Date:          t.Date.Format(exportDateLayout),
			Type:          t.Type,
			Category:      t.Category,
			Amount:        t.Amount.StringFixed(2),
			PaymentMethod: t.PaymentMethod,
			Note:          t.Note,
			Tags:          strings.Join(tagNames, ","),
		})
	}

	return rows
}

// WriteCSV writes the full export table, header first
func (s *ExportService) WriteCSV(w io.Writer, transactions []models.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(exportHeader); err != nil {
		s.metrics.RecordExport("csv", "failure")
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, row := range s.ExportRows(transactions) {
		if err := writer.Write(row.Values()); err != nil {
			s.metrics.RecordExport("csv", "failure")
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		s.metrics.RecordExport("csv", "failure")
		return fmt.Errorf("CSV writer error: %w", err)
	}

	s.metrics.RecordExport("csv", "success")
	return nil
}

// WriteSpreadsheet writes the export table through the configured encoder
func (s *ExportService) WriteSpreadsheet(w io.Writer, transactions []models.Transaction) error {
	if s.spreadsheet == nil {
		s.metrics.RecordExport("xlsx", "unavailable")
		return ErrSpreadsheetUnavailable
	}

	if err := s.spreadsheet.Encode(w, exportHeader, s.ExportRows(transactions)); err != nil {
		s.metrics.RecordExport("xlsx", "failure")
		return fmt.Errorf("failed to encode spreadsheet: %w", err)
	}

	s.metrics.RecordExport("xlsx", "success")
	return nil
}

// SpreadsheetAvailable reports whether spreadsheet export is configured
func (s *ExportService) SpreadsheetAvailable() bool {
	return s.spreadsheet != nil
}
