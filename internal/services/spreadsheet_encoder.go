package services

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"fintrack/internal/dto"
)

const spreadsheetSheetName = "Transactions"

// ExcelizeEncoder encodes export rows as an XLSX workbook with a single
// sheet. It satisfies SpreadsheetEncoder.
type ExcelizeEncoder struct{}

// NewExcelizeEncoder creates a new XLSX encoder
func NewExcelizeEncoder() *ExcelizeEncoder {
	return &ExcelizeEncoder{}
}

// Encode writes the header and rows to w as an XLSX workbook
func (e *ExcelizeEncoder) Encode(w io.Writer, header []string, rows []dto.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(spreadsheetSheetName)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := e.writeRow(f, 1, header); err != nil {
		return err
	}

	for i, row := range rows {
		if err := e.writeRow(f, i+2, row.Values()); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *ExcelizeEncoder) writeRow(f *excelize.File, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}

	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}

	if err := f.SetSheetRow(spreadsheetSheetName, cell, &cells); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}
