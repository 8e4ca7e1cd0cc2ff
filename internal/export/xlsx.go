package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"workday/internal/core"
)

const (
	SummarySheet = "Summary"
	LedgerSheet  = "Ledger"
)

var ledgerHeader = []string{"date", "type", "amount", "description"}

// WriteXLSX builds a workbook with a summary sheet and one ledger row per
// entry, and writes it to w.
func WriteXLSX(w io.Writer, r core.Report, entries []core.Entry) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename summary sheet: %w", err)
	}
	summary := [][]any{
		{"clients", r.Clients},
		{"days_worked", r.DaysWorked},
		{"attendance_rows", r.AttendanceRows},
		{"total_income", r.Income.InexactFloat64()},
		{"total_expense", r.Expense.InexactFloat64()},
		{"net", r.Net().InexactFloat64()},
		{"wages_earned", r.WagesEarned.InexactFloat64()},
		{"payments", r.PaymentsTotal.InexactFloat64()},
		{"advances", r.AdvancesTotal.InexactFloat64()},
		{"outstanding", r.Outstanding().InexactFloat64()},
	}
	for i, row := range summary {
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(LedgerSheet); err != nil {
		return fmt.Errorf("create ledger sheet: %w", err)
	}
	header := make([]any, len(ledgerHeader))
	for i, h := range ledgerHeader {
		header[i] = h
	}
	if err := setRow(f, LedgerSheet, 1, header); err != nil {
		return err
	}
	for i, e := range entries {
		row := []any{e.Date.String(), string(e.Type), e.Amount.InexactFloat64(), e.Description}
		if err := setRow(f, LedgerSheet, i+2, row); err != nil {
			return err
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile writes financial_report.xlsx into dir and returns its path.
func WriteXLSXFile(dir string, r core.Report, entries []core.Entry) (string, error) {
	return writeFile(dir, XLSXFileName, func(w io.Writer) error {
		return WriteXLSX(w, r, entries)
	})
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
