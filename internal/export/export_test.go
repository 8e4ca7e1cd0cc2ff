package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"workday/internal/core"
)

func sampleReport() core.Report {
	return core.Report{
		Clients:        3,
		DaysWorked:     12,
		AttendanceRows: 12,
		Income:         decimal.NewFromInt(200),
		Expense:        decimal.NewFromInt(80),
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(records))
	}
	want := []string{"3", "12", "200.00", "80.00", "120.00"}
	for i, v := range want {
		if records[1][i] != v {
			t.Fatalf("column %s = %q, want %q", CSVHeader[i], records[1][i], v)
		}
	}
}

func TestWriteCSVFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	if _, err := WriteCSVFile(dir, core.Report{}); err != nil {
		t.Fatalf("first export: %v", err)
	}
	path, err := WriteCSVFile(dir, sampleReport())
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if path != filepath.Join(dir, CSVFileName) {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := "clients,days_worked,total_income,total_expense,net\n3,12,200.00,80.00,120.00\n"
	if string(data) != want {
		t.Fatalf("unexpected file:\n%s", data)
	}
}

func TestWriteXLSX(t *testing.T) {
	entries := []core.Entry{
		{ID: 1, Type: core.EntryIncome, Amount: decimal.NewFromInt(200), Description: "contract", Date: core.NewDate(2024, 5, 1)},
		{ID: 2, Type: core.EntryExpense, Amount: decimal.NewFromInt(80), Description: "fuel", Date: core.NewDate(2024, 5, 2)},
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleReport(), entries); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	net, err := f.GetCellValue(SummarySheet, "B6")
	if err != nil || net != "120" {
		t.Fatalf("net cell = %q err=%v", net, err)
	}
	rows, err := f.GetRows(LedgerSheet)
	if err != nil {
		t.Fatalf("ledger rows: %v", err)
	}
	if len(rows) != 3 || rows[2][3] != "fuel" || rows[1][0] != "2024-05-01" {
		t.Fatalf("unexpected ledger rows %v", rows)
	}
}
