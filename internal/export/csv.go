// Package export writes the financial report to files people open outside
// the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"workday/internal/core"
)

const (
	CSVFileName  = "financial_report.csv"
	XLSXFileName = "financial_report.xlsx"
)

// CSVHeader is the fixed first row of the CSV report.
var CSVHeader = []string{"clients", "days_worked", "total_income", "total_expense", "net"}

// CSVRow is the single data row that follows CSVHeader.
func CSVRow(r core.Report) []string {
	return []string{
		strconv.FormatInt(r.Clients, 10),
		strconv.FormatInt(r.DaysWorked, 10),
		core.FormatAmount(r.Income),
		core.FormatAmount(r.Expense),
		core.FormatAmount(r.Net()),
	}
}

// WriteCSV writes the header and one data row.
func WriteCSV(w io.Writer, r core.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.Write(CSVRow(r)); err != nil {
		return fmt.Errorf("write csv row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes financial_report.csv into dir, replacing any previous
// export, and returns the file path.
func WriteCSVFile(dir string, r core.Report) (string, error) {
	return writeFile(dir, CSVFileName, func(w io.Writer) error {
		return WriteCSV(w, r)
	})
}

func writeFile(dir, name string, write func(io.Writer) error) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return path, nil
}
