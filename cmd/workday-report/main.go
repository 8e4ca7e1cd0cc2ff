// Command workday-report prints the financial report for a workday database
// and optionally exports it to CSV and XLSX.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"workday/internal/cli"
	"workday/internal/config"
	"workday/internal/core"
	"workday/internal/export"
	applog "workday/internal/log"
	"workday/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()

	dbPath := flag.String("db", cfg.SQLiteDBPath, "path to the workday SQLite database")
	csvPath := flag.String("csv", "", "write the CSV report to this file")
	xlsxPath := flag.String("xlsx", "", "write the XLSX workbook to this file")
	flag.Parse()

	logger := cli.SetupLogger(cfg.LogLevel).WithComponent(applog.ComponentCLI)

	if err := run(context.Background(), os.Stdout, *dbPath, *csvPath, *xlsxPath, cfg.SQLiteBusyTimeout, logger); err != nil {
		logger.Error("Report failed", applog.FieldError, err, applog.FieldDBPath, *dbPath)
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, dbPath, csvPath, xlsxPath string, busy time.Duration, logger *applog.Logger) error {
	repo, err := storage.NewSQLiteRepository(dbPath, storage.Options{BusyTimeout: busy, Logger: logger})
	if err != nil {
		return err
	}
	defer repo.Close()

	rep, err := repo.Report(ctx)
	if err != nil {
		return err
	}
	mismatches, err := repo.CounterMismatches(ctx)
	if err != nil {
		return err
	}
	if err := printReport(out, rep, mismatches); err != nil {
		return err
	}

	if csvPath != "" {
		if err := writeTo(csvPath, func(w io.Writer) error { return export.WriteCSV(w, rep) }); err != nil {
			return fmt.Errorf("export csv: %w", err)
		}
		logger.Info("Report exported", applog.FieldFile, csvPath, applog.FieldOperation, applog.OpExport)
	}
	if xlsxPath != "" {
		entries, err := repo.ListEntries(ctx)
		if err != nil {
			return err
		}
		if err := writeTo(xlsxPath, func(w io.Writer) error { return export.WriteXLSX(w, rep, entries) }); err != nil {
			return fmt.Errorf("export xlsx: %w", err)
		}
		logger.Info("Report exported", applog.FieldFile, xlsxPath, applog.FieldOperation, applog.OpExport)
	}
	return nil
}

func printReport(out io.Writer, rep core.Report, mismatches []core.CounterMismatch) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		value string
	}{
		{"Clients", fmt.Sprint(rep.Clients)},
		{"Days worked", fmt.Sprint(rep.DaysWorked)},
		{"Total income", core.FormatAmount(rep.Income)},
		{"Total expense", core.FormatAmount(rep.Expense)},
		{"Net", core.FormatAmount(rep.Net())},
		{"Wages earned", core.FormatAmount(rep.WagesEarned)},
		{"Payments", core.FormatAmount(rep.PaymentsTotal)},
		{"Advances", core.FormatAmount(rep.AdvancesTotal)},
		{"Outstanding", core.FormatAmount(rep.Outstanding())},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r.label, r.value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(mismatches) > 0 || !rep.Consistent() {
		fmt.Fprintf(out, "\nwarning: day counters out of step (%d attendance records vs %d counted days, %d clients)\n",
			rep.AttendanceRows, rep.DaysWorked, len(mismatches))
		for _, m := range mismatches {
			fmt.Fprintf(out, "  %s (#%d): counter %d, records %d\n", m.Name, m.ClientID, m.DaysWorked, m.AttendanceRows)
		}
	}
	return nil
}

func writeTo(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
