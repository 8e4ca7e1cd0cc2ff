package screens

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"workday/internal/core"
	"workday/internal/export"
	applog "workday/internal/log"
)

type ReportView struct {
	Report     core.Report
	Mismatches []core.CounterMismatch
}

// Drifted reports whether any client's counter disagrees with its attendance
// rows. Per-client drift can cancel out in the totals, so both are checked.
func (v ReportView) Drifted() bool {
	return len(v.Mismatches) > 0 || !v.Report.Consistent()
}

type Report struct {
	store     Store
	exportDir string
	logger    *applog.Logger
}

// Load recomputes the report from the database.
func (s *Report) Load(ctx context.Context) (ReportView, error) {
	rep, err := s.store.Report(ctx)
	if err != nil {
		return ReportView{}, fmt.Errorf("load report: %w", err)
	}
	mismatches, err := s.store.CounterMismatches(ctx)
	if err != nil {
		return ReportView{}, fmt.Errorf("load counter mismatches: %w", err)
	}
	if len(mismatches) > 0 {
		s.logger.WarnContext(ctx, "Attendance counters out of step",
			"clients", len(mismatches),
			"drift", rep.CounterDrift(),
			applog.FieldOperation, applog.OpReport)
	}
	return ReportView{Report: rep, Mismatches: mismatches}, nil
}

// Export writes financial_report.csv into dir, and financial_report.xlsx
// next to it when withXLSX is set. An empty dir uses the configured export
// directory. The returned paths are in write order.
func (s *Report) Export(ctx context.Context, dir string, withXLSX bool) (Result, []string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = s.exportDir
	}
	rep, err := s.store.Report(ctx)
	if err != nil {
		return Result{}, nil, fmt.Errorf("load report: %w", err)
	}

	csvPath, err := export.WriteCSVFile(dir, rep)
	if err != nil {
		return Result{}, nil, fmt.Errorf("export csv: %w", err)
	}
	paths := []string{csvPath}

	if withXLSX {
		entries, err := s.store.ListEntries(ctx)
		if err != nil {
			return Result{}, paths, fmt.Errorf("load ledger: %w", err)
		}
		xlsxPath, err := export.WriteXLSXFile(dir, rep, entries)
		if err != nil {
			return Result{}, paths, fmt.Errorf("export xlsx: %w", err)
		}
		paths = append(paths, xlsxPath)
	}

	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	s.logger.InfoContext(ctx, "Report exported",
		applog.FieldFile, strings.Join(paths, ","),
		applog.FieldOperation, applog.OpExport)
	return Success("Exported " + strings.Join(names, ", ")), paths, nil
}
