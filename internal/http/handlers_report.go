package http

import (
	"net/http"

	"workday/internal/export"
	applog "workday/internal/log"
	"workday/internal/screens"
)

func (s *Server) handleDownloadCSV(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Report.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.CSVFileName+`"`)
	if err := export.WriteCSV(w, view.Report); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "CSV download failed", applog.FieldError, err)
	}
}

func (s *Server) handleDownloadXLSX(w http.ResponseWriter, r *http.Request) {
	view, err := s.screens.Report.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	ledger, err := s.screens.Expenses.Load(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.XLSXFileName+`"`)
	if err := export.WriteXLSX(w, view.Report, ledger.Entries); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "XLSX download failed", applog.FieldError, err)
	}
}

// handleExportReport writes the export files into the configured directory.
func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	if errResp := ParseFormOrFail(r); errResp != nil {
		errResp.Write(w)
		return
	}
	res, _, err := s.screens.Report.Export(r.Context(), "", formBool(r.PostForm, "xlsx"))
	logAction(r, screens.ScreenReport, "export")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	RedirectWithNotice("/report", NotificationSuccess, res.Message).Write(w)
}
