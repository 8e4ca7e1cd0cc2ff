package screens

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"workday/internal/core"
	applog "workday/internal/log"
	"workday/internal/storage"
)

func newTestScreens(t *testing.T) (*Screens, *storage.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "workday.db"), storage.Options{Logger: applog.Discard()})
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return New(repo, filepath.Join(dir, "exports"), applog.Discard()), repo
}

func TestClientsAdd(t *testing.T) {
	s, _ := newTestScreens(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		form     ClientForm
		wantKind core.ValidationKind
	}{
		{"missing name", ClientForm{Name: "  ", DailyRate: "50"}, core.KindMissingField},
		{"bad rate", ClientForm{Name: "Ali", DailyRate: "abc"}, core.KindInvalidNumber},
		{"negative rate", ClientForm{Name: "Ali", DailyRate: "-5"}, core.KindNegativeAmount},
		{"valid", ClientForm{Name: "Ali", Phone: "0100", DailyRate: "50.0"}, ""},
		{"empty rate is zero", ClientForm{Name: "Sami"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, view, err := s.Clients.Add(ctx, tt.form)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantKind == "" {
				if !res.OK() {
					t.Fatalf("expected success, got %v", res.Err)
				}
				return
			}
			if res.OK() || res.Err.Kind != tt.wantKind {
				t.Fatalf("expected %s, got %+v", tt.wantKind, res)
			}
			if view.Form != tt.form {
				t.Fatalf("form not kept for re-render: %+v", view.Form)
			}
		})
	}

	view, err := s.Clients.Load(ctx, "")
	if err != nil || len(view.Clients) != 2 {
		t.Fatalf("expected 2 clients, got %+v err=%v", view.Clients, err)
	}
	ali := view.Clients[0]
	if ali.Name != "Ali" || ali.DaysWorked != 0 || !ali.DailyRate.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected client %+v", ali)
	}
}

func TestClientsDeleteMissing(t *testing.T) {
	s, _ := newTestScreens(t)
	res, _, err := s.Clients.Delete(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OK() || res.Err.Kind != core.KindNotFound {
		t.Fatalf("expected not_found, got %+v", res)
	}
}

func TestAttendanceToggleExample(t *testing.T) {
	s, _ := newTestScreens(t)
	ctx := context.Background()
	s.Clients.Add(ctx, ClientForm{Name: "Ali", Phone: "0100", DailyRate: "50"})
	clients, _ := s.Clients.Load(ctx, "")
	id := clients.Clients[0].ID

	res, view, err := s.Attendance.Toggle(ctx, "2024-01-01", id, true)
	if err != nil || !res.OK() {
		t.Fatalf("toggle present: res=%+v err=%v", res, err)
	}
	if view.Present != 1 || !view.Rows[0].Present || view.Rows[0].Client.DaysWorked != 1 {
		t.Fatalf("unexpected view after present: %+v", view)
	}

	res, view, err = s.Attendance.Toggle(ctx, "2024-01-01", id, false)
	if err != nil || !res.OK() {
		t.Fatalf("toggle absent: res=%+v err=%v", res, err)
	}
	if view.Present != 0 || view.Rows[0].Client.DaysWorked != 0 {
		t.Fatalf("unexpected view after absent: %+v", view)
	}

	res, _, err = s.Attendance.Toggle(ctx, "01/01/2024", id, true)
	if err != nil || res.OK() || res.Err.Kind != core.KindInvalidDate {
		t.Fatalf("expected invalid_date, got %+v err=%v", res, err)
	}
	res, _, err = s.Attendance.Toggle(ctx, "2024-01-01", 999, true)
	if err != nil || res.OK() || res.Err.Kind != core.KindNotFound {
		t.Fatalf("expected not_found, got %+v err=%v", res, err)
	}
}

func TestDetailPaymentsAndBalance(t *testing.T) {
	s, repo := newTestScreens(t)
	ctx := context.Background()
	id, _ := repo.CreateClient(ctx, "Ali", "", decimal.NewFromInt(50))
	repo.MarkPresent(ctx, id, core.NewDate(2024, 1, 1))
	repo.MarkPresent(ctx, id, core.NewDate(2024, 1, 2))

	res, view, err := s.Detail.AddPayment(ctx, id, PaymentForm{Amount: "30", Type: "advance"})
	if err != nil || !res.OK() {
		t.Fatalf("add advance: res=%+v err=%v", res, err)
	}
	if !view.Balance.Equal(decimal.NewFromInt(70)) || len(view.Attendance) != 2 {
		t.Fatalf("unexpected detail view %+v", view)
	}

	for _, form := range []PaymentForm{
		{Amount: "0", Type: "payment"},
		{Amount: "x", Type: "payment"},
		{Amount: "10", Type: "tip"},
	} {
		res, _, err := s.Detail.AddPayment(ctx, id, form)
		if err != nil || res.OK() {
			t.Fatalf("expected rejection for %+v, got %+v err=%v", form, res, err)
		}
	}

	pid := view.Payments[0].ID
	res, view, err = s.Detail.DeletePayment(ctx, id, pid)
	if err != nil || !res.OK() || len(view.Payments) != 0 {
		t.Fatalf("delete payment: res=%+v payments=%v err=%v", res, view.Payments, err)
	}
}

func TestDetailSaveCounter(t *testing.T) {
	s, repo := newTestScreens(t)
	ctx := context.Background()
	id, _ := repo.CreateClient(ctx, "Ali", "", decimal.NewFromInt(50))

	res, view, err := s.Detail.Save(ctx, id, ClientForm{Name: "Ali", DailyRate: "60", DaysWorked: "4"})
	if err != nil || !res.OK() {
		t.Fatalf("save: res=%+v err=%v", res, err)
	}
	if view.Client.DaysWorked != 4 || !view.Client.DailyRate.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected client %+v", view.Client)
	}

	res, _, _ = s.Detail.Save(ctx, id, ClientForm{Name: "Ali", DaysWorked: "-1"})
	if res.OK() || res.Err.Kind != core.KindNegativeAmount {
		t.Fatalf("expected negative_amount, got %+v", res)
	}

	res, err = s.Detail.Delete(ctx, id)
	if err != nil || !res.OK() {
		t.Fatalf("delete: res=%+v err=%v", res, err)
	}
	if _, err := s.Detail.Open(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestExpensesSaveAndEdit(t *testing.T) {
	s, _ := newTestScreens(t)
	ctx := context.Background()

	res, view, err := s.Expenses.Save(ctx, EntryForm{Type: "income", Amount: "200", Description: "contract"})
	if err != nil || !res.OK() {
		t.Fatalf("add income: res=%+v err=%v", res, err)
	}
	s.Expenses.Save(ctx, EntryForm{Type: "expense", Amount: "80", Description: "fuel"})

	res, _, _ = s.Expenses.Save(ctx, EntryForm{Type: "gift", Amount: "1"})
	if res.OK() || res.Err.Kind != core.KindInvalidType {
		t.Fatalf("expected invalid_type, got %+v", res)
	}

	view, _ = s.Expenses.Load(ctx)
	if !view.Income.Sub(view.Expense).Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected totals income=%s expense=%s", view.Income, view.Expense)
	}

	fuel := view.Entries[0]
	res, view, err = s.Expenses.Edit(ctx, fuel.ID)
	if err != nil || !res.OK() || !view.Editing || view.Form.Description != "fuel" {
		t.Fatalf("edit prefill: res=%+v form=%+v err=%v", res, view.Form, err)
	}

	view.Form.Amount = "90"
	res, view, err = s.Expenses.Save(ctx, view.Form)
	if err != nil || !res.OK() || len(view.Entries) != 2 {
		t.Fatalf("update: res=%+v err=%v", res, err)
	}
	if !view.Expense.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected updated expense 90, got %s", view.Expense)
	}

	res, view, err = s.Expenses.Delete(ctx, fuel.ID)
	if err != nil || !res.OK() || len(view.Entries) != 1 {
		t.Fatalf("delete: res=%+v err=%v", res, err)
	}
}

func TestReportExport(t *testing.T) {
	s, repo := newTestScreens(t)
	ctx := context.Background()
	repo.CreateEntry(ctx, core.Entry{Type: core.EntryIncome, Amount: decimal.NewFromInt(200)})
	repo.CreateEntry(ctx, core.Entry{Type: core.EntryExpense, Amount: decimal.NewFromInt(80)})

	view, err := s.Report.Load(ctx)
	if err != nil || !view.Report.Net().Equal(decimal.NewFromInt(120)) {
		t.Fatalf("load: net=%s err=%v", view.Report.Net(), err)
	}

	dir := t.TempDir()
	res, paths, err := s.Report.Export(ctx, dir, true)
	if err != nil || !res.OK() || len(paths) != 2 {
		t.Fatalf("export: res=%+v paths=%v err=%v", res, paths, err)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Fatalf("missing export %s: %v", p, err)
		}
	}
}

func TestReportDriftCancellingOut(t *testing.T) {
	s, repo := newTestScreens(t)
	ctx := context.Background()
	ali, _ := repo.CreateClient(ctx, "Ali", "", decimal.NewFromInt(50))
	sami, _ := repo.CreateClient(ctx, "Sami", "", decimal.NewFromInt(40))
	day := core.NewDate(2024, 1, 1)
	repo.MarkPresent(ctx, ali, day)
	repo.MarkPresent(ctx, sami, day)

	two, zero := int64(2), int64(0)
	repo.UpdateClient(ctx, ali, "Ali", "", decimal.NewFromInt(50), &two)
	repo.UpdateClient(ctx, sami, "Sami", "", decimal.NewFromInt(40), &zero)

	view, err := s.Report.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !view.Report.Consistent() {
		t.Fatalf("totals should match, got %+v", view.Report)
	}
	if len(view.Mismatches) != 2 || !view.Drifted() {
		t.Fatalf("expected two mismatches flagged as drift, got %+v", view.Mismatches)
	}
}

func TestNavigator(t *testing.T) {
	s, repo := newTestScreens(t)
	ctx := context.Background()
	nav := NewNavigator(s)
	id, _ := repo.CreateClient(ctx, "Ali", "", decimal.NewFromInt(50))

	for _, name := range nav.Screens() {
		v, err := nav.Go(ctx, name, Params{ClientID: id})
		if err != nil {
			t.Fatalf("go %s: %v", name, err)
		}
		if v.Screen != name || v.Data == nil {
			t.Fatalf("unexpected view for %s: %+v", name, v)
		}
	}

	if nav.Has("settings") || !nav.Has(ScreenClientDetail) {
		t.Fatalf("unexpected registry lookup")
	}
	if _, err := nav.Go(ctx, "settings", Params{}); !errors.Is(err, ErrUnknownScreen) {
		t.Fatalf("expected ErrUnknownScreen, got %v", err)
	}
	if _, err := nav.Go(ctx, ScreenClientDetail, Params{ClientID: 999}); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
