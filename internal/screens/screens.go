// Package screens holds the per-screen controllers. Each one turns raw form
// input into repository calls and hands back freshly loaded view data.
package screens

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"workday/internal/core"
	applog "workday/internal/log"
)

// Store is the slice of the repository the screens need.
type Store interface {
	ListClients(ctx context.Context, search string) ([]core.Client, error)
	GetClient(ctx context.Context, id int64) (core.Client, error)
	CreateClient(ctx context.Context, name, phone string, rate decimal.Decimal) (int64, error)
	UpdateClient(ctx context.Context, id int64, name, phone string, rate decimal.Decimal, daysWorked *int64) error
	DeleteClient(ctx context.Context, id int64) error

	PresentClientIDs(ctx context.Context, date core.Date) ([]int64, error)
	ToggleAttendance(ctx context.Context, clientID int64, date core.Date, present bool) (bool, error)
	AttendanceDates(ctx context.Context, clientID int64) ([]core.Date, error)

	ListPayments(ctx context.Context, clientID int64) ([]core.Payment, error)
	CreatePayment(ctx context.Context, p core.Payment) (int64, error)
	DeletePayment(ctx context.Context, clientID, id int64) error
	PaymentTotals(ctx context.Context, clientID int64) (core.PaymentTotals, error)

	ListEntries(ctx context.Context) ([]core.Entry, error)
	GetEntry(ctx context.Context, id int64) (core.Entry, error)
	CreateEntry(ctx context.Context, e core.Entry) (int64, error)
	UpdateEntry(ctx context.Context, e core.Entry) error
	DeleteEntry(ctx context.Context, id int64) error

	Report(ctx context.Context) (core.Report, error)
	CounterMismatches(ctx context.Context) ([]core.CounterMismatch, error)
}

// Result is the outcome of a user action: a success message, or the
// validation error that stopped it before anything was written.
type Result struct {
	Message string
	Err     *core.ValidationError
}

func Success(msg string) Result {
	return Result{Message: msg}
}

func Invalid(err *core.ValidationError) Result {
	return Result{Message: err.Error(), Err: err}
}

func (r Result) OK() bool {
	return r.Err == nil
}

// invalidOrErr turns validation failures and missing rows into a Result and
// passes every other error through.
func invalidOrErr(err error, field string, id int64) (Result, error) {
	if ve, ok := core.AsValidation(err); ok {
		return Invalid(ve), nil
	}
	if errors.Is(err, core.ErrNotFound) {
		return Invalid(core.NotFound(field, id)), nil
	}
	return Result{}, err
}

func parseID(field, s string) (int64, *core.ValidationError) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &core.ValidationError{Kind: core.KindMissingField, Field: field}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, &core.ValidationError{Kind: core.KindInvalidNumber, Field: field, Value: s, Err: err}
	}
	return id, nil
}

// parseDay reads a YYYY-MM-DD field; empty means today.
func parseDay(field, s string) (core.Date, *core.ValidationError) {
	if strings.TrimSpace(s) == "" {
		return core.Today(), nil
	}
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, &core.ValidationError{Kind: core.KindInvalidDate, Field: field, Value: s, Err: err}
	}
	return d, nil
}

func parseAmount(field, s string, allowEmpty bool) (decimal.Decimal, *core.ValidationError) {
	if strings.TrimSpace(s) == "" {
		if allowEmpty {
			return decimal.Zero, nil
		}
		return decimal.Zero, &core.ValidationError{Kind: core.KindMissingField, Field: field}
	}
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "-") {
		if _, err := core.ParseAmount(trimmed[1:]); err == nil {
			return decimal.Zero, &core.ValidationError{Kind: core.KindNegativeAmount, Field: field, Value: s, Err: core.ErrNegativeAmount}
		}
	}
	d, err := core.ParseAmount(s)
	if err != nil {
		return decimal.Zero, &core.ValidationError{Kind: core.KindInvalidNumber, Field: field, Value: s, Err: err}
	}
	return d, nil
}

// Screens bundles every controller over one store.
type Screens struct {
	Home       *Home
	Clients    *Clients
	Detail     *Detail
	Attendance *Attendance
	Expenses   *Expenses
	Report     *Report
}

// New builds all controllers. exportDir is where report exports land.
func New(store Store, exportDir string, logger *applog.Logger) *Screens {
	if logger == nil {
		logger = applog.Discard()
	}
	logger = logger.WithComponent(applog.ComponentScreens)
	return &Screens{
		Home:       &Home{store: store},
		Clients:    &Clients{store: store, logger: logger},
		Detail:     &Detail{store: store, logger: logger},
		Attendance: &Attendance{store: store, logger: logger},
		Expenses:   &Expenses{store: store, logger: logger},
		Report:     &Report{store: store, exportDir: exportDir, logger: logger},
	}
}
