package core

import "github.com/shopspring/decimal"

// Report is the recomputed-on-demand business summary.
//
// DaysWorked is the sum of the per-client counters and is the headline
// attendance figure. AttendanceRows counts attendance records; the two only
// differ when counters were edited by hand or rows changed outside the
// attendance toggle.
type Report struct {
	Clients        int64
	DaysWorked     int64
	AttendanceRows int64
	Income         decimal.Decimal
	Expense        decimal.Decimal

	WagesEarned   decimal.Decimal
	PaymentsTotal decimal.Decimal
	AdvancesTotal decimal.Decimal
}

// Net is income minus expense.
func (r Report) Net() decimal.Decimal {
	return r.Income.Sub(r.Expense)
}

// CounterDrift is DaysWorked minus AttendanceRows.
func (r Report) CounterDrift() int64 {
	return r.DaysWorked - r.AttendanceRows
}

func (r Report) Consistent() bool {
	return r.CounterDrift() == 0
}

// Outstanding is what is still owed to workers after payments and advances.
func (r Report) Outstanding() decimal.Decimal {
	return r.WagesEarned.Sub(r.PaymentsTotal).Sub(r.AdvancesTotal)
}

// CounterMismatch is a client whose days_worked counter disagrees with its
// attendance rows.
type CounterMismatch struct {
	ClientID       int64
	Name           string
	DaysWorked     int64
	AttendanceRows int64
}

// PaymentTotals sums one client's cash movements by type.
type PaymentTotals struct {
	Payments decimal.Decimal
	Advances decimal.Decimal
}

// Paid is payments plus advances.
func (t PaymentTotals) Paid() decimal.Decimal {
	return t.Payments.Add(t.Advances)
}

// Balance is what a client is still owed: wages earned minus everything paid.
func Balance(c Client, t PaymentTotals) decimal.Decimal {
	return c.Wages().Sub(t.Paid())
}
