package storage

import (
	"github.com/shopspring/decimal"

	"workday/internal/core"
)

// Row types mirror the columns as selected. Every nullable legacy column is
// wrapped in COALESCE by the queries, so no sql.Null* types are needed.

type clientRow struct {
	ID         int64           `db:"id"`
	Name       string          `db:"name"`
	Phone      string          `db:"phone"`
	DailyRate  decimal.Decimal `db:"daily_rate"`
	DaysWorked int64           `db:"days_worked"`
}

type paymentRow struct {
	ID       int64           `db:"id"`
	ClientID int64           `db:"client_id"`
	Amount   decimal.Decimal `db:"amount"`
	Type     string          `db:"type"`
	Date     string          `db:"date"`
}

type entryRow struct {
	ID          int64           `db:"id"`
	Type        string          `db:"type"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	Date        string          `db:"date"`
}

type reportRow struct {
	Clients        int64           `db:"clients"`
	DaysWorked     int64           `db:"days_worked"`
	AttendanceRows int64           `db:"attendance_rows"`
	Income         decimal.Decimal `db:"income"`
	Expense        decimal.Decimal `db:"expense"`
	WagesEarned    decimal.Decimal `db:"wages_earned"`
	PaymentsTotal  decimal.Decimal `db:"payments_total"`
	AdvancesTotal  decimal.Decimal `db:"advances_total"`
}

type mismatchRow struct {
	ID             int64  `db:"id"`
	Name           string `db:"name"`
	DaysWorked     int64  `db:"days_worked"`
	AttendanceRows int64  `db:"attendance_rows"`
}

func (r clientRow) toCore() core.Client {
	return core.Client{
		ID:         r.ID,
		Name:       r.Name,
		Phone:      r.Phone,
		DailyRate:  r.DailyRate,
		DaysWorked: r.DaysWorked,
	}
}

func (r paymentRow) toCore() core.Payment {
	return core.Payment{
		ID:       r.ID,
		ClientID: r.ClientID,
		Amount:   r.Amount,
		Type:     core.PaymentType(r.Type),
		Date:     dateFromDB(r.Date),
	}
}

func (r entryRow) toCore() core.Entry {
	return core.Entry{
		ID:          r.ID,
		Type:        core.EntryType(r.Type),
		Amount:      r.Amount,
		Description: r.Description,
		Date:        dateFromDB(r.Date),
	}
}

// dateFromDB tolerates malformed legacy values by returning the zero Date.
func dateFromDB(s string) core.Date {
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}
	}
	return d
}
