package storage

import (
	"context"
	"fmt"

	"workday/internal/core"
)

const reportQuery = `SELECT
	(SELECT COUNT(*) FROM clients) AS clients,
	(SELECT COALESCE(SUM(days_worked), 0) FROM clients) AS days_worked,
	(SELECT COUNT(*) FROM attendance) AS attendance_rows,
	(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE type = 'income') AS income,
	(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE type = 'expense') AS expense,
	(SELECT COALESCE(SUM(COALESCE(daily_rate, 0) * COALESCE(days_worked, 0)), 0) FROM clients) AS wages_earned,
	(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE type = 'payment') AS payments_total,
	(SELECT COALESCE(SUM(amount), 0) FROM payments WHERE type = 'advance') AS advances_total`

// Report aggregates the whole database into a core.Report in one statement.
func (r *Repository) Report(ctx context.Context) (core.Report, error) {
	var row reportRow
	if err := r.db.GetContext(ctx, &row, reportQuery); err != nil {
		return core.Report{}, fmt.Errorf("compute report: %w", err)
	}
	return core.Report{
		Clients:        row.Clients,
		DaysWorked:     row.DaysWorked,
		AttendanceRows: row.AttendanceRows,
		Income:         row.Income,
		Expense:        row.Expense,
		WagesEarned:    row.WagesEarned,
		PaymentsTotal:  row.PaymentsTotal,
		AdvancesTotal:  row.AdvancesTotal,
	}, nil
}

// CounterMismatches lists clients whose days_worked differs from their
// number of attendance rows.
func (r *Repository) CounterMismatches(ctx context.Context) ([]core.CounterMismatch, error) {
	rows := []mismatchRow{}
	err := r.db.SelectContext(ctx, &rows, `SELECT c.id, c.name,
		COALESCE(c.days_worked, 0) AS days_worked,
		COUNT(a.id) AS attendance_rows
		FROM clients c
		LEFT JOIN attendance a ON a.client_id = c.id
		GROUP BY c.id, c.name, c.days_worked
		HAVING COALESCE(c.days_worked, 0) <> COUNT(a.id)
		ORDER BY c.name`)
	if err != nil {
		return nil, fmt.Errorf("select counter mismatches: %w", err)
	}
	out := make([]core.CounterMismatch, len(rows))
	for i, row := range rows {
		out[i] = core.CounterMismatch{
			ClientID:       row.ID,
			Name:           row.Name,
			DaysWorked:     row.DaysWorked,
			AttendanceRows: row.AttendanceRows,
		}
	}
	return out, nil
}
