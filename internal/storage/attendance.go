package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"workday/internal/core"
	applog "workday/internal/log"
)

// PresentClientIDs returns the ids of clients marked present on date.
func (r *Repository) PresentClientIDs(ctx context.Context, date core.Date) ([]int64, error) {
	ids := []int64{}
	if err := r.db.SelectContext(ctx, &ids,
		`SELECT DISTINCT client_id FROM attendance WHERE date = ? AND client_id IS NOT NULL`, date.String()); err != nil {
		return nil, fmt.Errorf("select attendance for %s: %w", date, err)
	}
	return ids, nil
}

// ToggleAttendance moves a client's attendance for date to the wanted state.
//
// Marking present inserts a row and increments days_worked; marking absent
// deletes one row and decrements it. When the row already matches the
// wanted state nothing happens and changed is false. The existence check and
// both writes share one transaction.
func (r *Repository) ToggleAttendance(ctx context.Context, clientID int64, date core.Date, present bool) (changed bool, err error) {
	day := date.String()
	err = withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var rowID int64
		exists := true
		err := tx.GetContext(ctx, &rowID,
			`SELECT id FROM attendance WHERE client_id = ? AND date = ? LIMIT 1`, clientID, day)
		if errors.Is(err, sql.ErrNoRows) {
			exists = false
		} else if err != nil {
			return fmt.Errorf("check attendance: %w", err)
		}

		switch {
		case present && !exists:
			if err := bumpDaysWorked(ctx, tx, clientID, 1); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO attendance (client_id, date) VALUES (?, ?)`, clientID, day); err != nil {
				return fmt.Errorf("insert attendance: %w", err)
			}
		case !present && exists:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM attendance WHERE id = ?`, rowID); err != nil {
				return fmt.Errorf("delete attendance: %w", err)
			}
			if err := bumpDaysWorked(ctx, tx, clientID, -1); err != nil {
				return err
			}
		default:
			return nil
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if changed {
		r.logger.InfoContext(ctx, "Attendance toggled",
			applog.FieldClientID, clientID,
			applog.FieldDate, day,
			"present", present,
			applog.FieldOperation, applog.OpToggle)
	}
	return changed, nil
}

// MarkPresent records attendance if it is not recorded yet.
func (r *Repository) MarkPresent(ctx context.Context, clientID int64, date core.Date) (bool, error) {
	return r.ToggleAttendance(ctx, clientID, date, true)
}

// MarkAbsent removes attendance if it is recorded.
func (r *Repository) MarkAbsent(ctx context.Context, clientID int64, date core.Date) (bool, error) {
	return r.ToggleAttendance(ctx, clientID, date, false)
}

// AttendanceDates lists the days a client was present, newest first.
func (r *Repository) AttendanceDates(ctx context.Context, clientID int64) ([]core.Date, error) {
	days := []string{}
	if err := r.db.SelectContext(ctx, &days,
		`SELECT DISTINCT COALESCE(date, '') FROM attendance WHERE client_id = ? ORDER BY date DESC`, clientID); err != nil {
		return nil, fmt.Errorf("select attendance dates for client %d: %w", clientID, err)
	}
	dates := make([]core.Date, 0, len(days))
	for _, d := range days {
		dates = append(dates, dateFromDB(d))
	}
	return dates, nil
}

func bumpDaysWorked(ctx context.Context, tx *sqlx.Tx, clientID int64, delta int) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE clients SET days_worked = COALESCE(days_worked, 0) + ? WHERE id = ?`, delta, clientID)
	if err != nil {
		return fmt.Errorf("update days_worked: %w", err)
	}
	return expectOne(res, "client", clientID)
}
