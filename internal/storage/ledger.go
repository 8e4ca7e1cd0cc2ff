package storage

import (
	"context"
	"fmt"

	"workday/internal/core"
	applog "workday/internal/log"
)

const entryColumns = `id, COALESCE(type, '') AS type, COALESCE(amount, 0) AS amount,
	COALESCE(description, '') AS description, COALESCE(date, '') AS date`

// ListEntries returns every expense and income row, newest first.
func (r *Repository) ListEntries(ctx context.Context) ([]core.Entry, error) {
	rows := []entryRow{}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+entryColumns+` FROM expenses ORDER BY date DESC, id DESC`); err != nil {
		return nil, fmt.Errorf("select ledger entries: %w", err)
	}
	entries := make([]core.Entry, len(rows))
	for i, row := range rows {
		entries[i] = row.toCore()
	}
	return entries, nil
}

// GetEntry returns one ledger row or core.ErrNotFound.
func (r *Repository) GetEntry(ctx context.Context, id int64) (core.Entry, error) {
	rows := []entryRow{}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+entryColumns+` FROM expenses WHERE id = ?`, id); err != nil {
		return core.Entry{}, fmt.Errorf("get ledger entry %d: %w", id, err)
	}
	if len(rows) == 0 {
		return core.Entry{}, fmt.Errorf("ledger entry %d: %w", id, core.ErrNotFound)
	}
	return rows[0].toCore(), nil
}

// CreateEntry stores an expense or income row. A zero date means today.
func (r *Repository) CreateEntry(ctx context.Context, e core.Entry) (int64, error) {
	if e.Date.IsZero() {
		e.Date = core.Today()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (type, amount, description, date) VALUES (?, ?, ?, ?)`,
		string(e.Type), e.Amount, e.Description, e.Date.String())
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert ledger entry id: %w", err)
	}

	r.logger.InfoContext(ctx, "Ledger entry created",
		applog.FieldEntryID, id,
		"type", e.Type,
		applog.FieldAmount, e.Amount.String(),
		applog.FieldOperation, applog.OpCreate)
	return id, nil
}

// UpdateEntry rewrites type, amount and description. The date is kept.
func (r *Repository) UpdateEntry(ctx context.Context, e core.Entry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET type = ?, amount = ?, description = ? WHERE id = ?`,
		string(e.Type), e.Amount, e.Description, e.ID)
	if err != nil {
		return fmt.Errorf("update ledger entry %d: %w", e.ID, err)
	}
	if err := expectOne(res, "update ledger entry", e.ID); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Ledger entry updated",
		applog.FieldEntryID, e.ID,
		applog.FieldOperation, applog.OpUpdate)
	return nil
}

func (r *Repository) DeleteEntry(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry %d: %w", id, err)
	}
	if err := expectOne(res, "delete ledger entry", id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Ledger entry deleted",
		applog.FieldEntryID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}
