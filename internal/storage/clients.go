package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"workday/internal/core"
	applog "workday/internal/log"
)

const clientColumns = `id, name, COALESCE(phone, '') AS phone,
	COALESCE(daily_rate, 0) AS daily_rate, COALESCE(days_worked, 0) AS days_worked`

// ListClients returns clients ordered by name. A non-empty search narrows the
// list to names containing it.
func (r *Repository) ListClients(ctx context.Context, search string) ([]core.Client, error) {
	rows := []clientRow{}
	search = strings.TrimSpace(search)
	var err error
	if search != "" {
		err = r.db.SelectContext(ctx, &rows,
			`SELECT `+clientColumns+` FROM clients WHERE name LIKE ? ORDER BY name`, "%"+search+"%")
	} else {
		err = r.db.SelectContext(ctx, &rows, `SELECT `+clientColumns+` FROM clients ORDER BY name`)
	}
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}

	clients := make([]core.Client, len(rows))
	for i, row := range rows {
		clients[i] = row.toCore()
	}
	return clients, nil
}

// GetClient returns one client or core.ErrNotFound.
func (r *Repository) GetClient(ctx context.Context, id int64) (core.Client, error) {
	var row clientRow
	err := r.db.GetContext(ctx, &row, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Client{}, fmt.Errorf("client %d: %w", id, core.ErrNotFound)
	}
	if err != nil {
		return core.Client{}, fmt.Errorf("get client %d: %w", id, err)
	}
	return row.toCore(), nil
}

// CreateClient stores a new client with a zero days_worked counter.
func (r *Repository) CreateClient(ctx context.Context, name, phone string, rate decimal.Decimal) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (name, phone, daily_rate, days_worked) VALUES (?, ?, ?, 0)`,
		name, phone, rate)
	if err != nil {
		return 0, fmt.Errorf("insert client: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert client id: %w", err)
	}

	r.logger.InfoContext(ctx, "Client created",
		applog.FieldClientID, id,
		applog.FieldOperation, applog.OpCreate)
	return id, nil
}

// UpdateClient rewrites a client's details. A nil daysWorked leaves the
// attendance counter alone.
func (r *Repository) UpdateClient(ctx context.Context, id int64, name, phone string, rate decimal.Decimal, daysWorked *int64) error {
	var (
		res sql.Result
		err error
	)
	if daysWorked == nil {
		res, err = r.db.ExecContext(ctx,
			`UPDATE clients SET name = ?, phone = ?, daily_rate = ? WHERE id = ?`,
			name, phone, rate, id)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE clients SET name = ?, phone = ?, daily_rate = ?, days_worked = ? WHERE id = ?`,
			name, phone, rate, *daysWorked, id)
	}
	if err != nil {
		return fmt.Errorf("update client %d: %w", id, err)
	}
	if err := expectOne(res, "update client", id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Client updated",
		applog.FieldClientID, id,
		applog.FieldOperation, applog.OpUpdate,
		"counter_overwritten", daysWorked != nil)
	return nil
}

// DeleteClient removes a client; attendance and payments go with it.
func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if err := expectOne(res, "delete client", id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Client deleted",
		applog.FieldClientID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}
