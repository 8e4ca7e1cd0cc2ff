package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"workday/internal/core"
	applog "workday/internal/log"
)

const paymentColumns = `id, client_id, COALESCE(amount, 0) AS amount,
	COALESCE(type, '') AS type, COALESCE(date, '') AS date`

// ListPayments returns a client's payments and advances, newest first.
func (r *Repository) ListPayments(ctx context.Context, clientID int64) ([]core.Payment, error) {
	rows := []paymentRow{}
	if err := r.db.SelectContext(ctx, &rows,
		`SELECT `+paymentColumns+` FROM payments WHERE client_id = ? ORDER BY date DESC, id DESC`, clientID); err != nil {
		return nil, fmt.Errorf("select payments for client %d: %w", clientID, err)
	}
	payments := make([]core.Payment, len(rows))
	for i, row := range rows {
		payments[i] = row.toCore()
	}
	return payments, nil
}

// CreatePayment records a payment or advance. It returns core.ErrNotFound
// when the client does not exist.
func (r *Repository) CreatePayment(ctx context.Context, p core.Payment) (int64, error) {
	if p.Date.IsZero() {
		p.Date = core.Today()
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO payments (client_id, amount, type, date)
		 SELECT ?, ?, ?, ? WHERE EXISTS (SELECT 1 FROM clients WHERE id = ?)`,
		p.ClientID, p.Amount, string(p.Type), p.Date.String(), p.ClientID)
	if err != nil {
		return 0, fmt.Errorf("insert payment: %w", err)
	}
	if err := expectOne(res, "client", p.ClientID); err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert payment id: %w", err)
	}

	r.logger.InfoContext(ctx, "Payment recorded",
		applog.FieldPaymentID, id,
		applog.FieldClientID, p.ClientID,
		applog.FieldAmount, p.Amount.String(),
		"type", p.Type,
		applog.FieldOperation, applog.OpCreate)
	return id, nil
}

// DeletePayment removes one of clientID's payments. A payment owned by another
// client is reported as not found.
func (r *Repository) DeletePayment(ctx context.Context, clientID, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payments WHERE id = ? AND client_id = ?`, id, clientID)
	if err != nil {
		return fmt.Errorf("delete payment %d: %w", id, err)
	}
	if err := expectOne(res, "delete payment", id); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Payment deleted",
		applog.FieldClientID, clientID,
		applog.FieldPaymentID, id,
		applog.FieldOperation, applog.OpDelete)
	return nil
}

// PaymentTotals sums a client's payments and advances separately.
func (r *Repository) PaymentTotals(ctx context.Context, clientID int64) (core.PaymentTotals, error) {
	var row struct {
		Payments decimal.Decimal `db:"payments"`
		Advances decimal.Decimal `db:"advances"`
	}
	err := r.db.GetContext(ctx, &row, `SELECT
		COALESCE(SUM(CASE WHEN type = 'payment' THEN amount END), 0) AS payments,
		COALESCE(SUM(CASE WHEN type = 'advance' THEN amount END), 0) AS advances
		FROM payments WHERE client_id = ?`, clientID)
	if err != nil {
		return core.PaymentTotals{}, fmt.Errorf("sum payments for client %d: %w", clientID, err)
	}
	return core.PaymentTotals{Payments: row.Payments, Advances: row.Advances}, nil
}
