package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"workday/internal/core"
	applog "workday/internal/log"
)

// PaymentForm carries a new payment or advance as typed.
type PaymentForm struct {
	Amount string
	Type   string
	Date   string
}

// DetailView is everything the client detail screen shows.
type DetailView struct {
	Client      core.Client
	Payments    []core.Payment
	Totals      core.PaymentTotals
	Balance     decimal.Decimal
	Attendance  []core.Date
	Form        ClientForm
	PaymentForm PaymentForm
}

type Detail struct {
	store  Store
	logger *applog.Logger
}

// Open loads one client. A missing client yields core.ErrNotFound.
func (s *Detail) Open(ctx context.Context, clientID int64) (DetailView, error) {
	c, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return DetailView{}, err
	}
	payments, err := s.store.ListPayments(ctx, clientID)
	if err != nil {
		return DetailView{}, fmt.Errorf("load payments: %w", err)
	}
	totals, err := s.store.PaymentTotals(ctx, clientID)
	if err != nil {
		return DetailView{}, fmt.Errorf("load payment totals: %w", err)
	}
	dates, err := s.store.AttendanceDates(ctx, clientID)
	if err != nil {
		return DetailView{}, fmt.Errorf("load attendance dates: %w", err)
	}
	return DetailView{
		Client:     c,
		Payments:   payments,
		Totals:     totals,
		Balance:    core.Balance(c, totals),
		Attendance: dates,
		Form: ClientForm{
			Name:       c.Name,
			Phone:      c.Phone,
			DailyRate:  c.DailyRate.String(),
			DaysWorked: strconv.FormatInt(c.DaysWorked, 10),
		},
		PaymentForm: PaymentForm{Type: string(core.PaymentRegular)},
	}, nil
}

// Save rewrites the client's fields. A non-empty DaysWorked overwrites the
// counter; an empty one leaves it alone.
func (s *Detail) Save(ctx context.Context, clientID int64, form ClientForm) (Result, DetailView, error) {
	c, ve := form.parse()
	var days *int64
	if ve == nil && strings.TrimSpace(form.DaysWorked) != "" {
		n, err := strconv.ParseInt(strings.TrimSpace(form.DaysWorked), 10, 64)
		switch {
		case err != nil:
			ve = &core.ValidationError{Kind: core.KindInvalidNumber, Field: "days_worked", Value: form.DaysWorked, Err: err}
		case n < 0:
			ve = &core.ValidationError{Kind: core.KindNegativeAmount, Field: "days_worked", Value: form.DaysWorked, Err: core.ErrNegativeAmount}
		default:
			days = &n
		}
	}
	if ve != nil {
		return s.invalid(ctx, clientID, ve, func(v *DetailView) { v.Form = form })
	}

	if err := s.store.UpdateClient(ctx, clientID, c.Name, c.Phone, c.DailyRate, days); err != nil {
		res, err := invalidOrErr(err, "client", clientID)
		return res, DetailView{}, wrap("save client", err)
	}
	view, err := s.Open(ctx, clientID)
	return Success("Changes saved"), view, err
}

// AddPayment records a payment or advance for the client.
func (s *Detail) AddPayment(ctx context.Context, clientID int64, form PaymentForm) (Result, DetailView, error) {
	p := core.Payment{ClientID: clientID, Type: core.PaymentType(strings.TrimSpace(form.Type))}
	if p.Type == "" {
		p.Type = core.PaymentRegular
	}
	amount, ve := parseAmount("amount", form.Amount, false)
	if ve == nil {
		p.Amount = amount
		p.Date, ve = parseDay("date", form.Date)
	}
	if ve == nil {
		if err := p.Validate(); err != nil {
			ve, _ = core.AsValidation(err)
		}
	}
	if ve != nil {
		return s.invalid(ctx, clientID, ve, func(v *DetailView) { v.PaymentForm = form })
	}

	if _, err := s.store.CreatePayment(ctx, p); err != nil {
		res, err := invalidOrErr(err, "client", clientID)
		return res, DetailView{}, wrap("add payment", err)
	}
	view, err := s.Open(ctx, clientID)
	return Success(fmt.Sprintf("%s of %s recorded", paymentLabel(p.Type), core.FormatAmount(p.Amount))), view, err
}

func (s *Detail) DeletePayment(ctx context.Context, clientID, paymentID int64) (Result, DetailView, error) {
	res := Success("Payment deleted")
	if err := s.store.DeletePayment(ctx, clientID, paymentID); err != nil {
		r, err := invalidOrErr(err, "payment", paymentID)
		if err != nil {
			return Result{}, DetailView{}, fmt.Errorf("delete payment: %w", err)
		}
		res = r
	}
	view, err := s.Open(ctx, clientID)
	return res, view, err
}

// Delete removes the client with its attendance and payments.
func (s *Detail) Delete(ctx context.Context, clientID int64) (Result, error) {
	if err := s.store.DeleteClient(ctx, clientID); err != nil {
		res, err := invalidOrErr(err, "client", clientID)
		return res, wrap("delete client", err)
	}
	return Success("Client deleted"), nil
}

func (s *Detail) invalid(ctx context.Context, clientID int64, ve *core.ValidationError, keep func(*DetailView)) (Result, DetailView, error) {
	s.logger.DebugContext(ctx, "Client detail input rejected",
		applog.FieldClientID, clientID,
		applog.FieldKind, ve.Kind,
		"field", ve.Field)
	view, err := s.Open(ctx, clientID)
	if err == nil {
		keep(&view)
	}
	return Invalid(ve), view, err
}

func paymentLabel(t core.PaymentType) string {
	if t == core.PaymentAdvance {
		return "Advance"
	}
	return "Payment"
}

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
