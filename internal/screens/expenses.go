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

// EntryForm carries a ledger row as typed. A non-empty ID means edit.
type EntryForm struct {
	ID          string
	Type        string
	Amount      string
	Description string
	Date        string
}

type ExpensesView struct {
	Entries []core.Entry
	Income  decimal.Decimal
	Expense decimal.Decimal
	Form    EntryForm
	Editing bool
}

type Expenses struct {
	store  Store
	logger *applog.Logger
}

func (s *Expenses) Load(ctx context.Context) (ExpensesView, error) {
	entries, err := s.store.ListEntries(ctx)
	if err != nil {
		return ExpensesView{}, fmt.Errorf("load ledger: %w", err)
	}
	view := ExpensesView{
		Entries: entries,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
		Form:    EntryForm{Type: string(core.EntryExpense)},
	}
	for _, e := range entries {
		switch e.Type {
		case core.EntryIncome:
			view.Income = view.Income.Add(e.Amount)
		case core.EntryExpense:
			view.Expense = view.Expense.Add(e.Amount)
		}
	}
	return view, nil
}

// Edit loads the list with the form prefilled from one entry.
func (s *Expenses) Edit(ctx context.Context, id int64) (Result, ExpensesView, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		res, err := invalidOrErr(err, "entry", id)
		if err != nil {
			return Result{}, ExpensesView{}, fmt.Errorf("edit entry: %w", err)
		}
		view, err := s.Load(ctx)
		return res, view, err
	}
	view, err := s.Load(ctx)
	view.Form = EntryForm{
		ID:          strconv.FormatInt(e.ID, 10),
		Type:        string(e.Type),
		Amount:      e.Amount.String(),
		Description: e.Description,
		Date:        e.Date.String(),
	}
	view.Editing = true
	return Success(""), view, err
}

// Save inserts a new entry, or updates the one named by form.ID.
func (s *Expenses) Save(ctx context.Context, form EntryForm) (Result, ExpensesView, error) {
	e, ve := form.parse()
	if ve == nil {
		if err := e.Validate(); err != nil {
			ve, _ = core.AsValidation(err)
		}
	}
	if ve != nil {
		s.logger.DebugContext(ctx, "Ledger entry rejected", applog.FieldKind, ve.Kind, "field", ve.Field)
		view, err := s.Load(ctx)
		view.Form = form
		view.Editing = strings.TrimSpace(form.ID) != ""
		return Invalid(ve), view, err
	}

	msg := "Entry added"
	if e.ID != 0 {
		if err := s.store.UpdateEntry(ctx, e); err != nil {
			res, err := invalidOrErr(err, "entry", e.ID)
			if err != nil {
				return Result{}, ExpensesView{}, fmt.Errorf("update entry: %w", err)
			}
			view, err := s.Load(ctx)
			return res, view, err
		}
		msg = "Entry updated"
	} else if _, err := s.store.CreateEntry(ctx, e); err != nil {
		return Result{}, ExpensesView{}, fmt.Errorf("add entry: %w", err)
	}
	view, err := s.Load(ctx)
	return Success(msg), view, err
}

func (s *Expenses) Delete(ctx context.Context, id int64) (Result, ExpensesView, error) {
	res := Success("Entry deleted")
	if err := s.store.DeleteEntry(ctx, id); err != nil {
		r, err := invalidOrErr(err, "entry", id)
		if err != nil {
			return Result{}, ExpensesView{}, fmt.Errorf("delete entry: %w", err)
		}
		res = r
	}
	view, err := s.Load(ctx)
	return res, view, err
}

func (f EntryForm) parse() (core.Entry, *core.ValidationError) {
	e := core.Entry{
		Type:        core.EntryType(strings.TrimSpace(f.Type)),
		Description: strings.TrimSpace(f.Description),
	}
	if strings.TrimSpace(f.ID) != "" {
		id, ve := parseID("id", f.ID)
		if ve != nil {
			return e, ve
		}
		e.ID = id
	}
	if !e.Type.Valid() {
		return e, &core.ValidationError{Kind: core.KindInvalidType, Field: "type", Value: f.Type, Err: core.ErrInvalidEntryType}
	}
	amount, ve := parseAmount("amount", f.Amount, false)
	if ve != nil {
		return e, ve
	}
	e.Amount = amount
	e.Date, ve = parseDay("date", f.Date)
	return e, ve
}
