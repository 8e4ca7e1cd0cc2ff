package screens

import (
	"context"
	"fmt"
	"strings"

	"workday/internal/core"
	applog "workday/internal/log"
)

// ClientForm carries the add/edit client fields as typed.
type ClientForm struct {
	Name       string
	Phone      string
	DailyRate  string
	DaysWorked string
}

func (f ClientForm) parse() (core.Client, *core.ValidationError) {
	c := core.Client{
		Name:  strings.TrimSpace(f.Name),
		Phone: strings.TrimSpace(f.Phone),
	}
	if c.Name == "" {
		return c, &core.ValidationError{Kind: core.KindMissingField, Field: "name", Err: core.ErrEmptyName}
	}
	rate, ve := parseAmount("daily_rate", f.DailyRate, true)
	if ve != nil {
		return c, ve
	}
	c.DailyRate = rate
	return c, nil
}

type ClientsView struct {
	Search  string
	Clients []core.Client
	Form    ClientForm
}

type Clients struct {
	store  Store
	logger *applog.Logger
}

// Load lists clients, narrowed by search when given.
func (s *Clients) Load(ctx context.Context, search string) (ClientsView, error) {
	clients, err := s.store.ListClients(ctx, search)
	if err != nil {
		return ClientsView{}, fmt.Errorf("load clients: %w", err)
	}
	return ClientsView{Search: strings.TrimSpace(search), Clients: clients}, nil
}

// Add creates a client with days_worked = 0. An empty rate means 0.
func (s *Clients) Add(ctx context.Context, form ClientForm) (Result, ClientsView, error) {
	c, ve := form.parse()
	if ve == nil {
		if err := c.Validate(); err != nil {
			ve, _ = core.AsValidation(err)
		}
	}
	if ve != nil {
		s.logger.DebugContext(ctx, "Client rejected", applog.FieldKind, ve.Kind, "field", ve.Field)
		view, err := s.Load(ctx, "")
		view.Form = form
		return Invalid(ve), view, err
	}

	if _, err := s.store.CreateClient(ctx, c.Name, c.Phone, c.DailyRate); err != nil {
		return Result{}, ClientsView{}, fmt.Errorf("add client: %w", err)
	}
	view, err := s.Load(ctx, "")
	return Success(fmt.Sprintf("Client %s added", c.Name)), view, err
}

func (s *Clients) Delete(ctx context.Context, id int64) (Result, ClientsView, error) {
	res := Success("Client deleted")
	if err := s.store.DeleteClient(ctx, id); err != nil {
		r, err := invalidOrErr(err, "client", id)
		if err != nil {
			return Result{}, ClientsView{}, fmt.Errorf("delete client: %w", err)
		}
		res = r
	}
	view, err := s.Load(ctx, "")
	return res, view, err
}
