package screens

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

// Screen names a navigable screen.
type Screen string

const (
	ScreenHome         Screen = "home"
	ScreenClients      Screen = "clients"
	ScreenClientDetail Screen = "client_detail"
	ScreenAttendance   Screen = "attendance"
	ScreenExpenses     Screen = "expenses"
	ScreenReport       Screen = "report"
)

var ErrUnknownScreen = errors.New("unknown screen")

// Params are the inputs a screen may need when it is opened.
type Params struct {
	ClientID int64
	EntryID  int64
	Date     string
	Search   string
}

// View is a loaded screen. Data holds the screen's *View struct.
type View struct {
	Screen Screen
	Result Result
	Data   any
}

// Loader opens one screen.
type Loader func(ctx context.Context, p Params) (View, error)

// Navigator switches between screens by name, reloading the target's data on
// every switch.
type Navigator struct {
	screens map[Screen]Loader
}

func NewNavigator(s *Screens) *Navigator {
	n := &Navigator{screens: make(map[Screen]Loader)}

	n.Register(ScreenHome, func(ctx context.Context, _ Params) (View, error) {
		v, err := s.Home.Load(ctx)
		return View{Data: v}, err
	})
	n.Register(ScreenClients, func(ctx context.Context, p Params) (View, error) {
		v, err := s.Clients.Load(ctx, p.Search)
		return View{Data: v}, err
	})
	n.Register(ScreenClientDetail, func(ctx context.Context, p Params) (View, error) {
		v, err := s.Detail.Open(ctx, p.ClientID)
		return View{Data: v}, err
	})
	n.Register(ScreenAttendance, func(ctx context.Context, p Params) (View, error) {
		res, v, err := s.Attendance.Load(ctx, p.Date)
		return View{Result: res, Data: v}, err
	})
	n.Register(ScreenExpenses, func(ctx context.Context, p Params) (View, error) {
		if p.EntryID != 0 {
			res, v, err := s.Expenses.Edit(ctx, p.EntryID)
			return View{Result: res, Data: v}, err
		}
		v, err := s.Expenses.Load(ctx)
		return View{Data: v}, err
	})
	n.Register(ScreenReport, func(ctx context.Context, _ Params) (View, error) {
		v, err := s.Report.Load(ctx)
		return View{Data: v}, err
	})
	return n
}

// Register adds or replaces a screen.
func (n *Navigator) Register(name Screen, load Loader) {
	n.screens[name] = load
}

// Has reports whether name is registered.
func (n *Navigator) Has(name Screen) bool {
	_, ok := n.screens[name]
	return ok
}

// Go loads the named screen.
func (n *Navigator) Go(ctx context.Context, name Screen, p Params) (View, error) {
	load, ok := n.screens[name]
	if !ok {
		return View{}, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	v, err := load(ctx, p)
	if err != nil {
		return View{}, fmt.Errorf("open %s: %w", name, err)
	}
	v.Screen = name
	return v, nil
}

// Screens lists registered names in sorted order.
func (n *Navigator) Screens() []Screen {
	names := make([]Screen, 0, len(n.screens))
	for name := range n.screens {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
