package screens

import (
	"context"
	"fmt"

	"workday/internal/core"
	applog "workday/internal/log"
)

type AttendanceRow struct {
	Client  core.Client
	Present bool
}

type AttendanceView struct {
	Date    core.Date
	Rows    []AttendanceRow
	Present int
}

type Attendance struct {
	store  Store
	logger *applog.Logger
}

// Load lists every client with whether they are present on day. An empty day
// means today.
func (s *Attendance) Load(ctx context.Context, day string) (Result, AttendanceView, error) {
	date, ve := parseDay("date", day)
	if ve != nil {
		view, err := s.load(ctx, core.Today())
		return Invalid(ve), view, err
	}
	view, err := s.load(ctx, date)
	return Success(""), view, err
}

// Toggle moves one client to present or absent on day and reloads the list.
func (s *Attendance) Toggle(ctx context.Context, day string, clientID int64, present bool) (Result, AttendanceView, error) {
	date, ve := parseDay("date", day)
	if ve != nil {
		view, err := s.load(ctx, core.Today())
		return Invalid(ve), view, err
	}

	changed, err := s.store.ToggleAttendance(ctx, clientID, date, present)
	if err != nil {
		res, err := invalidOrErr(err, "client", clientID)
		if err != nil {
			return Result{}, AttendanceView{}, fmt.Errorf("toggle attendance: %w", err)
		}
		view, err := s.load(ctx, date)
		return res, view, err
	}

	msg := "Marked absent"
	if present {
		msg = "Marked present"
	}
	if !changed {
		msg = "No change"
	}
	view, err := s.load(ctx, date)
	return Success(msg), view, err
}

func (s *Attendance) load(ctx context.Context, date core.Date) (AttendanceView, error) {
	clients, err := s.store.ListClients(ctx, "")
	if err != nil {
		return AttendanceView{}, fmt.Errorf("load clients: %w", err)
	}
	ids, err := s.store.PresentClientIDs(ctx, date)
	if err != nil {
		return AttendanceView{}, fmt.Errorf("load attendance: %w", err)
	}
	present := make(map[int64]bool, len(ids))
	for _, id := range ids {
		present[id] = true
	}

	view := AttendanceView{Date: date, Rows: make([]AttendanceRow, len(clients))}
	for i, c := range clients {
		view.Rows[i] = AttendanceRow{Client: c, Present: present[c.ID]}
		if present[c.ID] {
			view.Present++
		}
	}
	return view, nil
}
