package screens

import (
	"context"
	"fmt"

	"workday/internal/core"
)

// HomeView is the landing screen: today's headcount and the running totals.
type HomeView struct {
	Today        core.Date
	PresentToday int
	Report       core.Report
}

type Home struct {
	store Store
}

func (s *Home) Load(ctx context.Context) (HomeView, error) {
	today := core.Today()
	ids, err := s.store.PresentClientIDs(ctx, today)
	if err != nil {
		return HomeView{}, fmt.Errorf("load attendance: %w", err)
	}
	rep, err := s.store.Report(ctx)
	if err != nil {
		return HomeView{}, fmt.Errorf("load report: %w", err)
	}
	return HomeView{Today: today, PresentToday: len(ids), Report: rep}, nil
}
