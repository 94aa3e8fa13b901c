package services

import (
	"context"
	"fmt"
	"time"

	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"golang.org/x/sync/errgroup"
)

const (
	// OverviewLimit - сколько записей каждого вида попадает в сводку.
	OverviewLimit = 5
	// OverviewDays - горизонт ближайших событий в днях, считая от сегодняшнего.
	OverviewDays = 7
)

// DashboardService собирает сводку для главной страницы.
type DashboardService struct {
	base
}

func NewDashboardService(store *data.Store, log logging.Logger) *DashboardService {
	return &DashboardService{base: newBase(store, log, "dashboard")}
}

// Overview выполняет три независимые выборки параллельно:
// ближайшие события (до конца дня today+7), незавершенные задачи и последние заметки.
func (s *DashboardService) Overview(ctx context.Context) (*models.Overview, error) {
	now := s.now()
	horizon := models.DateOf(now).AddDays(OverviewDays + 1).Add(-time.Microsecond)
	db := s.store.DB()

	var overview models.Overview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := data.ListEvents(gctx, db, models.EventFilter{Start: &now, End: &horizon, Limit: OverviewLimit})
		if err != nil {
			return err
		}
		overview.UpcomingEvents = events
		return nil
	})
	g.Go(func() error {
		pending := models.TodoStatusPending
		todos, err := data.ListTodos(gctx, db, models.TodoFilter{Status: &pending, Limit: OverviewLimit})
		if err != nil {
			return err
		}
		overview.PendingTodos = todos
		return nil
	})
	g.Go(func() error {
		notes, err := data.ListNotes(gctx, db, models.NoteFilter{Recent: true, Limit: OverviewLimit})
		if err != nil {
			return err
		}
		overview.RecentNotes = notes
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("DashboardService.Overview: %w", err)
	}
	return &overview, nil
}
