package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"loom_server_go/data/datatest"
	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Overview(t *testing.T) {
	ctx := context.Background()
	store := datatest.OpenStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	events := services.NewEventService(store, logging.Nop{})
	for _, start := range []string{
		"2025-06-01T11:00:00Z", // уже прошло
		"2025-06-01T13:00:00Z",
		"2025-06-08T23:59:00Z", // последний день окна
		"2025-06-09T00:00:00Z", // за окном
	} {
		_, err := events.Create(ctx, models.CreateEventRequest{Title: datatest.Ptr(start), StartTime: datatest.Ptr(start)})
		require.NoError(t, err)
	}

	todos := services.NewTodoService(store, logging.Nop{})
	for i := 0; i < 7; i++ {
		_, err := todos.Create(ctx, models.CreateTodoRequest{Title: datatest.Ptr(fmt.Sprintf("todo %d", i))})
		require.NoError(t, err)
	}
	_, err := todos.Create(ctx, models.CreateTodoRequest{Title: datatest.Ptr("done"), Status: datatest.Ptr(models.TodoStatusCompleted)})
	require.NoError(t, err)

	notes := services.NewNoteService(store, logging.Nop{})
	_, err = notes.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("archived"), IsArchived: datatest.Ptr(true)})
	require.NoError(t, err)
	_, err = notes.Create(ctx, models.CreateNoteRequest{Title: datatest.Ptr("recent")})
	require.NoError(t, err)

	dashboard := services.NewDashboardService(store, logging.Nop{})
	dashboard.SetClock(fixedClock(now))

	overview, err := dashboard.Overview(ctx)
	require.NoError(t, err)

	require.Len(t, overview.UpcomingEvents, 2)
	assert.Equal(t, "2025-06-01T13:00:00Z", overview.UpcomingEvents[0].Title)
	assert.Equal(t, "2025-06-08T23:59:00Z", overview.UpcomingEvents[1].Title)

	assert.Len(t, overview.PendingTodos, services.OverviewLimit)
	for _, todo := range overview.PendingTodos {
		assert.Equal(t, models.TodoStatusPending, todo.Status)
	}

	require.Len(t, overview.RecentNotes, 1)
	assert.Equal(t, "recent", overview.RecentNotes[0].Title)
}
