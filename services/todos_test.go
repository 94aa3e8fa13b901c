package services_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"loom_server_go/common"
	"loom_server_go/data/datatest"
	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeUpdate[T any](t *testing.T, body string) T {
	t.Helper()
	var req T
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTodoService_CreateDefaultsAndReminders(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTodoService(datatest.OpenStore(t), logging.Nop{})

	todo, err := svc.Create(ctx, models.CreateTodoRequest{
		Title: datatest.Ptr("Buy milk"),
		Reminders: []models.CreateTodoReminderRequest{
			{ReminderTime: datatest.Ptr("2025-06-01T09:00:00Z"), Message: datatest.Ptr("shop")},
			{ReminderTime: datatest.Ptr("2025-06-01T18:00:00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.Equal(t, models.TodoStatusPending, todo.Status)
	require.Len(t, todo.Reminders, 2)
	assert.Equal(t, todo.ID, todo.Reminders[0].TodoID)

	got, err := svc.Get(ctx, todo.ID)
	require.NoError(t, err)
	require.Len(t, got.Reminders, 2)
	assert.True(t, time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC).Equal(got.Reminders[1].ReminderTime))
}

func TestTodoService_CreateRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTodoService(datatest.OpenStore(t), logging.Nop{})

	cases := map[string]models.CreateTodoRequest{
		"missing title":    {},
		"unknown priority": {Title: datatest.Ptr("x"), Priority: datatest.Ptr("urgent")},
		"week day":         {Title: datatest.Ptr("x"), WeekDay: datatest.Ptr(7)},
		"bad due date":     {Title: datatest.Ptr("x"), DueDate: datatest.Ptr("tomorrow")},
		"bad reminder": {Title: datatest.Ptr("x"), Reminders: []models.CreateTodoReminderRequest{
			{ReminderTime: datatest.Ptr("soon")},
		}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Create(ctx, req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}

	todos, err := svc.List(ctx, models.TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestTodoService_CompletedAtOmissionVersusNull(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTodoService(datatest.OpenStore(t), logging.Nop{})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.SetClock(fixedClock(now))

	todo, err := svc.Create(ctx, models.CreateTodoRequest{Title: datatest.Ptr("Report")})
	require.NoError(t, err)

	// true - текущее время
	todo, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"completed_at": true}`))
	require.NoError(t, err)
	require.NotNil(t, todo.CompletedAt)
	assert.True(t, now.Equal(*todo.CompletedAt))

	// Смена статуса без ключа completed_at его не трогает.
	todo, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"status": "in_progress"}`))
	require.NoError(t, err)
	assert.Equal(t, models.TodoStatusInProgress, todo.Status)
	require.NotNil(t, todo.CompletedAt)

	// Явный null очищает.
	todo, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"completed_at": null}`))
	require.NoError(t, err)
	assert.Nil(t, todo.CompletedAt)

	todo, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"completed_at": "2025-05-30T08:15:00Z"}`))
	require.NoError(t, err)
	require.NotNil(t, todo.CompletedAt)
	assert.True(t, time.Date(2025, 5, 30, 8, 15, 0, 0, time.UTC).Equal(*todo.CompletedAt))

	got, err := svc.Get(ctx, todo.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CompletedAt)
	assert.True(t, todo.CompletedAt.Equal(*got.CompletedAt))

	_, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"completed_at": 42}`))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestTodoService_UpdateRequiredFieldNull(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTodoService(datatest.OpenStore(t), logging.Nop{})

	todo, err := svc.Create(ctx, models.CreateTodoRequest{Title: datatest.Ptr("x"), Description: datatest.Ptr("d")})
	require.NoError(t, err)

	_, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"title": null}`))
	assert.ErrorIs(t, err, common.ErrValidation)

	todo, err = svc.Update(ctx, todo.ID, decodeUpdate[models.UpdateTodoRequest](t, `{"description": null}`))
	require.NoError(t, err)
	assert.Equal(t, "x", todo.Title)
	assert.Nil(t, todo.Description)

	_, err = svc.Update(ctx, 999, decodeUpdate[models.UpdateTodoRequest](t, `{"title": "y"}`))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestTodoService_Reminders(t *testing.T) {
	ctx := context.Background()
	svc := services.NewTodoService(datatest.OpenStore(t), logging.Nop{})

	_, err := svc.AddReminder(ctx, 42, models.CreateTodoReminderRequest{ReminderTime: datatest.Ptr("2025-06-01T09:00:00Z")})
	assert.ErrorIs(t, err, common.ErrNotFound)

	todo, err := svc.Create(ctx, models.CreateTodoRequest{Title: datatest.Ptr("x")})
	require.NoError(t, err)

	reminder, err := svc.AddReminder(ctx, todo.ID, models.CreateTodoReminderRequest{ReminderTime: datatest.Ptr("2025-06-01T09:00:00Z")})
	require.NoError(t, err)
	assert.False(t, reminder.IsSent)

	require.NoError(t, svc.DeleteReminder(ctx, reminder.ID))
	assert.ErrorIs(t, svc.DeleteReminder(ctx, reminder.ID), common.ErrNotFound)
}
