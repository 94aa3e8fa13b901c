package services_test

import (
	"context"
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

func newSubscription(name, cycle, next string) models.CreateSubscriptionRequest {
	return models.CreateSubscriptionRequest{
		Name:            datatest.Ptr(name),
		Cost:            datatest.Ptr(9.99),
		BillingCycle:    datatest.Ptr(cycle),
		NextBillingDate: datatest.Ptr(next),
	}
}

func TestSubscriptionService_CreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSubscriptionService(datatest.OpenStore(t), logging.Nop{})

	sub, err := svc.Create(ctx, newSubscription("Music", "monthly", "2025-06-10"))
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCurrency, sub.Currency)
	assert.Equal(t, models.DefaultReminderDaysBefore, sub.ReminderDaysBefore)
	assert.True(t, sub.IsActive)
	assert.True(t, sub.AutoRenew)
	assert.Equal(t, "2025-06-07", sub.ReminderDate.String())

	got, err := svc.Get(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-10", got.NextBillingDate.String())
	assert.Equal(t, "2025-06-07", got.ReminderDate.String())
}

func TestSubscriptionService_CustomCycleRequiresDays(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSubscriptionService(datatest.OpenStore(t), logging.Nop{})

	_, err := svc.Create(ctx, newSubscription("Box", "custom", "2025-06-10"))
	require.ErrorIs(t, err, common.ErrValidation)
	var ve *common.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "custom_cycle_days", ve.Field)

	req := newSubscription("Box", "custom", "2025-06-10")
	req.CustomCycleDays = datatest.Ptr(0)
	_, err = svc.Create(ctx, req)
	assert.ErrorIs(t, err, common.ErrValidation)

	req.CustomCycleDays = datatest.Ptr(10)
	sub, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Update(ctx, sub.ID, decodeUpdate[models.UpdateSubscriptionRequest](t, `{"custom_cycle_days": null}`))
	assert.ErrorIs(t, err, common.ErrValidation)

	monthly, err := svc.Create(ctx, newSubscription("Video", "monthly", "2025-06-10"))
	require.NoError(t, err)
	_, err = svc.Update(ctx, monthly.ID, decodeUpdate[models.UpdateSubscriptionRequest](t, `{"billing_cycle": "custom"}`))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(ctx, newSubscription("Video", "fortnightly", "2025-06-10"))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSubscriptionService_RenewAdvancesEveryCall(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSubscriptionService(datatest.OpenStore(t), logging.Nop{})

	sub, err := svc.Create(ctx, newSubscription("Music", "monthly", "2025-01-31"))
	require.NoError(t, err)

	sub, err = svc.Renew(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-02", sub.NextBillingDate.String())

	sub, err = svc.Renew(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01", sub.NextBillingDate.String())
	assert.Equal(t, "2025-03-29", sub.ReminderDate.String())

	_, err = svc.Renew(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubscriptionService_Reminders(t *testing.T) {
	ctx := context.Background()
	svc := services.NewSubscriptionService(datatest.OpenStore(t), logging.Nop{})
	svc.SetClock(fixedClock(time.Date(2025, 6, 8, 23, 0, 0, 0, time.UTC)))

	for _, req := range []models.CreateSubscriptionRequest{
		newSubscription("in window", "monthly", "2025-06-10"),
		newSubscription("due today", "monthly", "2025-06-08"),
		newSubscription("too early", "monthly", "2025-06-20"),
		newSubscription("window starts today", "weekly", "2025-06-11"),
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}
	inactive := newSubscription("inactive", "monthly", "2025-06-09")
	inactive.IsActive = datatest.Ptr(false)
	_, err := svc.Create(ctx, inactive)
	require.NoError(t, err)

	due, err := svc.Reminders(ctx)
	require.NoError(t, err)
	require.Len(t, due, 2)
	assert.Equal(t, "in window", due[0].Name)
	assert.Equal(t, "window starts today", due[1].Name)
	assert.Equal(t, "2025-06-08", due[1].ReminderDate.String())
}
