package data_test

import (
	"context"
	"testing"
	"time"

	"loom_server_go/common"
	"loom_server_go/data"
	"loom_server_go/data/datatest"
	"loom_server_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripDetails_ChildrenAndCascade(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()
	db := store.DB()

	trip := &models.Trip{
		Name: "Lisbon", Destination: "Portugal", Status: models.TripStatusPlanning,
		StartDate: models.NewDate(2025, time.June, 1), EndDate: models.NewDate(2025, time.June, 10),
	}
	require.NoError(t, data.CreateTrip(ctx, db, trip))

	details, err := data.GetTripDetails(ctx, db, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", details.StartDate.String())
	assert.NotNil(t, details.Itineraries)
	assert.Empty(t, details.Itineraries)
	assert.Empty(t, details.PackingLists)
	assert.Empty(t, details.Expenses)

	list := &models.PackingList{TripID: &trip.ID, Name: "Bags"}
	require.NoError(t, data.CreatePackingList(ctx, db, list))
	for _, name := range []string{"passport", "charger"} {
		require.NoError(t, data.CreatePackingItem(ctx, db, &models.PackingItem{PackingListID: list.ID, ItemName: name, Quantity: 1}))
	}
	start := models.TimeOfDay{Hour: 9}
	require.NoError(t, data.CreateItinerary(ctx, db, &models.Itinerary{
		TripID: trip.ID, DayNumber: 1, Date: trip.StartDate, Title: "Old town", StartTime: &start,
	}))
	require.NoError(t, data.CreateExpense(ctx, db, &models.TravelExpense{
		TripID: trip.ID, Description: "Hotel", Amount: 120.5, Date: trip.StartDate, Currency: models.DefaultCurrency,
	}))

	details, err = data.GetTripDetails(ctx, db, trip.ID)
	require.NoError(t, err)
	require.Len(t, details.PackingLists, 1)
	assert.Len(t, details.PackingLists[0].Items, 2)
	require.Len(t, details.Itineraries, 1)
	require.NotNil(t, details.Itineraries[0].StartTime)
	assert.Equal(t, "09:00:00", details.Itineraries[0].StartTime.String())
	assert.Nil(t, details.Itineraries[0].EndTime)
	require.Len(t, details.Expenses, 1)
	assert.Equal(t, 120.5, details.Expenses[0].Amount)

	require.NoError(t, data.DeleteTrip(ctx, db, trip.ID))

	_, err = data.GetTripDetails(ctx, db, trip.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	var rows int
	require.NoError(t, db.Get(&rows, `SELECT (SELECT COUNT(*) FROM packing_lists) + (SELECT COUNT(*) FROM packing_items)
		+ (SELECT COUNT(*) FROM itineraries) + (SELECT COUNT(*) FROM travel_expenses)`))
	assert.Zero(t, rows)
}

func TestListTrips_OrderAndStatus(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()
	db := store.DB()

	early := &models.Trip{Name: "a", Destination: "x", Status: models.TripStatusCompleted,
		StartDate: models.NewDate(2024, time.May, 1), EndDate: models.NewDate(2024, time.May, 3)}
	late := &models.Trip{Name: "b", Destination: "y", Status: models.TripStatusPlanning,
		StartDate: models.NewDate(2025, time.May, 1), EndDate: models.NewDate(2025, time.May, 3)}
	require.NoError(t, data.CreateTrip(ctx, db, early))
	require.NoError(t, data.CreateTrip(ctx, db, late))

	trips, err := data.ListTrips(ctx, db, models.TripFilter{})
	require.NoError(t, err)
	require.Len(t, trips, 2)
	assert.Equal(t, late.ID, trips[0].ID)

	trips, err = data.ListTrips(ctx, db, models.TripFilter{Status: datatest.Ptr(models.TripStatusCompleted)})
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, early.ID, trips[0].ID)
}

func TestListPackingLists_Filter(t *testing.T) {
	store := datatest.OpenStore(t)
	ctx := context.Background()
	db := store.DB()

	newTrip := func(name string) int64 {
		trip := &models.Trip{
			Name: name, Destination: "Spain", Status: models.TripStatusPlanning,
			StartDate: models.NewDate(2025, time.July, 1), EndDate: models.NewDate(2025, time.July, 5),
		}
		require.NoError(t, data.CreateTrip(ctx, db, trip))
		return trip.ID
	}
	madrid, seville := newTrip("Madrid"), newTrip("Seville")

	for _, list := range []*models.PackingList{
		{Name: "Weekend", IsTemplate: true},
		{TripID: &madrid, Name: "Madrid bags"},
		{TripID: &seville, Name: "Seville bags"},
	} {
		require.NoError(t, data.CreatePackingList(ctx, db, list))
	}

	names := func(lists []models.PackingList) []string {
		out := make([]string, len(lists))
		for i, l := range lists {
			out[i] = l.Name
		}
		return out
	}

	all, err := data.ListPackingLists(ctx, db, models.PackingListFilter{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Weekend", "Madrid bags", "Seville bags"}, names(all))

	templates, err := data.ListPackingLists(ctx, db, models.PackingListFilter{TemplatesOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"Weekend"}, names(templates))

	forTrip, err := data.ListPackingLists(ctx, db, models.PackingListFilter{TripID: &seville})
	require.NoError(t, err)
	assert.Equal(t, []string{"Seville bags"}, names(forTrip))
	assert.NotNil(t, forTrip[0].Items)

	none, err := data.ListPackingLists(ctx, db, models.PackingListFilter{TemplatesOnly: true, TripID: &madrid})
	require.NoError(t, err)
	assert.Empty(t, none)
}
