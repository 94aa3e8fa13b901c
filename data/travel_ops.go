package data

import (
	"context"
	"fmt"

	"loom_server_go/models"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const (
	tripColumns        = "id, name, destination, description, start_date, end_date, status, budget, created_at, updated_at"
	itineraryColumns   = "id, trip_id, day_number, date, title, description, location, start_time, end_time, notes, created_at"
	packingListColumns = "id, trip_id, name, is_template, created_at"
	packingItemColumns = "id, packing_list_id, item_name, category, quantity, is_packed, notes"
	expenseColumns     = "id, trip_id, description, amount, category, date, currency, notes, created_at"
)

// --- Поездки ---

// CreateTrip создает поездку.
func CreateTrip(ctx context.Context, db sqlx.ExtContext, trip *models.Trip) error {
	now := nowFunc()
	trip.CreatedAt = now
	trip.UpdatedAt = now

	query := `INSERT INTO trips (name, destination, description, start_date, end_date, status, budget, created_at, updated_at)
	          VALUES (:name, :destination, :description, :start_date, :end_date, :status, :budget, :created_at, :updated_at)`

	id, err := insert(ctx, db, query, trip)
	if err != nil {
		return fmt.Errorf("CreateTrip: ошибка вставки поездки: %w", err)
	}
	trip.ID = id
	return nil
}

// GetTripByID извлекает поездку без дочерних записей.
func GetTripByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Trip, error) {
	trip := &models.Trip{}
	if err := getOne(ctx, db, trip, "trip", id, `SELECT `+tripColumns+` FROM trips WHERE id = ?`); err != nil {
		return nil, fmt.Errorf("GetTripByID: ошибка получения поездки ID %d: %w", id, err)
	}
	return trip, nil
}

// GetTripDetails извлекает поездку с маршрутом, списками вещей (с вещами) и расходами.
func GetTripDetails(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.TripDetails, error) {
	trip, err := GetTripByID(ctx, db, id)
	if err != nil {
		return nil, err
	}
	details := &models.TripDetails{Trip: *trip}

	details.Itineraries = []models.Itinerary{}
	b := squirrel.Select(itineraryColumns).From("itineraries").
		Where(squirrel.Eq{"trip_id": id}).
		OrderBy("day_number ASC", "start_time ASC", "id ASC")
	if err := selectAll(ctx, db, &details.Itineraries, b); err != nil {
		return nil, fmt.Errorf("GetTripDetails: ошибка получения маршрута поездки ID %d: %w", id, err)
	}

	details.PackingLists, err = ListPackingLists(ctx, db, models.PackingListFilter{TripID: &id})
	if err != nil {
		return nil, fmt.Errorf("GetTripDetails: %w", err)
	}

	details.Expenses = []models.TravelExpense{}
	b = squirrel.Select(expenseColumns).From("travel_expenses").
		Where(squirrel.Eq{"trip_id": id}).
		OrderBy("date ASC", "id ASC")
	if err := selectAll(ctx, db, &details.Expenses, b); err != nil {
		return nil, fmt.Errorf("GetTripDetails: ошибка получения расходов поездки ID %d: %w", id, err)
	}
	return details, nil
}

// ListTrips возвращает поездки, новые (по дате начала) первыми.
func ListTrips(ctx context.Context, db sqlx.QueryerContext, f models.TripFilter) ([]models.Trip, error) {
	b := squirrel.Select(tripColumns).From("trips")
	if f.Status != nil {
		b = b.Where(squirrel.Eq{"status": *f.Status})
	}
	b = b.OrderBy("start_date DESC", "id DESC")

	trips := []models.Trip{}
	if err := selectAll(ctx, db, &trips, b); err != nil {
		return nil, fmt.Errorf("ListTrips: ошибка получения поездок: %w", err)
	}
	return trips, nil
}

// UpdateTrip сохраняет все поля поездки.
func UpdateTrip(ctx context.Context, db sqlx.ExtContext, trip *models.Trip) error {
	trip.UpdatedAt = nowFunc()

	query := `UPDATE trips SET
	            name = :name, destination = :destination, description = :description,
	            start_date = :start_date, end_date = :end_date, status = :status,
	            budget = :budget, updated_at = :updated_at
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, trip, "trip", trip.ID); err != nil {
		return fmt.Errorf("UpdateTrip: ошибка обновления поездки ID %d: %w", trip.ID, err)
	}
	return nil
}

// DeleteTrip удаляет поездку; маршрут, списки вещей и расходы удаляются каскадно.
func DeleteTrip(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "trips", "trip", id); err != nil {
		return fmt.Errorf("DeleteTrip: ошибка удаления поездки ID %d: %w", id, err)
	}
	return nil
}

// --- Маршрут ---

// CreateItinerary добавляет пункт маршрута к поездке it.TripID.
func CreateItinerary(ctx context.Context, db sqlx.ExtContext, it *models.Itinerary) error {
	it.CreatedAt = nowFunc()

	query := `INSERT INTO itineraries (trip_id, day_number, date, title, description, location, start_time, end_time, notes, created_at)
	          VALUES (:trip_id, :day_number, :date, :title, :description, :location, :start_time, :end_time, :notes, :created_at)`

	id, err := insert(ctx, db, query, it)
	if err != nil {
		return fmt.Errorf("CreateItinerary: ошибка вставки пункта маршрута для поездки ID %d: %w", it.TripID, err)
	}
	it.ID = id
	return nil
}

// GetItineraryByID извлекает пункт маршрута по ID.
func GetItineraryByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.Itinerary, error) {
	it := &models.Itinerary{}
	query := `SELECT ` + itineraryColumns + ` FROM itineraries WHERE id = ?`
	if err := getOne(ctx, db, it, "itinerary", id, query); err != nil {
		return nil, fmt.Errorf("GetItineraryByID: ошибка получения пункта маршрута ID %d: %w", id, err)
	}
	return it, nil
}

// UpdateItinerary сохраняет все поля пункта маршрута.
func UpdateItinerary(ctx context.Context, db sqlx.ExtContext, it *models.Itinerary) error {
	query := `UPDATE itineraries SET
	            day_number = :day_number, date = :date, title = :title, description = :description,
	            location = :location, start_time = :start_time, end_time = :end_time, notes = :notes
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, it, "itinerary", it.ID); err != nil {
		return fmt.Errorf("UpdateItinerary: ошибка обновления пункта маршрута ID %d: %w", it.ID, err)
	}
	return nil
}

// DeleteItinerary удаляет пункт маршрута.
func DeleteItinerary(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "itineraries", "itinerary", id); err != nil {
		return fmt.Errorf("DeleteItinerary: ошибка удаления пункта маршрута ID %d: %w", id, err)
	}
	return nil
}

// --- Списки вещей ---

// CreatePackingList создает список вещей без вещей.
func CreatePackingList(ctx context.Context, db sqlx.ExtContext, list *models.PackingList) error {
	list.CreatedAt = nowFunc()

	query := `INSERT INTO packing_lists (trip_id, name, is_template, created_at)
	          VALUES (:trip_id, :name, :is_template, :created_at)`

	id, err := insert(ctx, db, query, list)
	if err != nil {
		return fmt.Errorf("CreatePackingList: ошибка вставки списка вещей %q: %w", list.Name, err)
	}
	list.ID = id
	if list.Items == nil {
		list.Items = []models.PackingItem{}
	}
	return nil
}

// GetPackingListByID извлекает список вещей вместе с вещами.
func GetPackingListByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.PackingList, error) {
	list := &models.PackingList{}
	query := `SELECT ` + packingListColumns + ` FROM packing_lists WHERE id = ?`
	if err := getOne(ctx, db, list, "packing list", id, query); err != nil {
		return nil, fmt.Errorf("GetPackingListByID: ошибка получения списка вещей ID %d: %w", id, err)
	}
	lists := []models.PackingList{*list}
	if err := attachPackingItems(ctx, db, lists); err != nil {
		return nil, fmt.Errorf("GetPackingListByID: %w", err)
	}
	return &lists[0], nil
}

// ListPackingLists возвращает списки вещей вместе с вещами. Условия фильтра объединяются через AND.
func ListPackingLists(ctx context.Context, db sqlx.QueryerContext, f models.PackingListFilter) ([]models.PackingList, error) {
	b := squirrel.Select(packingListColumns).From("packing_lists")
	if f.TemplatesOnly {
		b = b.Where(squirrel.Eq{"is_template": true})
	}
	if f.TripID != nil {
		b = b.Where(squirrel.Eq{"trip_id": *f.TripID})
	}
	b = b.OrderBy("id ASC")

	lists := []models.PackingList{}
	if err := selectAll(ctx, db, &lists, b); err != nil {
		return nil, fmt.Errorf("ListPackingLists: ошибка получения списков вещей: %w", err)
	}
	if err := attachPackingItems(ctx, db, lists); err != nil {
		return nil, fmt.Errorf("ListPackingLists: %w", err)
	}
	return lists, nil
}

// DeletePackingList удаляет список вещей; вещи удаляются каскадно.
func DeletePackingList(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "packing_lists", "packing list", id); err != nil {
		return fmt.Errorf("DeletePackingList: ошибка удаления списка вещей ID %d: %w", id, err)
	}
	return nil
}

// CreatePackingItem добавляет вещь в список item.PackingListID.
func CreatePackingItem(ctx context.Context, db sqlx.ExtContext, item *models.PackingItem) error {
	query := `INSERT INTO packing_items (packing_list_id, item_name, category, quantity, is_packed, notes)
	          VALUES (:packing_list_id, :item_name, :category, :quantity, :is_packed, :notes)`

	id, err := insert(ctx, db, query, item)
	if err != nil {
		return fmt.Errorf("CreatePackingItem: ошибка вставки вещи %q в список ID %d: %w", item.ItemName, item.PackingListID, err)
	}
	item.ID = id
	return nil
}

// GetPackingItemByID извлекает вещь по ID.
func GetPackingItemByID(ctx context.Context, db sqlx.QueryerContext, id int64) (*models.PackingItem, error) {
	item := &models.PackingItem{}
	query := `SELECT ` + packingItemColumns + ` FROM packing_items WHERE id = ?`
	if err := getOne(ctx, db, item, "packing item", id, query); err != nil {
		return nil, fmt.Errorf("GetPackingItemByID: ошибка получения вещи ID %d: %w", id, err)
	}
	return item, nil
}

// UpdatePackingItem сохраняет все поля вещи.
func UpdatePackingItem(ctx context.Context, db sqlx.ExtContext, item *models.PackingItem) error {
	query := `UPDATE packing_items SET
	            item_name = :item_name, category = :category, quantity = :quantity,
	            is_packed = :is_packed, notes = :notes
	          WHERE id = :id`
	if err := updateNamed(ctx, db, query, item, "packing item", item.ID); err != nil {
		return fmt.Errorf("UpdatePackingItem: ошибка обновления вещи ID %d: %w", item.ID, err)
	}
	return nil
}

// DeletePackingItem удаляет вещь.
func DeletePackingItem(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "packing_items", "packing item", id); err != nil {
		return fmt.Errorf("DeletePackingItem: ошибка удаления вещи ID %d: %w", id, err)
	}
	return nil
}

func attachPackingItems(ctx context.Context, db sqlx.QueryerContext, lists []models.PackingList) error {
	if len(lists) == 0 {
		return nil
	}
	ids := make([]int64, len(lists))
	byID := make(map[int64]*models.PackingList, len(lists))
	for i := range lists {
		lists[i].Items = []models.PackingItem{}
		ids[i] = lists[i].ID
		byID[lists[i].ID] = &lists[i]
	}

	var items []models.PackingItem
	b := squirrel.Select(packingItemColumns).From("packing_items").
		Where(squirrel.Eq{"packing_list_id": ids}).OrderBy("id ASC")
	if err := selectAll(ctx, db, &items, b); err != nil {
		return fmt.Errorf("ошибка получения вещей: %w", err)
	}
	for _, item := range items {
		byID[item.PackingListID].Items = append(byID[item.PackingListID].Items, item)
	}
	return nil
}

// --- Расходы ---

// CreateExpense добавляет расход к поездке expense.TripID.
func CreateExpense(ctx context.Context, db sqlx.ExtContext, expense *models.TravelExpense) error {
	expense.CreatedAt = nowFunc()

	query := `INSERT INTO travel_expenses (trip_id, description, amount, category, date, currency, notes, created_at)
	          VALUES (:trip_id, :description, :amount, :category, :date, :currency, :notes, :created_at)`

	id, err := insert(ctx, db, query, expense)
	if err != nil {
		return fmt.Errorf("CreateExpense: ошибка вставки расхода для поездки ID %d: %w", expense.TripID, err)
	}
	expense.ID = id
	return nil
}

// DeleteExpense удаляет расход.
func DeleteExpense(ctx context.Context, db sqlx.ExecerContext, id int64) error {
	if err := deleteByID(ctx, db, "travel_expenses", "expense", id); err != nil {
		return fmt.Errorf("DeleteExpense: ошибка удаления расхода ID %d: %w", id, err)
	}
	return nil
}
