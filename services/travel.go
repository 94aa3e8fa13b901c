package services

import (
	"context"
	"fmt"

	"loom_server_go/common"
	"loom_server_go/data"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/jmoiron/sqlx"
)

// DefaultPackingQuantity - количество вещи по умолчанию.
const DefaultPackingQuantity = 1

// TravelService управляет поездками, маршрутом, списками вещей и расходами.
type TravelService struct {
	base
}

func NewTravelService(store *data.Store, log logging.Logger) *TravelService {
	return &TravelService{base: newBase(store, log, "travel")}
}

// --- Поездки ---

func (s *TravelService) ListTrips(ctx context.Context, f models.TripFilter) ([]models.Trip, error) {
	if f.Status != nil {
		if err := oneOf("status", *f.Status, models.TripStatuses); err != nil {
			return nil, err
		}
	}
	return data.ListTrips(ctx, s.store.DB(), f)
}

// GetTrip возвращает поездку со всеми дочерними записями.
func (s *TravelService) GetTrip(ctx context.Context, id int64) (*models.TripDetails, error) {
	return data.GetTripDetails(ctx, s.store.DB(), id)
}

func (s *TravelService) CreateTrip(ctx context.Context, req models.CreateTripRequest) (*models.Trip, error) {
	name, err := requiredString("name", req.Name)
	if err != nil {
		return nil, err
	}
	destination, err := requiredString("destination", req.Destination)
	if err != nil {
		return nil, err
	}
	start, err := parseRequiredDate("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseRequiredDate("end_date", req.EndDate)
	if err != nil {
		return nil, err
	}
	status, err := enumOrDefault("status", req.Status, models.TripStatusPlanning, models.TripStatuses)
	if err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:        name,
		Destination: destination,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Status:      status,
		Budget:      req.Budget,
	}
	if err := validateTrip(trip); err != nil {
		return nil, err
	}
	if err := data.CreateTrip(ctx, s.store.DB(), trip); err != nil {
		return nil, fmt.Errorf("TravelService.CreateTrip: %w", err)
	}
	s.log.Debug(ctx, "поездка создана", "id", trip.ID)
	return trip, nil
}

func (s *TravelService) UpdateTrip(ctx context.Context, id int64, req models.UpdateTripRequest) (*models.Trip, error) {
	var trip *models.Trip
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if trip, err = data.GetTripByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("name", req.Name, &trip.Name); err != nil {
			return err
		}
		if err := setRequiredString("destination", req.Destination, &trip.Destination); err != nil {
			return err
		}
		setNullable(req.Description, &trip.Description)
		if err := setRequiredDate("start_date", req.StartDate, &trip.StartDate); err != nil {
			return err
		}
		if err := setRequiredDate("end_date", req.EndDate, &trip.EndDate); err != nil {
			return err
		}
		if err := setRequiredEnum("status", req.Status, models.TripStatuses, &trip.Status); err != nil {
			return err
		}
		setNullable(req.Budget, &trip.Budget)
		if err := validateTrip(trip); err != nil {
			return err
		}
		return data.UpdateTrip(ctx, tx, trip)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.UpdateTrip: %w", err)
	}
	return trip, nil
}

// DeleteTrip удаляет поездку вместе с маршрутом, списками вещей и расходами.
func (s *TravelService) DeleteTrip(ctx context.Context, id int64) error {
	return data.DeleteTrip(ctx, s.store.DB(), id)
}

func validateTrip(trip *models.Trip) error {
	if trip.EndDate.Before(trip.StartDate.Time) {
		return common.Invalid("end_date", "must not be before start_date")
	}
	if trip.Budget != nil && *trip.Budget < 0 {
		return common.Invalid("budget", "must not be negative")
	}
	return nil
}

// --- Маршрут ---

func (s *TravelService) AddItinerary(ctx context.Context, tripID int64, req models.CreateItineraryRequest) (*models.Itinerary, error) {
	if req.DayNumber == nil {
		return nil, common.Required("day_number")
	}
	if err := positive("day_number", *req.DayNumber); err != nil {
		return nil, err
	}
	date, err := parseRequiredDate("date", req.Date)
	if err != nil {
		return nil, err
	}
	title, err := requiredString("title", req.Title)
	if err != nil {
		return nil, err
	}
	start, err := parseOptionalTimeOfDay("start_time", req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTimeOfDay("end_time", req.EndTime)
	if err != nil {
		return nil, err
	}

	it := &models.Itinerary{
		TripID:      tripID,
		DayNumber:   *req.DayNumber,
		Date:        date,
		Title:       title,
		Description: req.Description,
		Location:    req.Location,
		StartTime:   start,
		EndTime:     end,
		Notes:       req.Notes,
	}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := data.GetTripByID(ctx, tx, tripID); err != nil {
			return err
		}
		return data.CreateItinerary(ctx, tx, it)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.AddItinerary: %w", err)
	}
	return it, nil
}

func (s *TravelService) UpdateItinerary(ctx context.Context, id int64, req models.UpdateItineraryRequest) (*models.Itinerary, error) {
	var it *models.Itinerary
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if it, err = data.GetItineraryByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequired("day_number", req.DayNumber, &it.DayNumber); err != nil {
			return err
		}
		if err := positive("day_number", it.DayNumber); err != nil {
			return err
		}
		if err := setRequiredDate("date", req.Date, &it.Date); err != nil {
			return err
		}
		if err := setRequiredString("title", req.Title, &it.Title); err != nil {
			return err
		}
		setNullable(req.Description, &it.Description)
		setNullable(req.Location, &it.Location)
		if err := setNullableTimeOfDay("start_time", req.StartTime, &it.StartTime); err != nil {
			return err
		}
		if err := setNullableTimeOfDay("end_time", req.EndTime, &it.EndTime); err != nil {
			return err
		}
		setNullable(req.Notes, &it.Notes)
		return data.UpdateItinerary(ctx, tx, it)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.UpdateItinerary: %w", err)
	}
	return it, nil
}

func (s *TravelService) DeleteItinerary(ctx context.Context, id int64) error {
	return data.DeleteItinerary(ctx, s.store.DB(), id)
}

// --- Списки вещей ---

// CreateTripPackingList создает список вещей поездки вместе с вещами.
// Без имени список называется "<имя поездки> Packing List".
func (s *TravelService) CreateTripPackingList(ctx context.Context, tripID int64, req models.CreatePackingListRequest) (*models.PackingList, error) {
	if req.IsTemplate != nil && *req.IsTemplate {
		return nil, common.Invalid("is_template", "packing lists created for a trip cannot be templates")
	}
	items, err := newPackingItems(req.Items)
	if err != nil {
		return nil, err
	}

	list := &models.PackingList{TripID: &tripID}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		trip, err := data.GetTripByID(ctx, tx, tripID)
		if err != nil {
			return err
		}
		list.Name = trip.Name + " Packing List"
		if req.Name != nil && *req.Name != "" {
			list.Name = *req.Name
		}
		return createPackingList(ctx, tx, list, items)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.CreateTripPackingList: %w", err)
	}
	s.log.Debug(ctx, "список вещей создан", "id", list.ID, "trip_id", tripID, "items", len(list.Items))
	return list, nil
}

// CreateTemplate создает шаблон списка вещей, не привязанный к поездке.
func (s *TravelService) CreateTemplate(ctx context.Context, req models.CreatePackingListRequest) (*models.PackingList, error) {
	name, err := requiredString("name", req.Name)
	if err != nil {
		return nil, err
	}
	if req.IsTemplate != nil && !*req.IsTemplate {
		return nil, common.Invalid("is_template", "packing lists without a trip must be templates")
	}
	items, err := newPackingItems(req.Items)
	if err != nil {
		return nil, err
	}

	list := &models.PackingList{Name: name, IsTemplate: true}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		return createPackingList(ctx, tx, list, items)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.CreateTemplate: %w", err)
	}
	return list, nil
}

// CopyTemplate копирует шаблон со всеми вещами в новый список поездки.
// Скопированные вещи не отмечены как упакованные.
func (s *TravelService) CopyTemplate(ctx context.Context, tripID, templateID int64) (*models.PackingList, error) {
	list := &models.PackingList{TripID: &tripID}
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := data.GetTripByID(ctx, tx, tripID); err != nil {
			return err
		}
		tmpl, err := data.GetPackingListByID(ctx, tx, templateID)
		if err != nil {
			return err
		}
		if !tmpl.IsTemplate {
			return common.Invalid("template_id", "packing list %d is not a template", templateID)
		}
		list.Name = tmpl.Name
		items := make([]models.PackingItem, len(tmpl.Items))
		for i, item := range tmpl.Items {
			items[i] = models.PackingItem{
				ItemName: item.ItemName,
				Category: item.Category,
				Quantity: item.Quantity,
				Notes:    item.Notes,
			}
		}
		return createPackingList(ctx, tx, list, items)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.CopyTemplate: %w", err)
	}
	s.log.Info(ctx, "шаблон скопирован в поездку", "template_id", templateID, "trip_id", tripID, "list_id", list.ID)
	return list, nil
}

// ListPackingLists возвращает списки вещей; TemplatesOnly оставляет только шаблоны.
func (s *TravelService) ListPackingLists(ctx context.Context, f models.PackingListFilter) ([]models.PackingList, error) {
	return data.ListPackingLists(ctx, s.store.DB(), f)
}

func (s *TravelService) GetPackingList(ctx context.Context, id int64) (*models.PackingList, error) {
	return data.GetPackingListByID(ctx, s.store.DB(), id)
}

func (s *TravelService) DeletePackingList(ctx context.Context, id int64) error {
	return data.DeletePackingList(ctx, s.store.DB(), id)
}

func createPackingList(ctx context.Context, tx *sqlx.Tx, list *models.PackingList, items []models.PackingItem) error {
	if err := data.CreatePackingList(ctx, tx, list); err != nil {
		return err
	}
	for i := range items {
		items[i].PackingListID = list.ID
		if err := data.CreatePackingItem(ctx, tx, &items[i]); err != nil {
			return err
		}
	}
	list.Items = items
	return nil
}

// --- Вещи ---

func (s *TravelService) AddPackingItem(ctx context.Context, listID int64, req models.PackingItemRequest) (*models.PackingItem, error) {
	item, err := newPackingItem("", req)
	if err != nil {
		return nil, err
	}
	item.PackingListID = listID
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := data.GetPackingListByID(ctx, tx, listID); err != nil {
			return err
		}
		return data.CreatePackingItem(ctx, tx, &item)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.AddPackingItem: %w", err)
	}
	return &item, nil
}

// UpdatePackingItem изменяет вещь, в том числе отметку "упаковано".
func (s *TravelService) UpdatePackingItem(ctx context.Context, id int64, req models.UpdatePackingItemRequest) (*models.PackingItem, error) {
	var item *models.PackingItem
	err := s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		if item, err = data.GetPackingItemByID(ctx, tx, id); err != nil {
			return err
		}
		if err := setRequiredString("item_name", req.ItemName, &item.ItemName); err != nil {
			return err
		}
		setNullable(req.Category, &item.Category)
		if err := setRequired("quantity", req.Quantity, &item.Quantity); err != nil {
			return err
		}
		if err := positive("quantity", item.Quantity); err != nil {
			return err
		}
		if err := setRequired("is_packed", req.IsPacked, &item.IsPacked); err != nil {
			return err
		}
		setNullable(req.Notes, &item.Notes)
		return data.UpdatePackingItem(ctx, tx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.UpdatePackingItem: %w", err)
	}
	return item, nil
}

func (s *TravelService) DeletePackingItem(ctx context.Context, id int64) error {
	return data.DeletePackingItem(ctx, s.store.DB(), id)
}

func newPackingItems(reqs []models.PackingItemRequest) ([]models.PackingItem, error) {
	items := make([]models.PackingItem, 0, len(reqs))
	for i, r := range reqs {
		item, err := newPackingItem(fmt.Sprintf("items[%d].", i), r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func newPackingItem(prefix string, req models.PackingItemRequest) (models.PackingItem, error) {
	name, err := requiredString(prefix+"item_name", req.ItemName)
	if err != nil {
		return models.PackingItem{}, err
	}
	quantity := orDefault(req.Quantity, DefaultPackingQuantity)
	if err := positive(prefix+"quantity", quantity); err != nil {
		return models.PackingItem{}, err
	}
	return models.PackingItem{
		ItemName: name,
		Category: req.Category,
		Quantity: quantity,
		IsPacked: orDefault(req.IsPacked, false),
		Notes:    req.Notes,
	}, nil
}

// --- Расходы ---

func (s *TravelService) AddExpense(ctx context.Context, tripID int64, req models.CreateExpenseRequest) (*models.TravelExpense, error) {
	description, err := requiredString("description", req.Description)
	if err != nil {
		return nil, err
	}
	if req.Amount == nil {
		return nil, common.Required("amount")
	}
	date, err := parseRequiredDate("date", req.Date)
	if err != nil {
		return nil, err
	}

	expense := &models.TravelExpense{
		TripID:      tripID,
		Description: description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        date,
		Currency:    orDefault(req.Currency, models.DefaultCurrency),
		Notes:       req.Notes,
	}
	if expense.Currency == "" {
		expense.Currency = models.DefaultCurrency
	}
	err = s.store.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := data.GetTripByID(ctx, tx, tripID); err != nil {
			return err
		}
		return data.CreateExpense(ctx, tx, expense)
	})
	if err != nil {
		return nil, fmt.Errorf("TravelService.AddExpense: %w", err)
	}
	return expense, nil
}

func (s *TravelService) DeleteExpense(ctx context.Context, id int64) error {
	return data.DeleteExpense(ctx, s.store.DB(), id)
}
