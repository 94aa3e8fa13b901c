package models

import "time"

// Статусы поездки.
const (
	TripStatusPlanning  = "planning"
	TripStatusConfirmed = "confirmed"
	TripStatusCompleted = "completed"
	TripStatusCancelled = "cancelled"
)

// TripStatuses - допустимые значения статуса поездки.
var TripStatuses = []string{TripStatusPlanning, TripStatusConfirmed, TripStatusCompleted, TripStatusCancelled}

// Trip представляет поездку. Маршрут, списки вещей и расходы удаляются вместе с ней.
type Trip struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Destination string    `json:"destination" db:"destination"`
	Description *string   `json:"description" db:"description"`
	StartDate   Date      `json:"start_date" db:"start_date"`
	EndDate     Date      `json:"end_date" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	Budget      *float64  `json:"budget" db:"budget"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TripDetails - поездка вместе со всеми дочерними записями (ответ GET по ID).
type TripDetails struct {
	Trip
	Itineraries  []Itinerary     `json:"itineraries"`
	PackingLists []PackingList   `json:"packing_lists"`
	Expenses     []TravelExpense `json:"expenses"`
}

// Itinerary - пункт маршрута на конкретный день поездки.
type Itinerary struct {
	ID          int64      `json:"id" db:"id"`
	TripID      int64      `json:"trip_id" db:"trip_id"`
	DayNumber   int        `json:"day_number" db:"day_number"`
	Date        Date       `json:"date" db:"date"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description" db:"description"`
	Location    *string    `json:"location" db:"location"`
	StartTime   *TimeOfDay `json:"start_time" db:"start_time"`
	EndTime     *TimeOfDay `json:"end_time" db:"end_time"`
	Notes       *string    `json:"notes" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// PackingList - список вещей. Шаблоны не привязаны к поездке.
type PackingList struct {
	ID         int64         `json:"id" db:"id"`
	TripID     *int64        `json:"trip_id" db:"trip_id"`
	Name       string        `json:"name" db:"name"`
	IsTemplate bool          `json:"is_template" db:"is_template"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
	Items      []PackingItem `json:"items" db:"-"`
}

// PackingItem - вещь в списке.
type PackingItem struct {
	ID            int64   `json:"id" db:"id"`
	PackingListID int64   `json:"packing_list_id" db:"packing_list_id"`
	ItemName      string  `json:"item_name" db:"item_name"`
	Category      *string `json:"category" db:"category"`
	Quantity      int     `json:"quantity" db:"quantity"`
	IsPacked      bool    `json:"is_packed" db:"is_packed"`
	Notes         *string `json:"notes" db:"notes"`
}

// TravelExpense - расход в рамках поездки.
type TravelExpense struct {
	ID          int64     `json:"id" db:"id"`
	TripID      int64     `json:"trip_id" db:"trip_id"`
	Description string    `json:"description" db:"description"`
	Amount      float64   `json:"amount" db:"amount"`
	Category    *string   `json:"category" db:"category"`
	Date        Date      `json:"date" db:"date"`
	Currency    string    `json:"currency" db:"currency"`
	Notes       *string   `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TripFilter - параметры выборки поездок.
type TripFilter struct {
	Status *string
}

// PackingListFilter - параметры выборки списков вещей.
type PackingListFilter struct {
	TemplatesOnly bool
	TripID        *int64
}

// CreateTripRequest - тело запроса на создание поездки.
type CreateTripRequest struct {
	Name        *string  `json:"name"`
	Destination *string  `json:"destination"`
	Description *string  `json:"description"`
	StartDate   *string  `json:"start_date"`
	EndDate     *string  `json:"end_date"`
	Status      *string  `json:"status"`
	Budget      *float64 `json:"budget"`
}

// UpdateTripRequest - тело запроса на частичное обновление поездки.
type UpdateTripRequest struct {
	Name        Optional[string]  `json:"name"`
	Destination Optional[string]  `json:"destination"`
	Description Optional[string]  `json:"description"`
	StartDate   Optional[string]  `json:"start_date"`
	EndDate     Optional[string]  `json:"end_date"`
	Status      Optional[string]  `json:"status"`
	Budget      Optional[float64] `json:"budget"`
}

// CreateItineraryRequest - тело запроса на добавление пункта маршрута.
type CreateItineraryRequest struct {
	DayNumber   *int    `json:"day_number"`
	Date        *string `json:"date"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	Notes       *string `json:"notes"`
}

// UpdateItineraryRequest - тело запроса на изменение пункта маршрута.
type UpdateItineraryRequest struct {
	DayNumber   Optional[int]    `json:"day_number"`
	Date        Optional[string] `json:"date"`
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Location    Optional[string] `json:"location"`
	StartTime   Optional[string] `json:"start_time"`
	EndTime     Optional[string] `json:"end_time"`
	Notes       Optional[string] `json:"notes"`
}

// PackingItemRequest - вещь в запросе на создание списка или отдельный POST.
type PackingItemRequest struct {
	ItemName *string `json:"item_name"`
	Category *string `json:"category"`
	Quantity *int    `json:"quantity"`
	IsPacked *bool   `json:"is_packed"`
	Notes    *string `json:"notes"`
}

// CreatePackingListRequest - тело запроса на создание списка вещей.
type CreatePackingListRequest struct {
	Name       *string              `json:"name"`
	IsTemplate *bool                `json:"is_template"`
	Items      []PackingItemRequest `json:"items"`
}

// UpdatePackingItemRequest - тело запроса на изменение вещи (в т.ч. отметка "упаковано").
type UpdatePackingItemRequest struct {
	ItemName Optional[string] `json:"item_name"`
	Category Optional[string] `json:"category"`
	Quantity Optional[int]    `json:"quantity"`
	IsPacked Optional[bool]   `json:"is_packed"`
	Notes    Optional[string] `json:"notes"`
}

// CreateExpenseRequest - тело запроса на добавление расхода.
type CreateExpenseRequest struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        *string  `json:"date"`
	Currency    *string  `json:"currency"`
	Notes       *string  `json:"notes"`
}
