package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// TravelController обрабатывает запросы поездок, маршрута, списков вещей и расходов (/travel/api).
type TravelController struct {
	errorWriter
	svc *services.TravelService
}

// NewTravelController создает контроллер поверх сервиса svc.
func NewTravelController(svc *services.TravelService, log logging.Logger) *TravelController {
	return &TravelController{errorWriter: errorWriter{log: log}, svc: svc}
}

// --- Поездки ---

// GET /travel/api/trips?status=...
func (c *TravelController) GetTripsHandler(w http.ResponseWriter, r *http.Request) {
	trips, err := c.svc.ListTrips(r.Context(), models.TripFilter{Status: queryString(r, "status")})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trips)
}

// POST /travel/api/trips
func (c *TravelController) CreateTripHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	trip, err := c.svc.CreateTrip(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, trip)
}

// GetTripHandler возвращает поездку с маршрутом, списками вещей и расходами.
// GET /travel/api/trips/{id}
func (c *TravelController) GetTripHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	trip, err := c.svc.GetTrip(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// PUT /travel/api/trips/{id}
func (c *TravelController) UpdateTripHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateTripRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	trip, err := c.svc.UpdateTrip(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trip)
}

// DELETE /travel/api/trips/{id}
func (c *TravelController) DeleteTripHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeleteTrip)
}

// --- Маршрут ---

// POST /travel/api/trips/{id}/itinerary
func (c *TravelController) CreateItineraryHandler(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.CreateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	it, err := c.svc.AddItinerary(r.Context(), tripID, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, it)
}

// PUT /travel/api/itinerary/{id}
func (c *TravelController) UpdateItineraryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateItineraryRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	it, err := c.svc.UpdateItinerary(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, it)
}

// DELETE /travel/api/itinerary/{id}
func (c *TravelController) DeleteItineraryHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeleteItinerary)
}

// --- Списки вещей ---

// CreateTripPackingListHandler создает список вещей поездки вместе с вещами.
// POST /travel/api/trips/{id}/packing-list
func (c *TravelController) CreateTripPackingListHandler(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.CreatePackingListRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	list, err := c.svc.CreateTripPackingList(r.Context(), tripID, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// CopyTemplateHandler копирует шаблон в новый список вещей поездки.
// POST /travel/api/trips/{id}/packing-list/from-template/{template_id}
func (c *TravelController) CopyTemplateHandler(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	templateID, err := pathID(r, "template_id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	list, err := c.svc.CopyTemplate(r.Context(), tripID, templateID)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// GET /travel/api/packing-lists?templates_only=true
func (c *TravelController) GetPackingListsHandler(w http.ResponseWriter, r *http.Request) {
	templatesOnly, err := queryFlag(r, "templates_only")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	lists, err := c.svc.ListPackingLists(r.Context(), models.PackingListFilter{TemplatesOnly: templatesOnly})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

// CreateTemplateHandler создает шаблон списка вещей без привязки к поездке.
// POST /travel/api/packing-lists
func (c *TravelController) CreateTemplateHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePackingListRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	list, err := c.svc.CreateTemplate(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

// GET /travel/api/packing-lists/{id}
func (c *TravelController) GetPackingListHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	list, err := c.svc.GetPackingList(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

// DELETE /travel/api/packing-lists/{id}
func (c *TravelController) DeletePackingListHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeletePackingList)
}

// --- Вещи ---

// POST /travel/api/packing-lists/{id}/items
func (c *TravelController) CreatePackingItemHandler(w http.ResponseWriter, r *http.Request) {
	listID, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.PackingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	item, err := c.svc.AddPackingItem(r.Context(), listID, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

// UpdatePackingItemHandler изменяет вещь, в том числе отметку is_packed.
// PUT /travel/api/packing-items/{id}
func (c *TravelController) UpdatePackingItemHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdatePackingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	item, err := c.svc.UpdatePackingItem(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// DELETE /travel/api/packing-items/{id}
func (c *TravelController) DeletePackingItemHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeletePackingItem)
}

// --- Расходы ---

// POST /travel/api/trips/{id}/expenses
func (c *TravelController) CreateExpenseHandler(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	expense, err := c.svc.AddExpense(r.Context(), tripID, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, expense)
}

// DELETE /travel/api/expenses/{id}
func (c *TravelController) DeleteExpenseHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeleteExpense)
}
