package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// EventsController обрабатывает запросы календаря (/calendar/api) и выборки ближайших и прошедших событий (/events/api).
type EventsController struct {
	errorWriter
	svc *services.EventService
}

// NewEventsController создает контроллер поверх сервиса svc.
func NewEventsController(svc *services.EventService, log logging.Logger) *EventsController {
	return &EventsController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GetEventsHandler возвращает события календаря в диапазоне [start, end] по start_time.
// GET /calendar/api/events?start=...&end=...&category=...
func (c *EventsController) GetEventsHandler(w http.ResponseWriter, r *http.Request) {
	start, err := queryTime(r, "start")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	end, err := queryTime(r, "end")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	events, err := c.svc.List(r.Context(), models.EventFilter{
		Start:    start,
		End:      end,
		Category: queryString(r, "category"),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// GetUpcomingEventsHandler - ближайшие события, limit по умолчанию 50.
// GET /events/api/events/upcoming
func (c *EventsController) GetUpcomingEventsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	events, err := c.svc.Upcoming(r.Context(), limit)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// GetPastEventsHandler - прошедшие события, последние первыми.
// GET /events/api/events/past
func (c *EventsController) GetPastEventsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	events, err := c.svc.Past(r.Context(), limit)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// POST /calendar/api/events
func (c *EventsController) CreateEventHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	event, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, event)
}

// GET /calendar/api/events/{id}
func (c *EventsController) GetEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	event, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// PUT /calendar/api/events/{id}
func (c *EventsController) UpdateEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateEventRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	event, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, event)
}

// DELETE /calendar/api/events/{id}
func (c *EventsController) DeleteEventHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.Delete)
}
