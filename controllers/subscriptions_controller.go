package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// SubscriptionsController обрабатывает запросы подписок (/subscriptions/api).
type SubscriptionsController struct {
	errorWriter
	svc *services.SubscriptionService
}

// NewSubscriptionsController создает контроллер поверх сервиса svc.
func NewSubscriptionsController(svc *services.SubscriptionService, log logging.Logger) *SubscriptionsController {
	return &SubscriptionsController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GET /subscriptions/api/subscriptions?active_only=true&category=...
func (c *SubscriptionsController) GetSubscriptionsHandler(w http.ResponseWriter, r *http.Request) {
	activeOnly, err := queryFlag(r, "active_only")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	subs, err := c.svc.List(r.Context(), models.SubscriptionFilter{
		ActiveOnly: activeOnly,
		Category:   queryString(r, "category"),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// GetRemindersHandler возвращает активные подписки, о списании по которым пора напомнить.
// GET /subscriptions/api/subscriptions/reminders
func (c *SubscriptionsController) GetRemindersHandler(w http.ResponseWriter, r *http.Request) {
	subs, err := c.svc.Reminders(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, subs)
}

// POST /subscriptions/api/subscriptions
func (c *SubscriptionsController) CreateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	sub, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, sub)
}

// GET /subscriptions/api/subscriptions/{id}
func (c *SubscriptionsController) GetSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	sub, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// PUT /subscriptions/api/subscriptions/{id}
func (c *SubscriptionsController) UpdateSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateSubscriptionRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	sub, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}

// DELETE /subscriptions/api/subscriptions/{id}
func (c *SubscriptionsController) DeleteSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.Delete)
}

// RenewSubscriptionHandler переносит дату списания на следующий цикл.
// Каждый запрос - отдельное продление.
// POST /subscriptions/api/subscriptions/{id}/renew
func (c *SubscriptionsController) RenewSubscriptionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	sub, err := c.svc.Renew(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, sub)
}
