package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// TodosController обрабатывает запросы задач и напоминаний (/todos/api).
type TodosController struct {
	errorWriter
	svc *services.TodoService
}

// NewTodosController создает контроллер поверх сервиса svc.
func NewTodosController(svc *services.TodoService, log logging.Logger) *TodosController {
	return &TodosController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GetTodosHandler возвращает задачи по фильтрам status, priority, category.
// GET /todos/api/todos
func (c *TodosController) GetTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := c.svc.List(r.Context(), models.TodoFilter{
		Status:   queryString(r, "status"),
		Priority: queryString(r, "priority"),
		Category: queryString(r, "category"),
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todos)
}

// GET /todos/api/todos/weekly
func (c *TodosController) GetWeeklyTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := c.svc.Weekly(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todos)
}

// CreateTodoHandler создает задачу; напоминания из поля reminders создаются в той же транзакции.
// POST /todos/api/todos
func (c *TodosController) CreateTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	todo, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, todo)
}

// GET /todos/api/todos/{id}
func (c *TodosController) GetTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	todo, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// UpdateTodoHandler частично обновляет задачу.
// completed_at: null очищает, true - текущее время, строка ISO-8601 - указанное время.
// PUT /todos/api/todos/{id}
func (c *TodosController) UpdateTodoHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	todo, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, todo)
}

// DELETE /todos/api/todos/{id}
func (c *TodosController) DeleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.Delete)
}

// POST /todos/api/todos/{id}/reminders
func (c *TodosController) CreateReminderHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.CreateTodoReminderRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	reminder, err := c.svc.AddReminder(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, reminder)
}

// DELETE /todos/api/reminders/{id}
func (c *TodosController) DeleteReminderHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.DeleteReminder)
}
