package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/models"
	"loom_server_go/services"
)

// NotesController обрабатывает запросы раздела /notes/api.
type NotesController struct {
	errorWriter
	svc *services.NoteService
}

// NewNotesController создает контроллер поверх сервиса svc.
func NewNotesController(svc *services.NoteService, log logging.Logger) *NotesController {
	return &NotesController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GetNotesHandler возвращает заметки по фильтрам category, search, archived.
// GET /notes/api/notes
func (c *NotesController) GetNotesHandler(w http.ResponseWriter, r *http.Request) {
	archived, err := queryFlag(r, "archived")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	notes, err := c.svc.List(r.Context(), models.NoteFilter{
		Category: queryString(r, "category"),
		Search:   queryString(r, "search"),
		Archived: archived,
	})
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, notes)
}

// CreateNoteHandler создает заметку.
// POST /notes/api/notes
func (c *NotesController) CreateNoteHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	note, err := c.svc.Create(r.Context(), req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, note)
}

// GET /notes/api/notes/{id}
func (c *NotesController) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	note, err := c.svc.Get(r.Context(), id)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// UpdateNoteHandler частично обновляет заметку.
// PUT /notes/api/notes/{id}
func (c *NotesController) UpdateNoteHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	var req models.UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	note, err := c.svc.Update(r.Context(), id, req)
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, note)
}

// DELETE /notes/api/notes/{id}
func (c *NotesController) DeleteNoteHandler(w http.ResponseWriter, r *http.Request) {
	c.deleteByID(w, r, c.svc.Delete)
}
