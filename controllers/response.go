package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"loom_server_go/common"
	"loom_server_go/logging"
	"loom_server_go/models"

	"github.com/gorilla/mux"
)

// respondJSON пишет payload как JSON с указанным статусом.
func respondJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		// Заголовки уже отправлены, сообщить клиенту об ошибке кодирования нельзя.
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// respondError пишет {"error": message}.
func respondError(w http.ResponseWriter, statusCode int, message string) {
	respondJSON(w, statusCode, map[string]string{"error": message})
}

// errorWriter переводит ошибки сервисов в HTTP-ответы.
type errorWriter struct {
	log logging.Logger
}

// writeServiceError: NotFound -> 404, ошибка валидации -> 400, остальное -> 500.
// Подробности ошибок 500 пишутся только в лог.
func (e errorWriter) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *common.NotFoundError
	var ve *common.ValidationError
	switch {
	case errors.As(err, &nf):
		respondError(w, http.StatusNotFound, nf.Error())
	case errors.Is(err, common.ErrNotFound):
		respondError(w, http.StatusNotFound, common.ErrNotFound.Error())
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, ve.Error())
	default:
		e.log.Error(r.Context(), "ошибка обработки запроса", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON читает тело запроса в dst. Некорректное тело - ошибка валидации (400).
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.Invalid("", "invalid JSON body: %v", err)
	}
	return nil
}

// pathID читает числовую переменную маршрута; маршруты ограничивают ее шаблоном [0-9]+.
func pathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, common.Invalid(name, "invalid id %q", raw)
	}
	return id, nil
}

// queryString возвращает nil для отсутствующего или пустого параметра.
func queryString(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

// queryBool принимает true/false без учета регистра.
func queryBool(r *http.Request, key string) (*bool, error) {
	v := r.URL.Query().Get(key)
	switch strings.ToLower(v) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, common.Invalid(key, "must be true or false, got %q", v)
}

func queryFlag(r *http.Request, key string) (bool, error) {
	b, err := queryBool(r, key)
	if err != nil || b == nil {
		return false, err
	}
	return *b, nil
}

func queryLimit(r *http.Request) (uint64, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, common.Invalid("limit", "must be a non-negative integer, got %q", v)
	}
	return n, nil
}

func queryTime(r *http.Request, key string) (*time.Time, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil, nil
	}
	t, err := models.ParseTimestamp(v)
	if err != nil {
		return nil, common.Invalid(key, "invalid ISO-8601 timestamp %q", v)
	}
	return &t, nil
}

// deleteByID - общий обработчик DELETE .../{id}: 204 без тела при успехе.
func (e errorWriter) deleteByID(w http.ResponseWriter, r *http.Request, del func(ctx context.Context, id int64) error) {
	id, err := pathID(r, "id")
	if err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	if err := del(r.Context(), id); err != nil {
		e.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
