package controllers

import (
	"context"
	"net/http"

	"loom_server_go/logging"
)

// Pinger проверяет доступность хранилища.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController отвечает на проверки живости и готовности сервера.
type HealthController struct {
	db  Pinger
	log logging.Logger
}

// NewHealthController создает контроллер проверок состояния; db используется только для готовности.
func NewHealthController(db Pinger, log logging.Logger) *HealthController {
	return &HealthController{db: db, log: log}
}

// HealthCheck godoc
// @Summary Проверка живости сервера
// @Description Всегда возвращает статус "healthy", пока процесс отвечает на запросы
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Статус healthy"
// @Router /health [get]
func (c *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ReadinessCheck godoc
// @Summary Проверка готовности сервера
// @Description Возвращает статус "ready", если база данных доступна
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Статус ready"
// @Failure 503 {object} map[string]string "База данных недоступна"
// @Router /health/ready [get]
func (c *HealthController) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := c.db.Ping(r.Context()); err != nil {
		c.log.Error(r.Context(), "база данных недоступна", "error", err)
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
