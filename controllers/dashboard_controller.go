package controllers

import (
	"net/http"

	"loom_server_go/logging"
	"loom_server_go/services"
)

// DashboardController отдает сводку для главной страницы (/api/overview).
type DashboardController struct {
	errorWriter
	svc *services.DashboardService
}

// NewDashboardController создает контроллер поверх сервиса svc.
func NewDashboardController(svc *services.DashboardService, log logging.Logger) *DashboardController {
	return &DashboardController{errorWriter: errorWriter{log: log}, svc: svc}
}

// GetOverviewHandler godoc
// @Summary Сводка для главной страницы
// @Description Ближайшие события на неделю, незавершенные задачи и последние заметки (по 5)
// @Tags Dashboard
// @Produce json
// @Router /api/overview [get]
func (c *DashboardController) GetOverviewHandler(w http.ResponseWriter, r *http.Request) {
	overview, err := c.svc.Overview(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, overview)
}
