package run_maintenance

import (
	"context"
	"errors"
	"net/http"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/maintenance"
)

const (
	msgAlreadyRunning = "цикл обслуживания уже выполняется"
)

// RunMaintenanceResponse HTTP response model
type RunMaintenanceResponse struct {
	Started bool `json:"started"`
}

type Handler struct {
	maintainer Maintainer
	logger     Logger
}

func NewHandler(maintainer Maintainer, logger Logger) *Handler {
	return &Handler{
		maintainer: maintainer,
		logger:     logger,
	}
}

// Handle POST /api/v1/maintenance/run
// Цикл запускается в фоне: обход всех бизнесов может занять минуты,
// держать HTTP запрос открытым всё это время нет смысла
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.maintainer.Status().IsRunning {
		h.logger.Warn("POST /maintenance/run - Cycle already running")
		handlers.RespondError(w, http.StatusConflict, msgAlreadyRunning)
		return
	}

	go func() {
		// Собственный контекст: запрос-инициатор завершится раньше цикла.
		// Повторный запуск, проскочивший проверку выше, пропускается
		// самим maintainer
		if err := h.maintainer.RunCycle(context.Background()); err != nil && !errors.Is(err, maintenance.ErrAlreadyRunning) {
			h.logger.Error("POST /maintenance/run - Cycle failed: %v", err)
		}
	}()

	h.logger.Info("POST /maintenance/run - Manual maintenance cycle started")
	handlers.RespondJSON(w, http.StatusAccepted, RunMaintenanceResponse{Started: true})
}
