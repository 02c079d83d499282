package maintenance_status

import (
	"net/http"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// MaintenanceStatusResponse HTTP response model
type MaintenanceStatusResponse struct {
	LastCleanup    *string `json:"lastCleanup,omitempty"`
	LastGeneration *string `json:"lastGeneration,omitempty"`
	IsRunning      bool    `json:"isRunning"`
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

// Handle GET /api/v1/maintenance/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := h.maintainer.Status()
	handlers.RespondJSON(w, http.StatusOK, fromDomainStatus(status))
}

func fromDomainStatus(status domain.MaintenanceStatus) *MaintenanceStatusResponse {
	resp := &MaintenanceStatusResponse{
		IsRunning: status.IsRunning,
	}

	if status.LastCleanup != nil {
		formatted := status.LastCleanup.Format(time.RFC3339)
		resp.LastCleanup = &formatted
	}
	if status.LastGeneration != nil {
		formatted := status.LastGeneration.Format(time.RFC3339)
		resp.LastGeneration = &formatted
	}

	return resp
}
