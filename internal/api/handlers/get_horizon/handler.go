package get_horizon

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	slotsService "github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

const (
	msgInvalidBusinessID = "некорректный идентификатор бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
)

// HorizonResponse HTTP response model
type HorizonResponse struct {
	BusinessID         int64   `json:"businessId"`
	FutureSlotCount    int     `json:"futureSlotCount"`
	FurthestFutureSlot *string `json:"furthestFutureSlot,omitempty"`
	HorizonDays        int     `json:"horizonDays"`
}

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/horizon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("GET /businesses/{id}/horizon - Invalid business ID: %s", vars["businessId"])
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	result, err := h.service.GetHorizon(r.Context(), businessID)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/horizon - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/horizon - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidBusinessID)

		default:
			h.logger.Error("GET /businesses/{id}/horizon - Failed to get horizon: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromServiceResponse(result))
}

func fromServiceResponse(resp *models.HorizonResponse) *HorizonResponse {
	out := &HorizonResponse{
		BusinessID:      resp.BusinessID,
		FutureSlotCount: resp.FutureSlotCount,
		HorizonDays:     resp.HorizonDays,
	}

	if resp.FurthestFutureSlot != nil {
		formatted := resp.FurthestFutureSlot.Format(time.RFC3339)
		out.FurthestFutureSlot = &formatted
	}

	return out
}
