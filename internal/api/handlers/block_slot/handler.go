package block_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	slotsService "github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots"
)

const (
	msgInvalidBusinessID  = "некорректный идентификатор бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartTime   = "некорректный формат времени начала, ожидается RFC3339"
	msgSlotNotFound       = "слот не найден"
	msgSlotInPast         = "нельзя изменить прошедший слот"
)

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

// Handle PATCH /api/v1/businesses/{businessId}/slots/block
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("PATCH /slots/block - Invalid business ID: %s", vars["businessId"])
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var req BlockSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/block - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(businessID)
	if err != nil {
		h.logger.Warn("PATCH /slots/block - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	result, err := h.service.SetBlocked(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/block - Slot not found: business_id=%d, start=%s", businessID, req.StartUTC)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotInPast):
			h.logger.Warn("PATCH /slots/block - Slot in past: business_id=%d, start=%s", businessID, req.StartUTC)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("PATCH /slots/block - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /slots/block - Failed to update slot: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/block - Slot updated: business_id=%d, slot_id=%d, blocked=%v",
		businessID, result.ID, result.IsBlocked)
	handlers.RespondJSON(w, http.StatusOK, FromServiceResponse(result))
}
