package generate_slots

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	generateSlots "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
)

const (
	msgInvalidBusinessID  = "некорректный идентификатор бизнеса"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgInvalidSchedule    = "некорректная конфигурация расписания бизнеса"
	msgInvalidHorizon     = "некорректный горизонт генерации"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	metrics MetricsCollector
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, collector MetricsCollector, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		metrics: collector,
		logger:  logger,
	}
}

// Handle POST /api/v1/businesses/{businessId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("POST /slots/generate - Invalid business ID: %s", vars["businessId"])
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Тело опционально: регенерация с дефолтным горизонтом не требует параметров
	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateSlots.Request{
		BusinessID:  businessID,
		HorizonDays: req.HorizonDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrBusinessNotFound):
			h.logger.Warn("POST /slots/generate - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, generateSlots.ErrInvalidSchedule):
			h.logger.Warn("POST /slots/generate - Invalid schedule: business_id=%d, error=%v", businessID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidSchedule)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /slots/generate - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidHorizon)

		default:
			h.logger.Error("POST /slots/generate - Failed to generate slots: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.AddSlotsGenerated("api", result.SlotsCreated)

	h.logger.Info("POST /slots/generate - Slots regenerated: business_id=%d, created=%d, deleted=%d",
		businessID, result.SlotsCreated, result.SlotsDeleted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
