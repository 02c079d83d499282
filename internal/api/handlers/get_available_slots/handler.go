package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	getAvailableSlots "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/get_available_slots"
)

const (
	msgInvalidBusinessID = "некорректный идентификатор бизнеса"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration   = "некорректная длительность"
	msgBusinessNotFound  = "бизнес не найден"
	msgInvalidTimezone   = "некорректная таймзона в расписании бизнеса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/available-slots
// Query params: date (required, YYYY-MM-DD), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем businessId из URL
	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil || businessID <= 0 {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /businesses/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes из query параметров (опционально)
	durationMinutes := 0
	if durationStr := r.URL.Query().Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil || durationMinutes < 0 {
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid duration: %s", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(businessID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/available-slots - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidTimezone):
			h.logger.Error("GET /businesses/{id}/available-slots - Invalid timezone: business_id=%d, error=%v", businessID, err)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidTimezone)

		case errors.Is(err, getAvailableSlots.ErrInvalidDuration):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid duration: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate), errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /businesses/{id}/available-slots - Invalid input: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /businesses/{id}/available-slots - Failed to get slots: business_id=%d, error=%v", businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/available-slots - Candidates retrieved: business_id=%d, date=%s, count=%d",
		businessID, dateStr, len(result.Candidates))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
