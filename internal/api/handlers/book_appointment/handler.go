package book_appointment

import (
	"errors"
	"net/http"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/api/handlers"
	bookAppointment "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/book_appointment"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidStartTime     = "некорректный формат времени начала, ожидается RFC3339"
	msgBusinessNotFound     = "бизнес не найден"
	msgServiceNotFound      = "услуга не найдена"
	msgSlotConflict         = "выбранный временной слот уже занят"
	msgOutsideBusinessHours = "запрошенное время вне рабочих часов бизнеса"
	msgInvalidDuration      = "некорректная длительность записи"
)

type Handler struct {
	useCase BookAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase BookAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BookAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени начала)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse start time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, bookAppointment.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: business_id=%d, start=%s", req.BusinessID, req.StartUTC)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, bookAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /bookings - Outside business hours: business_id=%d, start=%s", req.BusinessID, req.StartUTC)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgOutsideBusinessHours)

		case errors.Is(err, bookAppointment.ErrBusinessNotFound):
			h.logger.Warn("POST /bookings - Business not found: business_id=%d", req.BusinessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, bookAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: business_id=%d, service=%q", req.BusinessID, req.ServiceName)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, bookAppointment.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: business_id=%d, duration=%d", req.BusinessID, req.DurationMinutes)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, bookAppointment.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to book appointment: business_id=%d, error=%v", req.BusinessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Appointment created: appointment_id=%d, business_id=%d",
		result.Appointment.ID, req.BusinessID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
