package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	scheduleClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// UseCase use case получения доступных слотов для бронирования
// Доступность вычисляется вживую из слотов и активных записей: сами слоты
// при бронировании не мутируются
type UseCase struct {
	slotRepo       SlotRepository
	apptRepo       AppointmentRepository
	scheduleClient ScheduleStoreClient
	timeProvider   TimeProvider
	logger         Logger
	pageSize       int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	scheduleStoreClient ScheduleStoreClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		apptRepo:       apptRepo,
		scheduleClient: scheduleStoreClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
		pageSize:       domain.DefaultCandidatePageSize,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s, duration=%d",
		req.BusinessID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание бизнеса (нужны таймзона и дефолтная длительность)
	storeSchedule, err := uc.scheduleClient.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrScheduleNotFound) {
			uc.logger.Warn("GetAvailableSlots: schedule for business_id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get schedule for business_id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	schedule := storeSchedule.ToDomain()

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid timezone %q for business_id=%d", schedule.Timezone, req.BusinessID)
		return nil, fmt.Errorf("%w: timezone=%q", ErrInvalidTimezone, schedule.Timezone)
	}

	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = schedule.SlotDurationMinutes
	}

	// 4. Вычисляем UTC-окно запрошенной локальной даты
	dayStart, dayEnd := dayWindowUTC(req.Date, loc)

	// 5. Получаем bookable-слоты в окне
	slots, err := uc.slotRepo.GetBookableInWindow(ctx, req.BusinessID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 6. Получаем активные записи, пересекающие окно (с запасом на буфер)
	buffer := time.Duration(domain.TravelBufferFor(durationMinutes)) * time.Minute
	appointments, err := uc.apptRepo.FindOverlapping(
		ctx,
		req.BusinessID,
		dayStart.Add(-buffer),
		dayEnd.Add(buffer),
		domain.BlockingStatuses,
	)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 7. Отбираем кандидатов с учётом конфликтов и буфера
	candidates := filterCandidates(slots, durationMinutes, appointments, now, loc, uc.pageSize)

	uc.logger.Info("GetAvailableSlots: business=%d, date=%s: %d bookable slots, %d active appointments, %d candidates",
		req.BusinessID, req.Date.Format(domain.DateFormat), len(slots), len(appointments), len(candidates))

	return &Response{
		BusinessID:      req.BusinessID,
		Date:            req.Date,
		DurationMinutes: durationMinutes,
		Candidates:      candidates,
	}, nil
}
