package book_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/slot"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/notifier"
	scheduleClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// UseCase use case бронирования записи
//
// Доступность, показанная клиенту ранее, может устареть к моменту
// подтверждения, поэтому все проверки повторяются внутри SERIALIZABLE
// транзакции непосредственно перед вставкой записи
type UseCase struct {
	slotRepo       SlotRepository
	apptRepo       AppointmentRepository
	scheduleClient ScheduleStoreClient
	notifier       NotifierClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	scheduleStoreClient ScheduleStoreClient,
	notifierClient NotifierClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		apptRepo:       apptRepo,
		scheduleClient: scheduleStoreClient,
		notifier:       notifierClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: business=%d, start=%s, service=%q",
		req.BusinessID, req.StartUTC.Format(time.RFC3339), req.ServiceName)

	// 1. Валидация входных данных
	if err := validateRequest(*req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	startUTC := req.StartUTC.UTC()
	if !startUTC.After(now) {
		return nil, fmt.Errorf("%w: startUTC must be in the future", ErrInvalidInput)
	}

	// 3. Получаем расписание бизнеса и услугу
	storeSchedule, err := uc.scheduleClient.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrScheduleNotFound) {
			uc.logger.Warn("BookAppointment: schedule for business_id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("BookAppointment: failed to get schedule for business_id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	schedule := storeSchedule.ToDomain()

	service, ok := schedule.ActiveService(req.ServiceName)
	if !ok {
		uc.logger.Warn("BookAppointment: service %q not found for business_id=%d", req.ServiceName, req.BusinessID)
		return nil, ErrServiceNotFound
	}

	// 4. Определяем длительность: явная из запроса или длительность услуги
	durationMinutes := req.DurationMinutes
	if durationMinutes == 0 {
		durationMinutes = service.DurationMinutes
	}
	if durationMinutes == 0 {
		durationMinutes = schedule.SlotDurationMinutes
	}
	if durationMinutes < domain.MinSlotDurationMinutes || durationMinutes > domain.MaxSlotDurationMinutes {
		return nil, fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	duration := time.Duration(durationMinutes) * time.Minute
	buffer := time.Duration(domain.TravelBufferFor(durationMinutes)) * time.Minute
	endUTC := startUTC.Add(duration)

	// 5. SERIALIZABLE транзакция: повторная валидация и вставка записи
	var appt *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Запрошенное время должно соответствовать сгенерированному слоту
		found, err := uc.slotRepo.GetByBusinessAndStart(txCtx, req.BusinessID, startUTC)
		if err != nil {
			if errors.Is(err, slot.ErrSlotNotFound) {
				return ErrOutsideBusinessHours
			}
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		if !found.IsBookable(now) {
			return ErrSlotConflict
		}

		// 5.2. Повторная проверка конфликтов с буфером на переезд.
		// Окно [start, start+duration+buffer) против записей, расширенных
		// на buffer в обе стороны, что эквивалентно SQL-окну ниже
		overlapping, err := uc.apptRepo.FindOverlapping(
			txCtx,
			req.BusinessID,
			startUTC.Add(-buffer),
			endUTC.Add(2*buffer),
			domain.BlockingStatuses,
		)
		if err != nil {
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			return ErrSlotConflict
		}

		// 5.3. Вставляем запись; строка слота при этом не меняется -
		// доступность всегда вычисляется от живых записей
		appt, err = uc.apptRepo.Insert(txCtx, &domain.Appointment{
			BusinessID:      req.BusinessID,
			ServiceName:     service.Name,
			StartUTC:        startUTC,
			EndUTC:          endUTC,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusScheduled,
			CustomerName:    req.Customer.Name,
			CustomerPhone:   req.Customer.Phone,
			CustomerEmail:   req.Customer.Email,
			Notes:           req.Customer.Notes,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to insert appointment: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSlotConflict) || errors.Is(err, ErrOutsideBusinessHours) {
			uc.logger.Warn("BookAppointment: business=%d, start=%s rejected: %v",
				req.BusinessID, startUTC.Format(time.RFC3339), err)
			return nil, err
		}
		uc.logger.Error("BookAppointment: booking failed for business_id=%d: %v", req.BusinessID, err)
		return nil, err
	}

	uc.logger.Info("BookAppointment: created appointment id=%d for business=%d at %s",
		appt.ID, appt.BusinessID, appt.StartUTC.Format(time.RFC3339))

	// 6. Уведомление после коммита, fire-and-forget
	uc.notifier.NotifyAsync(req.BusinessID, notifier.Event{
		EventID:       uuid.NewString(),
		Type:          notifier.EventBookingCreated,
		BusinessID:    appt.BusinessID,
		AppointmentID: appt.ID,
		ServiceName:   appt.ServiceName,
		StartUTC:      appt.StartUTC,
		EndUTC:        appt.EndUTC,
		CustomerName:  appt.CustomerName,
		CustomerPhone: appt.CustomerPhone,
		OccurredAt:    now,
	})

	return &Response{Appointment: appt}, nil
}
