package generate_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	scheduleClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/slotgen"
)

// UseCase use case генерации слотов для бизнеса
// Вызывается при завершении онбординга, при изменении рабочих часов
// и фоновым обслуживанием горизонта
type UseCase struct {
	slotRepo       SlotRepository
	scheduleClient ScheduleStoreClient
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	scheduleStoreClient ScheduleStoreClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:       slotRepo,
		scheduleClient: scheduleStoreClient,
		txManager:      txManager,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// Execute выполняет use case генерации слотов
//
// Регенерация выполняется в одной транзакции: сначала удаляются ВСЕ будущие
// слоты бизнеса, затем вставляется свежесгенерированный набор. Упавшая
// попытка откатывается целиком и не оставляет смешанного состояния;
// следующая попытка просто повторяет всё заново
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateSlots: business=%d, horizonDays=%d", req.BusinessID, req.HorizonDays)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	horizonDays := req.HorizonDays
	if horizonDays == 0 {
		horizonDays = domain.DefaultHorizonDays
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем расписание бизнеса
	storeSchedule, err := uc.scheduleClient.GetSchedule(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, scheduleClient.ErrScheduleNotFound) {
			uc.logger.Warn("GenerateSlots: schedule for business_id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GenerateSlots: failed to get schedule for business_id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	schedule := storeSchedule.ToDomain()

	// 4. Разворачиваем расписание в конкретные UTC-слоты
	slots, err := slotgen.Generate(schedule, horizonDays, now)
	if err != nil {
		uc.logger.Warn("GenerateSlots: schedule validation failed for business_id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchedule, err)
	}

	// 5. Атомарно заменяем будущие слоты: delete + batch insert в одной транзакции
	var deleted int64
	var created int

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		deleted, err = uc.slotRepo.DeleteFutureByBusiness(txCtx, req.BusinessID, now)
		if err != nil {
			return fmt.Errorf("%w: failed to delete future slots: %v", ErrInternal, err)
		}

		created, err = uc.slotRepo.InsertBatch(txCtx, slots)
		if err != nil {
			return fmt.Errorf("%w: failed to insert slots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Error("GenerateSlots: regeneration failed for business_id=%d: %v", req.BusinessID, err)
		return nil, err
	}

	uc.logger.Info("GenerateSlots: business=%d, horizonDays=%d, deleted=%d, created=%d",
		req.BusinessID, horizonDays, deleted, created)

	return &Response{
		BusinessID:   req.BusinessID,
		HorizonDays:  horizonDays,
		SlotsCreated: created,
		SlotsDeleted: int(deleted),
	}, nil
}
