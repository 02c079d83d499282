package slots

import (
	"context"
	"errors"
	"fmt"

	slotRepo "github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/slot"
	scheduleClient "github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

// Service сервис административных операций над слотами
// Ручные блокировки и инспекция горизонта; массовая генерация и
// бронирование живут в соответствующих use case
type Service struct {
	slotRepo       SlotRepository
	scheduleClient ScheduleStoreClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepository SlotRepository,
	scheduleStoreClient ScheduleStoreClient,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:       slotRepository,
		scheduleClient: scheduleStoreClient,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// SetBlocked блокирует или разблокирует один слот вручную
// Блокировка - точечная операция владельца бизнеса; массовая регенерация
// её затирает, поэтому следующая регенерация вернёт слот в open-состояние
func (s *Service) SetBlocked(ctx context.Context, req *models.SetBlockedRequest) (*models.SlotResponse, error) {
	s.logger.Info("SetBlocked: business=%d, start=%s, blocked=%v",
		req.BusinessID, req.StartUTC, req.Blocked)

	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}
	if req.StartUTC.IsZero() {
		return nil, fmt.Errorf("%w: startUtc is required", ErrInvalidInput)
	}

	now := s.timeProvider.Now()
	startUTC := req.StartUTC.UTC()

	if !startUTC.After(now) {
		s.logger.Warn("SetBlocked: business=%d, start=%s is in the past", req.BusinessID, startUTC)
		return nil, ErrSlotInPast
	}

	if err := s.slotRepo.SetBlocked(ctx, req.BusinessID, startUTC, req.Blocked); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("SetBlocked: slot business=%d, start=%s not found", req.BusinessID, startUTC)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("SetBlocked: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: SetBlocked - repository error: %v", ErrInternal, err)
	}

	updated, err := s.slotRepo.GetByBusinessAndStart(ctx, req.BusinessID, startUTC)
	if err != nil {
		s.logger.Error("SetBlocked: failed to re-read slot business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: SetBlocked - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetBlocked: slot id=%d updated, blocked=%v", updated.ID, updated.IsBlocked)
	return models.FromDomainSlot(updated), nil
}

// GetHorizon возвращает сводку по сгенерированному горизонту бизнеса
// Проверяет существование бизнеса через Business Schedule Store
func (s *Service) GetHorizon(ctx context.Context, businessID int64) (*models.HorizonResponse, error) {
	s.logger.Info("GetHorizon: fetching horizon for business=%d", businessID)

	if businessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	if _, err := s.scheduleClient.GetSchedule(ctx, businessID); err != nil {
		if errors.Is(err, scheduleClient.ErrScheduleNotFound) {
			s.logger.Warn("GetHorizon: business=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetHorizon: failed to get schedule for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetHorizon - schedule store error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	info, err := s.slotRepo.GetHorizonInfo(ctx, businessID, now)
	if err != nil {
		s.logger.Error("GetHorizon: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetHorizon - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetHorizon: business=%d, futureSlots=%d", businessID, info.FutureSlotCount)
	return models.FromDomainHorizon(info, now), nil
}
