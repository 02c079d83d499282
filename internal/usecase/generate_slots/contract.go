package generate_slots

import (
	"context"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DeleteFutureByBusiness(ctx context.Context, businessID int64, from time.Time) (int64, error)
	InsertBatch(ctx context.Context, slots []domain.Slot) (int, error)
}

// ScheduleStoreClient интерфейс клиента Business Schedule Store
type ScheduleStoreClient interface {
	GetSchedule(ctx context.Context, businessID int64) (*schedulestore.BusinessSchedule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
