package maintenance

import (
	"context"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// DeleteExpired удаляет слоты, начавшиеся раньше переданной границы
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
	// GetHorizonInfo возвращает сводку по будущим слотам бизнеса
	GetHorizonInfo(ctx context.Context, businessID int64, now time.Time) (*domain.HorizonInfo, error)
	// RefreshStatistics обновляет планировочную статистику таблицы слотов
	RefreshStatistics(ctx context.Context) error
}

// ScheduleStoreClient интерфейс клиента Business Schedule Store
type ScheduleStoreClient interface {
	ListBusinessIDs(ctx context.Context) ([]int64, error)
}

// SlotGenerator интерфейс use case регенерации слотов
type SlotGenerator interface {
	Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error)
}

// MetricsCollector интерфейс доменных метрик обслуживания
type MetricsCollector interface {
	AddSlotsGenerated(trigger string, count int)
	IncMaintenanceRun(result string)
	SetMaintenancePhaseDone(phase string, at time.Time)
	IncMaintenancePhaseError(phase string)
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
