package get_available_slots

import (
	"context"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// GetBookableInWindow получает bookable-слоты бизнеса в окне [from, to)
	GetBookableInWindow(ctx context.Context, businessID int64, from, to time.Time) ([]*domain.Slot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// FindOverlapping находит записи, пересекающие окно, с одним из статусов
	FindOverlapping(ctx context.Context, businessID int64, windowStart, windowEnd time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
}

// ScheduleStoreClient интерфейс клиента Business Schedule Store
type ScheduleStoreClient interface {
	GetSchedule(ctx context.Context, businessID int64) (*schedulestore.BusinessSchedule, error)
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
