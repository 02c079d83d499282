package book_appointment

import (
	"context"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/notifier"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	// GetByBusinessAndStart получает слот по уникальной паре (business_id, slot_start)
	GetByBusinessAndStart(ctx context.Context, businessID int64, start time.Time) (*domain.Slot, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	FindOverlapping(ctx context.Context, businessID int64, windowStart, windowEnd time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error)
	Insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ScheduleStoreClient интерфейс клиента Business Schedule Store
type ScheduleStoreClient interface {
	GetSchedule(ctx context.Context, businessID int64) (*schedulestore.BusinessSchedule, error)
}

// NotifierClient интерфейс клиента Notification Sink
type NotifierClient interface {
	// NotifyAsync отправляет событие fire-and-forget; ошибки доставки
	// не влияют на результат бронирования
	NotifyAsync(businessID int64, event notifier.Event)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
