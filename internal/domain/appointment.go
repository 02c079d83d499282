package domain

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no_show"
)

// Appointment represents a committed booking in the system
// Времена хранятся строго в UTC, локальное представление вычисляется по таймзоне бизнеса
type Appointment struct {
	ID              int64
	BusinessID      int64
	ServiceName     string
	StartUTC        time.Time
	EndUTC          time.Time
	DurationMinutes int
	Status          AppointmentStatus

	// Данные клиента (денормализованы при создании)
	CustomerName  string
	CustomerPhone string
	CustomerEmail *string
	Notes         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlocksAvailability returns true if the appointment occupies its time window
// Только scheduled и confirmed блокируют доступность; отменённые,
// завершённые и no-show - нет
func (a *Appointment) BlocksAvailability() bool {
	return a.Status == StatusScheduled || a.Status == StatusConfirmed
}

// IsCancelled returns true if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// BlockingStatuses статусы, занимающие временное окно
// Используется при запросе пересекающихся записей в резолвере и коммитере
var BlockingStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
}

// CustomerInfo данные клиента, передаваемые при создании записи
type CustomerInfo struct {
	Name  string
	Phone string
	Email *string
	Notes *string
}
