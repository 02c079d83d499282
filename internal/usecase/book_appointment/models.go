package book_appointment

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// Request входные данные для бронирования
type Request struct {
	BusinessID      int64
	StartUTC        time.Time
	ServiceName     string // пустая строка - первая активная услуга бизнеса
	DurationMinutes int    // 0 - длительность услуги
	Customer        domain.CustomerInfo
}

// Response результат бронирования
type Response struct {
	Appointment *domain.Appointment
}
