package domain

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/pkg/types"
)

// DaySchedule рабочее окно бизнеса на один день недели
// Времена локальные ("стена часов"), без таймзоны
type DaySchedule struct {
	Enabled    bool
	StartLocal types.TimeString
	EndLocal   types.TimeString
}

// WeekSchedule недельное расписание бизнеса
type WeekSchedule struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// For returns the schedule for the given weekday
func (w *WeekSchedule) For(weekday time.Weekday) DaySchedule {
	switch weekday {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{Enabled: false}
	}
}

// BusinessSchedule расписание и настройки слотов бизнеса
// Read-only для движка: источник - Business Schedule Store
type BusinessSchedule struct {
	BusinessID          int64
	Timezone            string // IANA имя, например "America/New_York"
	WeeklyHours         WeekSchedule
	SlotDurationMinutes int // длительность записи по умолчанию
	SlotStepMinutes     int // шаг сетки слотов
	Services            []BusinessService
}

// BusinessService тип услуги бизнеса
type BusinessService struct {
	Name            string
	DurationMinutes int
	IsActive        bool
}

// ActiveService возвращает активную услугу по имени
// Пустое имя возвращает первую активную услугу
func (s *BusinessSchedule) ActiveService(name string) (BusinessService, bool) {
	for _, svc := range s.Services {
		if !svc.IsActive {
			continue
		}
		if name == "" || svc.Name == name {
			return svc, true
		}
	}
	return BusinessService{}, false
}
