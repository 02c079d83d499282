package schedulestore

import (
	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/types"
)

// DaySchedule рабочее окно на день недели из Business Schedule Store
type DaySchedule struct {
	Enabled bool    `json:"enabled"`
	Start   *string `json:"start"` // локальное время HH:MM
	End     *string `json:"end"`   // локальное время HH:MM
}

// WeeklyHours недельное расписание бизнеса
type WeeklyHours struct {
	Monday    DaySchedule `json:"monday"`
	Tuesday   DaySchedule `json:"tuesday"`
	Wednesday DaySchedule `json:"wednesday"`
	Thursday  DaySchedule `json:"thursday"`
	Friday    DaySchedule `json:"friday"`
	Saturday  DaySchedule `json:"saturday"`
	Sunday    DaySchedule `json:"sunday"`
}

// Service тип услуги бизнеса
type Service struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	IsActive        bool   `json:"is_active"`
}

// BusinessSchedule модель расписания бизнеса из Business Schedule Store
type BusinessSchedule struct {
	BusinessID          int64       `json:"business_id"`
	Timezone            string      `json:"timezone"`
	WeeklyHours         WeeklyHours `json:"weekly_hours"`
	SlotDurationMinutes int         `json:"slot_duration_minutes"`
	SlotStepMinutes     int         `json:"slot_step_minutes"`
	Services            []Service   `json:"services"`
}

// ErrorResponse модель ошибки от Business Schedule Store
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomain конвертирует ответ стора в доменную модель
// Отсутствующие настройки слотов заменяются дефолтами; отсутствующая
// таймзона или рабочие окна дефолтами НЕ заменяются - это ошибки
// конфигурации, которые обязан увидеть вызывающий
func (s *BusinessSchedule) ToDomain() domain.BusinessSchedule {
	schedule := domain.BusinessSchedule{
		BusinessID:          s.BusinessID,
		Timezone:            s.Timezone,
		SlotDurationMinutes: s.SlotDurationMinutes,
		SlotStepMinutes:     s.SlotStepMinutes,
	}

	if schedule.SlotDurationMinutes == 0 {
		schedule.SlotDurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if schedule.SlotStepMinutes == 0 {
		schedule.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}

	schedule.WeeklyHours = domain.WeekSchedule{
		Monday:    s.WeeklyHours.Monday.toDomain(),
		Tuesday:   s.WeeklyHours.Tuesday.toDomain(),
		Wednesday: s.WeeklyHours.Wednesday.toDomain(),
		Thursday:  s.WeeklyHours.Thursday.toDomain(),
		Friday:    s.WeeklyHours.Friday.toDomain(),
		Saturday:  s.WeeklyHours.Saturday.toDomain(),
		Sunday:    s.WeeklyHours.Sunday.toDomain(),
	}

	schedule.Services = make([]domain.BusinessService, 0, len(s.Services))
	for _, svc := range s.Services {
		schedule.Services = append(schedule.Services, domain.BusinessService{
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			IsActive:        svc.IsActive,
		})
	}

	return schedule
}

func (d DaySchedule) toDomain() domain.DaySchedule {
	day := domain.DaySchedule{Enabled: d.Enabled}

	if d.Start != nil {
		day.StartLocal = types.TimeString(*d.Start)
	}
	if d.End != nil {
		day.EndLocal = types.TimeString(*d.End)
	}

	// День без обоих окон считаем выключенным
	if d.Enabled && (d.Start == nil || d.End == nil) {
		day.Enabled = false
	}

	return day
}
