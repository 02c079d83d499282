package slotgen

import (
	"errors"
	"fmt"
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/types"
)

var (
	// ErrInvalidTimezone возвращается при неизвестном IANA имени таймзоны
	ErrInvalidTimezone = errors.New("slotgen: invalid timezone")

	// ErrInvalidSlotDuration возвращается при некорректной длительности слота
	ErrInvalidSlotDuration = errors.New("slotgen: invalid slot duration")

	// ErrInvalidSlotStep возвращается при некорректном шаге сетки слотов
	ErrInvalidSlotStep = errors.New("slotgen: invalid slot step")

	// ErrInvalidHorizon возвращается при некорректном горизонте генерации
	ErrInvalidHorizon = errors.New("slotgen: invalid horizon")

	// ErrInvalidDayWindow возвращается, когда рабочее окно дня задано некорректно
	// Ночные окна (закрытие раньше открытия) не поддерживаются
	ErrInvalidDayWindow = errors.New("slotgen: invalid day window")
)

// Generate разворачивает недельное расписание бизнеса в конкретные UTC-слоты
// на horizonDays дней вперёд от now.
//
// Ключевое свойство: конвертация локального времени в UTC выполняется через
// таймзону бизнеса ОТДЕЛЬНО для каждой календарной даты, а не через фиксированный
// offset. Переходы DST поэтому обрабатываются по-дням:
//   - "spring forward": слоты, чьё локальное время попадает в пропущенный час,
//     не генерируются вовсе;
//   - "fall back": для повторяющегося локального времени берётся более ранний
//     UTC-момент, дубликаты UTC-стартов не эмитятся.
//
// Эмитятся только слоты со стартом строго позже now. Все слоты создаются
// доступными и не заблокированными.
func Generate(schedule domain.BusinessSchedule, horizonDays int, now time.Time) ([]domain.Slot, error) {
	if err := validateSchedule(schedule, horizonDays); err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone=%q: %v", ErrInvalidTimezone, schedule.Timezone, err)
	}

	duration := schedule.SlotDurationMinutes
	step := schedule.SlotStepMinutes

	localNow := now.In(loc)

	slots := make([]domain.Slot, 0, horizonDays*8)
	var lastStartUTC time.Time

	for d := 0; d < horizonDays; d++ {
		// Календарная дата берётся по локальной стене часов бизнеса
		day := localNow.AddDate(0, 0, d)
		year, month, dayOfMonth := day.Date()

		daySchedule := schedule.WeeklyHours.For(day.Weekday())
		if !daySchedule.Enabled {
			continue
		}

		startMinutes := daySchedule.StartLocal.Minutes()
		endMinutes := windowEndMinutes(daySchedule.EndLocal)

		for t := startMinutes; t+duration <= endMinutes; t += step {
			hour, minute := t/60, t%60

			candidate := time.Date(year, month, dayOfMonth, hour, minute, 0, 0, loc)

			// Пропущенный "spring forward" час: time.Date сдвигает несуществующее
			// локальное время, сравнение стены часов это выявляет
			if candidate.Hour() != hour || candidate.Minute() != minute {
				continue
			}

			// Повторяющийся "fall back" час: если та же стена часов существует
			// часом раньше, предпочитаем более ранний UTC-момент
			if earlier := candidate.Add(-time.Hour); sameWallClock(earlier.In(loc), hour, minute) {
				candidate = earlier
			}

			startUTC := candidate.UTC()

			// Слоты в прошлом не эмитятся
			if !startUTC.After(now) {
				continue
			}

			// Страховка от дубликатов UTC-моментов на границе fall back
			if !lastStartUTC.IsZero() && !startUTC.After(lastStartUTC) {
				continue
			}

			slots = append(slots, domain.Slot{
				BusinessID:  schedule.BusinessID,
				StartUTC:    startUTC,
				EndUTC:      startUTC.Add(time.Duration(duration) * time.Minute),
				IsAvailable: true,
				IsBlocked:   false,
			})
			lastStartUTC = startUTC
		}
	}

	return slots, nil
}

// validateSchedule проверяет параметры расписания до генерации
// Ошибки конфигурации именуют конкретное поле и не маскируются дефолтами
func validateSchedule(schedule domain.BusinessSchedule, horizonDays int) error {
	if horizonDays <= 0 || horizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays=%d, must be in (0, %d]",
			ErrInvalidHorizon, horizonDays, domain.MaxHorizonDays)
	}

	if schedule.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		schedule.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes=%d, must be in [%d, %d]",
			ErrInvalidSlotDuration, schedule.SlotDurationMinutes,
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if schedule.SlotStepMinutes < domain.MinSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes=%d, must be >= %d",
			ErrInvalidSlotStep, schedule.SlotStepMinutes, domain.MinSlotStepMinutes)
	}

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	for _, weekday := range weekdays {
		daySchedule := schedule.WeeklyHours.For(weekday)
		if !daySchedule.Enabled {
			continue
		}

		if err := daySchedule.StartLocal.Validate(); err != nil {
			return fmt.Errorf("%w: %s startLocal: %v", ErrInvalidDayWindow, weekday, err)
		}
		if daySchedule.EndLocal != "24:00" {
			if err := daySchedule.EndLocal.Validate(); err != nil {
				return fmt.Errorf("%w: %s endLocal: %v", ErrInvalidDayWindow, weekday, err)
			}
		}

		// Ночные окна (endLocal <= startLocal) не поддерживаются
		if windowEndMinutes(daySchedule.EndLocal) <= daySchedule.StartLocal.Minutes() {
			return fmt.Errorf("%w: %s window [%s, %s), endLocal must be after startLocal",
				ErrInvalidDayWindow, weekday, daySchedule.StartLocal, daySchedule.EndLocal)
		}
	}

	return nil
}

// windowEndMinutes понимает "24:00" как границу конца суток
func windowEndMinutes(end types.TimeString) int {
	if end == "24:00" {
		return 24 * 60
	}
	return end.Minutes()
}

// sameWallClock проверяет совпадение локальной стены часов
func sameWallClock(t time.Time, hour, minute int) bool {
	return t.Hour() == hour && t.Minute() == minute
}
