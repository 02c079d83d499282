package get_available_slots

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/types"
)

// dayWindowUTC вычисляет UTC-окно [dayStart, dayEnd), покрывающее локальную
// календарную дату в таймзоне бизнеса
// В дни перехода DST окно длиннее или короче 24 часов - это корректно
func dayWindowUTC(date time.Time, loc *time.Location) (time.Time, time.Time) {
	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)
	return dayStart.UTC(), dayEnd.UTC()
}

// filterCandidates отбирает bookable-кандидатов с учётом существующих записей
// и буфера на дорогу.
//
// Занимаемое кандидатом окно - [start, start + duration + buffer); окно каждой
// записи симметрично расширяется тем же буфером. Сравнения полуинтервальные:
// касание границ (candidateEnd == apptStart) конфликтом НЕ считается.
//
// Результат отсортирован по возрастанию старта и ограничен pageSize:
// вызывающая сторона - голосовой диалог, больше нескольких вариантов
// клиенту всё равно не зачитать
func filterCandidates(
	slots []*domain.Slot,
	durationMinutes int,
	appointments []*domain.Appointment,
	now time.Time,
	loc *time.Location,
	pageSize int,
) []domain.Candidate {
	buffer := time.Duration(domain.TravelBufferFor(durationMinutes)) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	candidates := make([]domain.Candidate, 0, pageSize)

	for _, slot := range slots {
		if !slot.IsBookable(now) {
			continue
		}

		occupiedStart := slot.StartUTC
		occupiedEnd := slot.StartUTC.Add(duration + buffer)

		if overlapsAny(occupiedStart, occupiedEnd, appointments, buffer) {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			StartUTC:         slot.StartUTC,
			EndUTC:           slot.StartUTC.Add(duration),
			DisplayLocalTime: types.NewTimeString(slot.StartUTC.In(loc)).String(),
		})

		if len(candidates) >= pageSize {
			break
		}
	}

	return candidates
}

// overlapsAny проверяет пересечение окна кандидата с буферизованными окнами записей
// Отменённые, завершённые и no-show записи доступность не блокируют
func overlapsAny(candidateStart, candidateEnd time.Time, appointments []*domain.Appointment, buffer time.Duration) bool {
	for _, appt := range appointments {
		if !appt.BlocksAvailability() {
			continue
		}

		bufferedStart := appt.StartUTC.Add(-buffer)
		bufferedEnd := appt.EndUTC.Add(buffer)

		// Пересечение полуинтервалов: строгие неравенства, границы не конфликтуют
		if candidateStart.Before(bufferedEnd) && candidateEnd.After(bufferedStart) {
			return true
		}
	}

	return false
}
