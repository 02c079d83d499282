package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

func slotAt(start time.Time) *domain.Slot {
	return &domain.Slot{
		BusinessID:  1,
		StartUTC:    start,
		EndUTC:      start.Add(time.Hour),
		IsAvailable: true,
	}
}

func apptAt(start, end time.Time, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		BusinessID: 1,
		StartUTC:   start,
		EndUTC:     end,
		Status:     status,
	}
}

func TestFilterCandidates_TravelBufferExcludesNearbySlots(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	now := day

	// Запись 10:00-11:00; с буфером 30 минут занятое окно [09:30, 11:30)
	appointments := []*domain.Appointment{
		apptAt(day.Add(10*time.Hour), day.Add(11*time.Hour), domain.StatusScheduled),
	}

	slots := []*domain.Slot{
		slotAt(day.Add(8 * time.Hour)),                    // 08:00, занят до 09:30 ровно - проходит
		slotAt(day.Add(9 * time.Hour)),                    // 09:00, занят до 10:30 - конфликт
		slotAt(day.Add(9*time.Hour + 30*time.Minute)),     // 09:30 - конфликт
		slotAt(day.Add(11 * time.Hour)),                   // 11:00, начало внутри буфера - конфликт
		slotAt(day.Add(11*time.Hour + 30*time.Minute)),    // 11:30, касание границы - проходит
		slotAt(day.Add(13 * time.Hour)),                   // 13:00 - проходит
	}

	candidates := filterCandidates(slots, 60, appointments, now, time.UTC, 8)

	require.Len(t, candidates, 3)
	require.Equal(t, day.Add(8*time.Hour), candidates[0].StartUTC)
	require.Equal(t, day.Add(11*time.Hour+30*time.Minute), candidates[1].StartUTC)
	require.Equal(t, day.Add(13*time.Hour), candidates[2].StartUTC)
}

func TestFilterCandidates_LongJobUsesReducedBuffer(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	// Запись 13:00-14:00. Для длительности 240 минут буфер 15 минут:
	// буферизованное окно записи [12:45, 14:15)
	appointments := []*domain.Appointment{
		apptAt(day.Add(13*time.Hour), day.Add(14*time.Hour), domain.StatusConfirmed),
	}

	slots := []*domain.Slot{
		// 08:30, занят до 12:45 ровно (240 + 15 минут) - проходит
		slotAt(day.Add(8*time.Hour + 30*time.Minute)),
		// 09:00, занят до 13:15 - конфликт
		slotAt(day.Add(9 * time.Hour)),
	}

	candidates := filterCandidates(slots, 240, appointments, day, time.UTC, 8)

	require.Len(t, candidates, 1)
	require.Equal(t, day.Add(8*time.Hour+30*time.Minute), candidates[0].StartUTC)
}

func TestFilterCandidates_PageCap(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	slots := make([]*domain.Slot, 0, 20)
	for i := 0; i < 20; i++ {
		slots = append(slots, slotAt(day.Add(time.Duration(8*60+i*30)*time.Minute)))
	}

	candidates := filterCandidates(slots, 60, nil, day, time.UTC, 8)

	require.Len(t, candidates, 8)
	// Возвращаются самые ранние кандидаты
	require.Equal(t, day.Add(8*time.Hour), candidates[0].StartUTC)
}

func TestFilterCandidates_SkipsUnbookableSlots(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	now := day.Add(10 * time.Hour)

	blocked := slotAt(day.Add(12 * time.Hour))
	blocked.IsBlocked = true

	unavailable := slotAt(day.Add(13 * time.Hour))
	unavailable.IsAvailable = false

	slots := []*domain.Slot{
		slotAt(day.Add(9 * time.Hour)), // в прошлом
		blocked,
		unavailable,
		slotAt(day.Add(14 * time.Hour)),
	}

	candidates := filterCandidates(slots, 60, nil, now, time.UTC, 8)

	require.Len(t, candidates, 1)
	require.Equal(t, day.Add(14*time.Hour), candidates[0].StartUTC)
}

func TestFilterCandidates_IgnoresNonBlockingAppointments(t *testing.T) {
	day := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	appointments := []*domain.Appointment{
		apptAt(day.Add(10*time.Hour), day.Add(11*time.Hour), domain.StatusCancelled),
		apptAt(day.Add(10*time.Hour), day.Add(11*time.Hour), domain.StatusCompleted),
		apptAt(day.Add(10*time.Hour), day.Add(11*time.Hour), domain.StatusNoShow),
	}

	slots := []*domain.Slot{
		slotAt(day.Add(10 * time.Hour)),
	}

	candidates := filterCandidates(slots, 60, appointments, day, time.UTC, 8)

	require.Len(t, candidates, 1)
}

func TestFilterCandidates_DisplayLocalTime(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 14:00 UTC = 09:00 по Нью-Йорку зимой
	start := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)

	candidates := filterCandidates([]*domain.Slot{slotAt(start)}, 60, nil, start.Add(-time.Hour), loc, 8)

	require.Len(t, candidates, 1)
	require.Equal(t, "09:00", candidates[0].DisplayLocalTime)
	require.Equal(t, start.Add(time.Hour), candidates[0].EndUTC)
}

func TestDayWindowUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	from, to := dayWindowUTC(date, loc)

	// Локальная полночь Нью-Йорка зимой - это 05:00 UTC
	require.Equal(t, time.Date(2026, 1, 5, 5, 0, 0, 0, time.UTC), from)
	require.Equal(t, time.Date(2026, 1, 6, 5, 0, 0, 0, time.UTC), to)
}

func TestDayWindowUTC_SpringForwardDayIsShorter(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	date := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	from, to := dayWindowUTC(date, loc)

	// День перехода на летнее время длится 23 часа
	require.Equal(t, 23*time.Hour, to.Sub(from))
}
