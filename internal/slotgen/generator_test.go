package slotgen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

func newYorkSchedule(t *testing.T) domain.BusinessSchedule {
	t.Helper()

	return domain.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     30,
		WeeklyHours: domain.WeekSchedule{
			Monday: domain.DaySchedule{Enabled: true, StartLocal: "09:00", EndLocal: "17:00"},
		},
	}
}

func mustLoadLocation(t *testing.T, name string) *time.Location {
	t.Helper()

	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestGenerate_BasicGrid(t *testing.T) {
	schedule := newYorkSchedule(t)
	loc := mustLoadLocation(t, "America/New_York")

	// Воскресенье 4 января 2026, полдень по Нью-Йорку; горизонт покрывает понедельник
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, loc)

	slots, err := Generate(schedule, 2, now)
	require.NoError(t, err)

	// Окно [09:00, 17:00), шаг 30, длительность 60: старты 09:00..16:00
	require.Len(t, slots, 15)

	first := slots[0].StartUTC.In(loc)
	require.Equal(t, "09:00", first.Format("15:04"))
	require.Equal(t, time.Monday, first.Weekday())

	last := slots[len(slots)-1].StartUTC.In(loc)
	require.Equal(t, "16:00", last.Format("15:04"))

	for _, s := range slots {
		require.True(t, s.IsAvailable)
		require.False(t, s.IsBlocked)
		require.Equal(t, s.StartUTC.Add(time.Hour), s.EndUTC)
	}
}

func TestGenerate_SkipsPastSlots(t *testing.T) {
	schedule := newYorkSchedule(t)
	loc := mustLoadLocation(t, "America/New_York")

	// Понедельник 5 января 2026, 12:15 по Нью-Йорку
	now := time.Date(2026, 1, 5, 12, 15, 0, 0, loc)

	slots, err := Generate(schedule, 1, now)
	require.NoError(t, err)

	// Остались только старты строго позже 12:15: 12:30..16:00
	require.Len(t, slots, 8)
	require.Equal(t, "12:30", slots[0].StartUTC.In(loc).Format("15:04"))

	for _, s := range slots {
		require.True(t, s.StartUTC.After(now))
	}
}

func TestGenerate_SpringForwardSkipsMissingHour(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")

	schedule := domain.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     30,
		WeeklyHours: domain.WeekSchedule{
			Sunday: domain.DaySchedule{Enabled: true, StartLocal: "01:00", EndLocal: "04:00"},
		},
	}

	// Воскресенье 8 марта 2026: в 02:00 локальные часы прыгают на 03:00
	now := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)

	slots, err := Generate(schedule, 1, now)
	require.NoError(t, err)

	// 02:00 и 02:30 не существуют и не генерируются
	require.Len(t, slots, 3)
	require.Equal(t, "01:00", slots[0].StartUTC.In(loc).Format("15:04"))
	require.Equal(t, "01:30", slots[1].StartUTC.In(loc).Format("15:04"))
	require.Equal(t, "03:00", slots[2].StartUTC.In(loc).Format("15:04"))

	// UTC-старты строго возрастают
	for i := 1; i < len(slots); i++ {
		require.True(t, slots[i].StartUTC.After(slots[i-1].StartUTC))
	}
}

func TestGenerate_FallBackPrefersEarlierUTC(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")

	schedule := domain.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     30,
		WeeklyHours: domain.WeekSchedule{
			Sunday: domain.DaySchedule{Enabled: true, StartLocal: "01:00", EndLocal: "03:00"},
		},
	}

	// Воскресенье 1 ноября 2026: в 02:00 локальные часы возвращаются на 01:00,
	// локальное 01:00 существует дважды
	now := time.Date(2026, 11, 1, 0, 0, 0, 0, loc)

	slots, err := Generate(schedule, 1, now)
	require.NoError(t, err)

	require.Len(t, slots, 3)

	// Для повторяющегося 01:00 берётся более ранний UTC-момент (ещё EDT, UTC-4)
	require.Equal(t, time.Date(2026, 11, 1, 5, 0, 0, 0, time.UTC), slots[0].StartUTC)
	require.Equal(t, time.Date(2026, 11, 1, 5, 30, 0, 0, time.UTC), slots[1].StartUTC)

	// 02:00 уже однозначно в EST (UTC-5)
	require.Equal(t, time.Date(2026, 11, 1, 7, 0, 0, 0, time.UTC), slots[2].StartUTC)
}

func TestGenerate_MidnightEndBoundary(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")

	schedule := domain.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     60,
		WeeklyHours: domain.WeekSchedule{
			Monday: domain.DaySchedule{Enabled: true, StartLocal: "22:00", EndLocal: "24:00"},
		},
	}

	now := time.Date(2026, 1, 5, 0, 0, 0, 0, loc)

	slots, err := Generate(schedule, 1, now)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	require.Equal(t, "22:00", slots[0].StartUTC.In(loc).Format("15:04"))
	require.Equal(t, "23:00", slots[1].StartUTC.In(loc).Format("15:04"))
}

func TestGenerate_RejectsOvernightWindow(t *testing.T) {
	schedule := newYorkSchedule(t)
	schedule.WeeklyHours.Friday = domain.DaySchedule{Enabled: true, StartLocal: "22:00", EndLocal: "06:00"}

	_, err := Generate(schedule, 7, time.Now())
	require.ErrorIs(t, err, ErrInvalidDayWindow)
}

func TestGenerate_RejectsInvalidTimezone(t *testing.T) {
	schedule := newYorkSchedule(t)
	schedule.Timezone = "Mars/Olympus_Mons"

	_, err := Generate(schedule, 7, time.Now())
	require.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestGenerate_RejectsInvalidParameters(t *testing.T) {
	schedule := newYorkSchedule(t)

	_, err := Generate(schedule, 0, time.Now())
	require.ErrorIs(t, err, ErrInvalidHorizon)

	_, err = Generate(schedule, domain.MaxHorizonDays+1, time.Now())
	require.ErrorIs(t, err, ErrInvalidHorizon)

	badDuration := newYorkSchedule(t)
	badDuration.SlotDurationMinutes = 3
	_, err = Generate(badDuration, 7, time.Now())
	require.ErrorIs(t, err, ErrInvalidSlotDuration)

	badStep := newYorkSchedule(t)
	badStep.SlotStepMinutes = 1
	_, err = Generate(badStep, 7, time.Now())
	require.ErrorIs(t, err, ErrInvalidSlotStep)
}

func TestGenerate_DisabledDaysProduceNothing(t *testing.T) {
	loc := mustLoadLocation(t, "America/New_York")
	schedule := newYorkSchedule(t)

	// Вторник-воскресенье выключены: на неделе только один рабочий день
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, loc)

	slots, err := Generate(schedule, 7, now)
	require.NoError(t, err)

	for _, s := range slots {
		require.Equal(t, time.Monday, s.StartUTC.In(loc).Weekday())
	}
}
