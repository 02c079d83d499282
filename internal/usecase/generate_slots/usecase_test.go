package generate_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
)

// Фейки зависимостей

type fakeSlotRepo struct {
	deletedBusinessID int64
	deletedFrom       time.Time
	insertedSlots     []domain.Slot

	deleteCalled bool
	insertCalled bool
}

func (f *fakeSlotRepo) DeleteFutureByBusiness(ctx context.Context, businessID int64, from time.Time) (int64, error) {
	f.deleteCalled = true
	f.deletedBusinessID = businessID
	f.deletedFrom = from
	return 12, nil
}

func (f *fakeSlotRepo) InsertBatch(ctx context.Context, slots []domain.Slot) (int, error) {
	// Удаление обязано предшествовать вставке
	if !f.deleteCalled {
		panic("InsertBatch called before DeleteFutureByBusiness")
	}
	f.insertCalled = true
	f.insertedSlots = slots
	return len(slots), nil
}

type fakeScheduleClient struct {
	schedule *schedulestore.BusinessSchedule
	err      error
}

func (f *fakeScheduleClient) GetSchedule(ctx context.Context, businessID int64) (*schedulestore.BusinessSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testSchedule() *schedulestore.BusinessSchedule {
	start := "09:00"
	end := "17:00"

	return &schedulestore.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     30,
		WeeklyHours: schedulestore.WeeklyHours{
			Monday: schedulestore.DaySchedule{Enabled: true, Start: &start, End: &end},
		},
	}
}

func newTestUseCase(repo *fakeSlotRepo, client *fakeScheduleClient, tx *fakeTxManager, now time.Time) *UseCase {
	uc := NewUseCase(repo, client, tx, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func TestExecute_RegeneratesInsideTransaction(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// Воскресенье: горизонт в 2 дня покрывает один рабочий понедельник
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, loc)

	repo := &fakeSlotRepo{}
	tx := &fakeTxManager{}

	uc := newTestUseCase(repo, &fakeScheduleClient{schedule: testSchedule()}, tx, now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1, HorizonDays: 2})
	require.NoError(t, err)

	require.Equal(t, 1, tx.calls)
	require.True(t, repo.deleteCalled)
	require.True(t, repo.insertCalled)
	require.Equal(t, int64(1), repo.deletedBusinessID)
	require.Equal(t, now, repo.deletedFrom)

	require.Equal(t, 15, resp.SlotsCreated)
	require.Equal(t, 12, resp.SlotsDeleted)
	require.Equal(t, 2, resp.HorizonDays)

	for _, s := range repo.insertedSlots {
		require.Equal(t, int64(1), s.BusinessID)
		require.True(t, s.StartUTC.After(now))
	}
}

func TestExecute_DefaultHorizon(t *testing.T) {
	now := time.Date(2026, 1, 4, 12, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{}

	uc := newTestUseCase(repo, &fakeScheduleClient{schedule: testSchedule()}, &fakeTxManager{}, now)

	resp, err := uc.Execute(context.Background(), &Request{BusinessID: 1})
	require.NoError(t, err)
	require.Equal(t, domain.DefaultHorizonDays, resp.HorizonDays)
}

func TestExecute_UnknownBusiness(t *testing.T) {
	uc := newTestUseCase(
		&fakeSlotRepo{},
		&fakeScheduleClient{err: schedulestore.ErrScheduleNotFound},
		&fakeTxManager{},
		time.Now(),
	)

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 99})
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_InvalidScheduleRejected(t *testing.T) {
	badTimezone := testSchedule()
	badTimezone.Timezone = "Atlantis/Lost_City"

	repo := &fakeSlotRepo{}

	uc := newTestUseCase(repo, &fakeScheduleClient{schedule: badTimezone}, &fakeTxManager{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 1})
	require.ErrorIs(t, err, ErrInvalidSchedule)
	require.False(t, repo.deleteCalled)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &fakeScheduleClient{schedule: testSchedule()}, &fakeTxManager{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{BusinessID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{BusinessID: 1, HorizonDays: domain.MaxHorizonDays + 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
