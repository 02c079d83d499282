package maintenance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
)

// Фейки зависимостей

type fakeSlotRepo struct {
	horizons map[int64]*domain.HorizonInfo

	deletedBefore    time.Time
	deleteErr        error
	statisticsCalled bool
}

func (f *fakeSlotRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if f.deleteErr != nil {
		return 0, f.deleteErr
	}
	f.deletedBefore = before
	return 100, nil
}

func (f *fakeSlotRepo) GetHorizonInfo(ctx context.Context, businessID int64, now time.Time) (*domain.HorizonInfo, error) {
	info, ok := f.horizons[businessID]
	if !ok {
		return nil, errors.New("unexpected business")
	}
	return info, nil
}

func (f *fakeSlotRepo) RefreshStatistics(ctx context.Context) error {
	f.statisticsCalled = true
	return nil
}

type fakeScheduleClient struct {
	businessIDs []int64
	err         error
}

func (f *fakeScheduleClient) ListBusinessIDs(ctx context.Context) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.businessIDs, nil
}

type fakeGenerator struct {
	requests []*generate_slots.Request
	errFor   map[int64]error
}

func (f *fakeGenerator) Execute(ctx context.Context, req *generate_slots.Request) (*generate_slots.Response, error) {
	if err, ok := f.errFor[req.BusinessID]; ok {
		return nil, err
	}
	f.requests = append(f.requests, req)
	return &generate_slots.Response{
		BusinessID:   req.BusinessID,
		HorizonDays:  req.HorizonDays,
		SlotsCreated: 500,
	}, nil
}

type fakeMetrics struct {
	slotsGenerated int
	runs           map[string]int
	phaseErrors    map[string]int
	phasesDone     map[string]time.Time
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{
		runs:        make(map[string]int),
		phaseErrors: make(map[string]int),
		phasesDone:  make(map[string]time.Time),
	}
}

func (f *fakeMetrics) AddSlotsGenerated(trigger string, count int) { f.slotsGenerated += count }
func (f *fakeMetrics) IncMaintenanceRun(result string)             { f.runs[result]++ }
func (f *fakeMetrics) SetMaintenancePhaseDone(phase string, at time.Time) {
	f.phasesDone[phase] = at
}
func (f *fakeMetrics) IncMaintenancePhaseError(phase string) { f.phaseErrors[phase]++ }

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

// Хелперы

func futureSlot(days int, now time.Time) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}

func newTestMaintainer(repo *fakeSlotRepo, client *fakeScheduleClient, gen *fakeGenerator, collector *fakeMetrics, now time.Time) *Maintainer {
	m := NewMaintainer(repo, client, gen, collector, nopLogger{}, Config{
		Interval:        6 * time.Hour,
		RetentionDays:   30,
		HorizonDays:     400,
		MinHorizonDays:  350,
		FutureSlotFloor: 50,
	})
	m.timeProvider = &fakeTimeProvider{now: now}
	return m
}

func TestRunCycle_TopsUpOnlyBusinessesBelowThreshold(t *testing.T) {
	now := time.Date(2026, 1, 5, 3, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{
		horizons: map[int64]*domain.HorizonInfo{
			// Горизонт просел ниже порога - нужна регенерация
			1: {BusinessID: 1, FutureSlotCount: 900, FurthestFutureSlot: futureSlot(200, now)},
			// Горизонт в порядке
			2: {BusinessID: 2, FutureSlotCount: 2000, FurthestFutureSlot: futureSlot(399, now)},
			// Далёкий горизонт, но слотов почти не осталось
			3: {BusinessID: 3, FutureSlotCount: 5, FurthestFutureSlot: futureSlot(399, now)},
			// Слотов нет вовсе
			4: {BusinessID: 4, FutureSlotCount: 0},
		},
	}
	client := &fakeScheduleClient{businessIDs: []int64{1, 2, 3, 4}}
	gen := &fakeGenerator{}
	collector := newFakeMetrics()

	m := newTestMaintainer(repo, client, gen, collector, now)

	require.NoError(t, m.RunCycle(context.Background()))

	require.Len(t, gen.requests, 3)
	regenerated := make([]int64, 0, 3)
	for _, req := range gen.requests {
		regenerated = append(regenerated, req.BusinessID)
		require.Equal(t, 400, req.HorizonDays)
	}
	require.Equal(t, []int64{1, 3, 4}, regenerated)

	// Очистка удаляет слоты старше срока хранения
	require.Equal(t, now.AddDate(0, 0, -30), repo.deletedBefore)
	require.True(t, repo.statisticsCalled)

	require.Equal(t, 1500, collector.slotsGenerated)
	require.Equal(t, 1, collector.runs["ok"])
	require.Empty(t, collector.phaseErrors)

	status := m.Status()
	require.False(t, status.IsRunning)
	require.NotNil(t, status.LastCleanup)
	require.NotNil(t, status.LastGeneration)
}

func TestRunCycle_SkipsWhenAlreadyRunning(t *testing.T) {
	now := time.Date(2026, 1, 5, 3, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{horizons: map[int64]*domain.HorizonInfo{}}
	collector := newFakeMetrics()

	m := newTestMaintainer(repo, &fakeScheduleClient{}, &fakeGenerator{}, collector, now)

	m.mu.Lock()
	m.isRunning = true
	m.mu.Unlock()

	err := m.RunCycle(context.Background())
	require.ErrorIs(t, err, ErrAlreadyRunning)
	require.Equal(t, 1, collector.runs["skipped"])
	require.False(t, repo.statisticsCalled)
}

func TestRunCycle_PhaseFailureDoesNotStopOtherPhases(t *testing.T) {
	now := time.Date(2026, 1, 5, 3, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{
		deleteErr: errors.New("disk on fire"),
		horizons: map[int64]*domain.HorizonInfo{
			1: {BusinessID: 1, FutureSlotCount: 0},
		},
	}
	client := &fakeScheduleClient{businessIDs: []int64{1}}
	gen := &fakeGenerator{}
	collector := newFakeMetrics()

	m := newTestMaintainer(repo, client, gen, collector, now)

	require.NoError(t, m.RunCycle(context.Background()))

	// Очистка упала, но генерация и статистика выполнились
	require.Len(t, gen.requests, 1)
	require.True(t, repo.statisticsCalled)

	require.Equal(t, 1, collector.runs["partial"])
	require.Equal(t, 1, collector.phaseErrors["cleanup"])

	status := m.Status()
	require.Nil(t, status.LastCleanup)
	require.NotNil(t, status.LastGeneration)
}

func TestRunCycle_BusinessFailureDoesNotStopOthers(t *testing.T) {
	now := time.Date(2026, 1, 5, 3, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{
		horizons: map[int64]*domain.HorizonInfo{
			1: {BusinessID: 1, FutureSlotCount: 0},
			2: {BusinessID: 2, FutureSlotCount: 0},
		},
	}
	client := &fakeScheduleClient{businessIDs: []int64{1, 2}}
	gen := &fakeGenerator{errFor: map[int64]error{1: errors.New("schedule store down")}}
	collector := newFakeMetrics()

	m := newTestMaintainer(repo, client, gen, collector, now)

	require.NoError(t, m.RunCycle(context.Background()))

	// Ошибка первого бизнеса не прервала обход
	require.Len(t, gen.requests, 1)
	require.Equal(t, int64(2), gen.requests[0].BusinessID)
	require.Equal(t, 1, collector.runs["ok"])
}
