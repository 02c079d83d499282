package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	slotRepo "github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/slot"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

type fakeSlotRepo struct {
	slot       *domain.Slot
	horizon    *domain.HorizonInfo
	setErr     error
	gotBlocked bool
}

func (f *fakeSlotRepo) GetByBusinessAndStart(ctx context.Context, businessID int64, start time.Time) (*domain.Slot, error) {
	return f.slot, nil
}

func (f *fakeSlotRepo) SetBlocked(ctx context.Context, businessID int64, start time.Time, blocked bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.gotBlocked = blocked
	f.slot.IsBlocked = blocked
	return nil
}

func (f *fakeSlotRepo) GetHorizonInfo(ctx context.Context, businessID int64, now time.Time) (*domain.HorizonInfo, error) {
	return f.horizon, nil
}

type fakeScheduleClient struct {
	err error
}

func (f *fakeScheduleClient) GetSchedule(ctx context.Context, businessID int64) (*schedulestore.BusinessSchedule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &schedulestore.BusinessSchedule{BusinessID: businessID}, nil
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

func TestSetBlocked(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := now.Add(24 * time.Hour)

	repo := &fakeSlotRepo{
		slot: &domain.Slot{ID: 7, BusinessID: 1, StartUTC: start, IsAvailable: true},
	}

	svc := NewService(repo, &fakeScheduleClient{}, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := svc.SetBlocked(context.Background(), &models.SetBlockedRequest{
		BusinessID: 1,
		StartUTC:   start,
		Blocked:    true,
	})
	require.NoError(t, err)
	require.True(t, repo.gotBlocked)
	require.True(t, resp.IsBlocked)
	require.Equal(t, int64(7), resp.ID)
}

func TestSetBlocked_PastSlotRejected(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	svc := NewService(&fakeSlotRepo{}, &fakeScheduleClient{}, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}

	_, err := svc.SetBlocked(context.Background(), &models.SetBlockedRequest{
		BusinessID: 1,
		StartUTC:   now.Add(-time.Hour),
		Blocked:    true,
	})
	require.ErrorIs(t, err, ErrSlotInPast)
}

func TestSetBlocked_NotFound(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	repo := &fakeSlotRepo{setErr: slotRepo.ErrSlotNotFound}

	svc := NewService(repo, &fakeScheduleClient{}, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}

	_, err := svc.SetBlocked(context.Background(), &models.SetBlockedRequest{
		BusinessID: 1,
		StartUTC:   now.Add(24 * time.Hour),
		Blocked:    true,
	})
	require.ErrorIs(t, err, ErrSlotNotFound)
}

func TestGetHorizon(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	furthest := now.AddDate(0, 0, 380)

	repo := &fakeSlotRepo{
		horizon: &domain.HorizonInfo{BusinessID: 1, FutureSlotCount: 1200, FurthestFutureSlot: &furthest},
	}

	svc := NewService(repo, &fakeScheduleClient{}, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: now}

	resp, err := svc.GetHorizon(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, 1200, resp.FutureSlotCount)
	require.Equal(t, 380, resp.HorizonDays)
}

func TestGetHorizon_UnknownBusiness(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeScheduleClient{err: schedulestore.ErrScheduleNotFound}, nopLogger{})

	_, err := svc.GetHorizon(context.Background(), 99)
	require.ErrorIs(t, err, ErrBusinessNotFound)
}
