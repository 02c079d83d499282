package book_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/infra/storage/slot"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/notifier"
	"github.com/GreenGloo/Calendar-SlotEngine/internal/integrations/schedulestore"
	"github.com/GreenGloo/Calendar-SlotEngine/pkg/ptr"
)

// Фейки зависимостей

type fakeSlotRepo struct {
	slot *domain.Slot
	err  error
}

func (f *fakeSlotRepo) GetByBusinessAndStart(ctx context.Context, businessID int64, start time.Time) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

type fakeApptRepo struct {
	overlapping []*domain.Appointment
	inserted    *domain.Appointment

	gotWindowStart time.Time
	gotWindowEnd   time.Time
}

func (f *fakeApptRepo) FindOverlapping(ctx context.Context, businessID int64, windowStart, windowEnd time.Time, statuses []domain.AppointmentStatus) ([]*domain.Appointment, error) {
	f.gotWindowStart = windowStart
	f.gotWindowEnd = windowEnd
	return f.overlapping, nil
}

func (f *fakeApptRepo) Insert(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	stored := *appt
	stored.ID = 42
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.inserted = &stored
	return &stored, nil
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

type fakeNotifier struct {
	events []notifier.Event
}

func (f *fakeNotifier) NotifyAsync(businessID int64, event notifier.Event) {
	f.events = append(f.events, event)
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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

// Хелперы

func testSchedule() *schedulestore.BusinessSchedule {
	return &schedulestore.BusinessSchedule{
		BusinessID:          1,
		Timezone:            "America/New_York",
		SlotDurationMinutes: 60,
		SlotStepMinutes:     30,
		Services: []schedulestore.Service{
			{Name: "Plumbing Repair", DurationMinutes: 90, IsActive: true},
			{Name: "Inspection", DurationMinutes: 30, IsActive: true},
		},
	}
}

func newTestUseCase(
	slotRepo *fakeSlotRepo,
	apptRepo *fakeApptRepo,
	scheduleClient *fakeScheduleClient,
	sink *fakeNotifier,
	now time.Time,
) *UseCase {
	uc := NewUseCase(slotRepo, apptRepo, scheduleClient, sink, &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: now}
	return uc
}

func validRequest(start time.Time) *Request {
	return &Request{
		BusinessID:  1,
		StartUTC:    start,
		ServiceName: "Plumbing Repair",
		Customer: domain.CustomerInfo{
			Name:  "John Smith",
			Phone: "+15550100",
			Email: ptr.Ptr("john@example.com"),
		},
	}
}

func TestExecute_Success(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)

	slotRepo := &fakeSlotRepo{slot: &domain.Slot{ID: 7, BusinessID: 1, StartUTC: start, IsAvailable: true}}
	apptRepo := &fakeApptRepo{}
	sink := &fakeNotifier{}

	uc := newTestUseCase(slotRepo, apptRepo, &fakeScheduleClient{schedule: testSchedule()}, sink, now)

	resp, err := uc.Execute(context.Background(), validRequest(start))
	require.NoError(t, err)

	appt := resp.Appointment
	require.Equal(t, int64(42), appt.ID)
	require.Equal(t, domain.StatusScheduled, appt.Status)
	require.Equal(t, "Plumbing Repair", appt.ServiceName)
	require.Equal(t, 90, appt.DurationMinutes)
	require.Equal(t, start, appt.StartUTC)
	require.Equal(t, start.Add(90*time.Minute), appt.EndUTC)

	// Окно повторной проверки конфликтов учитывает буфер с обеих сторон
	require.Equal(t, start.Add(-30*time.Minute), apptRepo.gotWindowStart)
	require.Equal(t, start.Add(90*time.Minute).Add(60*time.Minute), apptRepo.gotWindowEnd)

	// Событие о бронировании отправлено
	require.Len(t, sink.events, 1)
	require.Equal(t, notifier.EventBookingCreated, sink.events[0].Type)
	require.Equal(t, int64(42), sink.events[0].AppointmentID)
	require.NotEmpty(t, sink.events[0].EventID)
}

func TestExecute_NoSlotMeansOutsideBusinessHours(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 3, 30, 0, 0, time.UTC).Add(24 * time.Hour)

	slotRepo := &fakeSlotRepo{err: slot.ErrSlotNotFound}
	sink := &fakeNotifier{}

	uc := newTestUseCase(slotRepo, &fakeApptRepo{}, &fakeScheduleClient{schedule: testSchedule()}, sink, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.ErrorIs(t, err, ErrOutsideBusinessHours)
	require.Empty(t, sink.events)
}

func TestExecute_BlockedSlotConflicts(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)

	slotRepo := &fakeSlotRepo{slot: &domain.Slot{BusinessID: 1, StartUTC: start, IsAvailable: true, IsBlocked: true}}

	uc := newTestUseCase(slotRepo, &fakeApptRepo{}, &fakeScheduleClient{schedule: testSchedule()}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_OverlappingAppointmentConflicts(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)

	slotRepo := &fakeSlotRepo{slot: &domain.Slot{BusinessID: 1, StartUTC: start, IsAvailable: true}}
	apptRepo := &fakeApptRepo{
		overlapping: []*domain.Appointment{
			{BusinessID: 1, StartUTC: start, EndUTC: start.Add(time.Hour), Status: domain.StatusScheduled},
		},
	}
	sink := &fakeNotifier{}

	uc := newTestUseCase(slotRepo, apptRepo, &fakeScheduleClient{schedule: testSchedule()}, sink, now)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.ErrorIs(t, err, ErrSlotConflict)
	require.Nil(t, apptRepo.inserted)
	require.Empty(t, sink.events)
}

func TestExecute_UnknownBusiness(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := now.Add(6 * time.Hour)

	uc := newTestUseCase(
		&fakeSlotRepo{},
		&fakeApptRepo{},
		&fakeScheduleClient{err: schedulestore.ErrScheduleNotFound},
		&fakeNotifier{},
		now,
	)

	_, err := uc.Execute(context.Background(), validRequest(start))
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_UnknownService(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := now.Add(6 * time.Hour)

	req := validRequest(start)
	req.ServiceName = "Exorcism"

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, &fakeScheduleClient{schedule: testSchedule()}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_EmptyServiceNameUsesFirstActive(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC)

	req := validRequest(start)
	req.ServiceName = ""

	slotRepo := &fakeSlotRepo{slot: &domain.Slot{BusinessID: 1, StartUTC: start, IsAvailable: true}}
	apptRepo := &fakeApptRepo{}

	uc := newTestUseCase(slotRepo, apptRepo, &fakeScheduleClient{schedule: testSchedule()}, &fakeNotifier{}, now)

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "Plumbing Repair", resp.Appointment.ServiceName)
}

func TestExecute_PastStartRejected(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, &fakeScheduleClient{schedule: testSchedule()}, &fakeNotifier{}, now)

	_, err := uc.Execute(context.Background(), validRequest(now.Add(-time.Hour)))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ValidationErrors(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	start := now.Add(6 * time.Hour)

	uc := newTestUseCase(&fakeSlotRepo{}, &fakeApptRepo{}, &fakeScheduleClient{schedule: testSchedule()}, &fakeNotifier{}, now)

	noName := validRequest(start)
	noName.Customer.Name = " "
	_, err := uc.Execute(context.Background(), noName)
	require.ErrorIs(t, err, ErrInvalidInput)

	noPhone := validRequest(start)
	noPhone.Customer.Phone = ""
	_, err = uc.Execute(context.Background(), noPhone)
	require.ErrorIs(t, err, ErrInvalidInput)

	badDuration := validRequest(start)
	badDuration.DurationMinutes = 2
	_, err = uc.Execute(context.Background(), badDuration)
	require.ErrorIs(t, err, ErrInvalidDuration)
}
