package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
)

type MockBookingRepo struct{ mock.Mock }

func (m *MockBookingRepo) Create(ctx context.Context, b *Booking) (*Booking, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) GetByPublicID(ctx context.Context, publicID string) (*Booking, error) {
	args := m.Called(ctx, publicID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByDate(ctx context.Context, date string) ([]Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockBookingRepo) Cancel(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type MockScheduleService struct{ mock.Mock }

func (m *MockScheduleService) Day(ctx context.Context, date string, duration int) (*schedule.DayAvailability, error) {
	args := m.Called(ctx, date, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.DayAvailability), args.Error(1)
}

func (m *MockScheduleService) Next(ctx context.Context, fromDate string, duration int) (string, error) {
	args := m.Called(ctx, fromDate, duration)
	return args.String(0), args.Error(1)
}

func (m *MockScheduleService) Settings(ctx context.Context) (schedule.Settings, bool) {
	args := m.Called(ctx)
	return args.Get(0).(schedule.Settings), args.Bool(1)
}

func (m *MockScheduleService) Window(ctx context.Context) (schedule.Window, schedule.Settings) {
	args := m.Called(ctx)
	return args.Get(0).(schedule.Window), args.Get(1).(schedule.Settings)
}

func (m *MockScheduleService) Resolve(ctx context.Context, date string, duration int, autoAdvance bool) (*schedule.DayAvailability, int, error) {
	args := m.Called(ctx, date, duration, autoAdvance)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*schedule.DayAvailability), args.Int(1), args.Error(2)
}

func (m *MockScheduleService) UpdateSettings(ctx context.Context, req schedule.UpdateSettingsRequest) (*schedule.Settings, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Settings), args.Error(1)
}

func (m *MockScheduleService) SetRestriction(ctx context.Context, req schedule.RestrictionRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockScheduleService) ClearRestriction(ctx context.Context, date string) error {
	return m.Called(ctx, date).Error(0)
}

func (m *MockScheduleService) BlockTime(ctx context.Context, req schedule.BlockTimeRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockScheduleService) UnblockTime(ctx context.Context, date, timeOfDay string) error {
	return m.Called(ctx, date, timeOfDay).Error(0)
}

func (m *MockScheduleService) PlaceHold(ctx context.Context, draftID, date, timeOfDay string, ttl time.Duration) (*schedule.Hold, error) {
	args := m.Called(ctx, draftID, date, timeOfDay, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Hold), args.Error(1)
}

func (m *MockScheduleService) ReleaseHold(ctx context.Context, draftID string) error {
	return m.Called(ctx, draftID).Error(0)
}

func (m *MockScheduleService) GetHold(ctx context.Context, draftID string) (*schedule.Hold, error) {
	args := m.Called(ctx, draftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Hold), args.Error(1)
}

type MockCustomerRepo struct{ mock.Mock }

func (m *MockCustomerRepo) FindByPhone(ctx context.Context, phone string) (*customer.Profile, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Profile), args.Error(1)
}

func testWindow() schedule.Window {
	return schedule.Window{MinDate: "2025-06-02", MaxDate: "2025-06-15"}
}

func openDay(date string, times ...string) *schedule.DayAvailability {
	return &schedule.DayAvailability{
		Date:           date,
		AvailableTimes: times,
		VirtualTimes:   []string{},
		BookedTimes:    []string{},
		BlockedTimes:   []string{},
	}
}

func newTestService(repo Repository, sched schedule.Service) Service {
	// nil notifier: confirmation queueing is skipped, which keeps these
	// tests off the network.
	return NewService(repo, sched, new(MockCustomerRepo), nil)
}

func TestCreateBooking(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	req := CreateBookingRequest{
		Name:  "홍길동",
		Phone: "010-1234-5678",
		Date:  "2025-06-02",
		Time:  "10:00",
	}

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-02", 60).
		Return(openDay("2025-06-02", "10:00", "11:00"), nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *Booking) bool {
		return b.Date == "2025-06-02" && b.Time == "10:00" &&
			b.Phone == "01012345678" && b.PublicID != "" &&
			b.ServiceType == "fitting" && b.DurationMinutes == 60
	})).Return(&Booking{PublicID: "pub-1", Date: "2025-06-02", Time: "10:00", ServiceType: "fitting"}, nil)

	created, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "pub-1", created.PublicID)
	repo.AssertExpectations(t)
	sched.AssertNotCalled(t, "ReleaseHold", mock.Anything, mock.Anything)
}

func TestCreateBookingDateOutsideWindow(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-07-01", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrDateOutsideWindow)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingRestrictedDate(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-05", 60).Return(&schedule.DayAvailability{
		Date:           "2025-06-05",
		AvailableTimes: []string{},
		Restriction:    true,
		Message:        "마감",
	}, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-06-05", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrDateRestricted)
}

func TestCreateBookingTimeUnavailable(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-02", 60).
		Return(openDay("2025-06-02", "11:00", "12:00"), nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-06-02", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrTimeUnavailable)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBookingWithOwnHold(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	// The slot is virtual-reserved by the caller's own draft, so it is
	// absent from the available partition but still bookable.
	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-02", 60).
		Return(&schedule.DayAvailability{
			Date:           "2025-06-02",
			AvailableTimes: []string{"11:00"},
			VirtualTimes:   []string{"10:00"},
			BookedTimes:    []string{},
			BlockedTimes:   []string{},
		}, nil)
	sched.On("GetHold", mock.Anything, "draft-1").
		Return(&schedule.Hold{DraftID: "draft-1", Date: "2025-06-02", Time: "10:00"}, nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(&Booking{PublicID: "pub-2", Date: "2025-06-02", Time: "10:00", ServiceType: "fitting"}, nil)
	sched.On("ReleaseHold", mock.Anything, "draft-1").Return(nil)

	created, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-06-02", Time: "10:00", HoldID: "draft-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "pub-2", created.PublicID)
	sched.AssertCalled(t, "ReleaseHold", mock.Anything, "draft-1")
}

func TestCreateBookingForeignHoldRejected(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-02", 60).
		Return(openDay("2025-06-02", "11:00"), nil)
	// The hold exists but covers a different bucket.
	sched.On("GetHold", mock.Anything, "draft-1").
		Return(&schedule.Hold{DraftID: "draft-1", Date: "2025-06-02", Time: "14:00"}, nil)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-06-02", Time: "10:00", HoldID: "draft-1",
	})
	assert.ErrorIs(t, err, ErrTimeUnavailable)
}

func TestCreateBookingSlotRace(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	sched.On("Window", mock.Anything).Return(testWindow(), schedule.DefaultSettings())
	sched.On("Day", mock.Anything, "2025-06-02", 60).
		Return(openDay("2025-06-02", "10:00"), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil, ErrSlotTaken)

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		Name: "홍길동", Phone: "01012345678", Date: "2025-06-02", Time: "10:00",
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestCancelBooking(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	repo.On("GetByPublicID", mock.Anything, "pub-1").
		Return(&Booking{PublicID: "pub-1", Date: "2025-06-02", Time: "10:00"}, nil)
	repo.On("Cancel", mock.Anything, "pub-1").Return(nil)

	err := svc.Cancel(context.Background(), "pub-1")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCancelBookingNotFound(t *testing.T) {
	repo := new(MockBookingRepo)
	sched := new(MockScheduleService)
	svc := newTestService(repo, sched)

	repo.On("GetByPublicID", mock.Anything, "missing").Return(nil, errors.New("sql: no rows"))

	err := svc.Cancel(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrBookingNotFound)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}
