package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/logger"
	"github.com/whalechillz/mas-win-sub012/internal/metrics"
	"github.com/whalechillz/mas-win-sub012/internal/notification"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
)

var (
	ErrDateOutsideWindow = errors.New("selected date is outside the booking window")
	ErrDateRestricted    = errors.New("selected date is closed for booking")
	ErrTimeUnavailable   = errors.New("selected time is not available")
)

const (
	defaultServiceType = "fitting"
	defaultLocation    = "수원본점"
)

type Service interface {
	Create(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	GetByPublicID(ctx context.Context, publicID string) (*Booking, error)
	ListByDate(ctx context.Context, date string) ([]Booking, error)
	Cancel(ctx context.Context, publicID string) error
}

type service struct {
	repo         Repository
	scheduleSvc  schedule.Service
	customerRepo customer.Repository
	notifier     *notification.Service
}

func NewService(repo Repository, scheduleSvc schedule.Service, customerRepo customer.Repository, notifier *notification.Service) Service {
	return &service{
		repo:         repo,
		scheduleSvc:  scheduleSvc,
		customerRepo: customerRepo,
		notifier:     notifier,
	}
}

func (s *service) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	window, _ := s.scheduleSvc.Window(ctx)
	if !window.Contains(req.Date) {
		return nil, ErrDateOutsideWindow
	}

	if req.DurationMinutes == 0 {
		req.DurationMinutes = schedule.DefaultDurationMinutes
	}

	day, err := s.scheduleSvc.Day(ctx, req.Date, req.DurationMinutes)
	if err != nil {
		return nil, err
	}
	if day.Restriction {
		return nil, ErrDateRestricted
	}

	if !s.slotSelectable(ctx, day, req) {
		return nil, ErrTimeUnavailable
	}

	if req.ServiceType == "" {
		req.ServiceType = defaultServiceType
	}
	if req.Location == "" {
		req.Location = defaultLocation
	}

	created, err := s.repo.Create(ctx, &Booking{
		PublicID:        uuid.NewString(),
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: req.DurationMinutes,
		ServiceType:     req.ServiceType,
		Location:        req.Location,
		Name:            req.Name,
		Phone:           customer.NormalizePhone(req.Phone),
		Email:           req.Email,
		ClubBrand:       req.ClubBrand,
		ClubLoft:        req.ClubLoft,
		ClubShaft:       req.ClubShaft,
		Distance:        req.Distance,
		Trajectory:      pq.StringArray(req.Trajectory),
		ShotShape:       pq.StringArray(req.ShotShape),
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, err
	}

	if req.HoldID != "" {
		if err := s.scheduleSvc.ReleaseHold(ctx, req.HoldID); err != nil {
			logger.Errorf("Failed to release hold %s after booking: %v", req.HoldID, err)
		}
	}

	metrics.RecordBooking("confirmed", created.ServiceType)
	s.queueConfirmation(ctx, created)

	return created, nil
}

// slotSelectable reports whether the requested time can be booked: either it
// is in the available partition, or it is virtual-reserved by the caller's
// own hold.
func (s *service) slotSelectable(ctx context.Context, day *schedule.DayAvailability, req CreateBookingRequest) bool {
	for _, t := range day.AvailableTimes {
		if t == req.Time {
			return true
		}
	}

	if req.HoldID == "" {
		return false
	}

	hold, err := s.scheduleSvc.GetHold(ctx, req.HoldID)
	if err != nil || hold == nil {
		return false
	}
	return hold.Date == req.Date && hold.Time == req.Time
}

func (s *service) queueConfirmation(ctx context.Context, b *Booking) {
	if s.notifier == nil {
		return
	}

	profile, err := s.customerRepo.FindByPhone(ctx, b.Phone)
	if err != nil {
		logger.Errorf("Customer lookup for confirmation failed: %v", err)
	}
	segment := customer.DetectSegment(profile)

	to := b.Email
	if to == "" {
		to = b.Phone
	}

	if err := s.notifier.QueueBookingConfirmation(ctx, to, b.Name, b.Date, b.Time, segment); err != nil {
		// The booking stands; only the confirmation is lost.
		logger.Errorf("Failed to queue confirmation for booking %s: %v", b.PublicID, err)
	}
}

func (s *service) GetByPublicID(ctx context.Context, publicID string) (*Booking, error) {
	return s.repo.GetByPublicID(ctx, publicID)
}

func (s *service) ListByDate(ctx context.Context, date string) ([]Booking, error) {
	return s.repo.ListByDate(ctx, date)
}

func (s *service) Cancel(ctx context.Context, publicID string) error {
	booking, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return ErrBookingNotFound
	}

	if err := s.repo.Cancel(ctx, publicID); err != nil {
		return err
	}

	metrics.RecordBookingCancellation()

	if s.notifier != nil {
		to := booking.Email
		if to == "" {
			to = booking.Phone
		}
		if err := s.notifier.QueueCancellation(ctx, to, booking.Name, booking.Date, booking.Time); err != nil {
			logger.Errorf("Failed to queue cancellation notice for %s: %v", publicID, err)
		}
	}

	return nil
}
