package draft

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/whalechillz/mas-win-sub012/internal/booking"
	"github.com/whalechillz/mas-win-sub012/internal/customer"
	"github.com/whalechillz/mas-win-sub012/internal/logger"
	"github.com/whalechillz/mas-win-sub012/internal/schedule"
)

var (
	ErrStaleDraft     = errors.New("draft was updated elsewhere, reload and retry")
	ErrNoSlotSelected = errors.New("select a date and time before submitting")
)

type Service interface {
	Create(ctx context.Context) (*Draft, error)
	Get(ctx context.Context, id string) (*Draft, error)
	Update(ctx context.Context, id string, req UpdateDraftRequest) (*Draft, error)
	SelectSlot(ctx context.Context, id string, req SelectSlotRequest) (*Draft, error)
	Submit(ctx context.Context, id string) (*booking.Booking, error)
}

type service struct {
	store        Store
	customerRepo customer.Repository
	scheduleSvc  schedule.Service
	bookingSvc   booking.Service
	holdTTL      time.Duration
	now          func() time.Time
}

func NewService(store Store, customerRepo customer.Repository, scheduleSvc schedule.Service, bookingSvc booking.Service, holdTTL time.Duration) Service {
	return &service{
		store:        store,
		customerRepo: customerRepo,
		scheduleSvc:  scheduleSvc,
		bookingSvc:   bookingSvc,
		holdTTL:      holdTTL,
		now:          time.Now,
	}
}

func (s *service) Create(ctx context.Context) (*Draft, error) {
	d := &Draft{
		ID:         uuid.NewString(),
		Step:       StepBasicInfo,
		Version:    1,
		Trajectory: []string{},
		ShotShape:  []string{},
		CreatedAt:  s.now(),
		UpdatedAt:  s.now(),
	}
	if err := s.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Get(ctx context.Context, id string) (*Draft, error) {
	return s.store.Get(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateDraftRequest) (*Draft, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != d.Version {
		return nil, ErrStaleDraft
	}

	if err := applyUpdate(d, req); err != nil {
		return nil, err
	}

	s.maybeAutofill(ctx, d)

	d.Version++
	d.UpdatedAt = s.now()
	if err := s.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// maybeAutofill runs the customer lookup the first time the phone number is
// long enough to key a profile. A miss leaves the flag unset so a corrected
// typo still gets one shot at autofill.
func (s *service) maybeAutofill(ctx context.Context, d *Draft) {
	if d.AutofillApplied {
		return
	}
	normalized := customer.NormalizePhone(d.Phone)
	if len(normalized) < customer.MinLookupDigits {
		return
	}

	profile, err := s.customerRepo.FindByPhone(ctx, normalized)
	if err != nil {
		logger.Errorf("Autofill lookup for draft %s failed: %v", d.ID, err)
		return
	}
	if profile == nil {
		return
	}

	applyAutofill(d, profile)
}

func (s *service) SelectSlot(ctx context.Context, id string, req SelectSlotRequest) (*Draft, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Version != d.Version {
		return nil, ErrStaleDraft
	}

	if _, err := s.scheduleSvc.PlaceHold(ctx, d.ID, req.Date, req.Time, s.holdTTL); err != nil {
		return nil, err
	}

	d.Date = req.Date
	d.Time = req.Time
	d.Version++
	d.UpdatedAt = s.now()
	if err := s.store.Save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) Submit(ctx context.Context, id string) (*booking.Booking, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Name == "" || d.Phone == "" {
		return nil, ErrNamePhoneRequired
	}
	if d.Date == "" || d.Time == "" {
		return nil, ErrNoSlotSelected
	}

	created, err := s.bookingSvc.Create(ctx, booking.CreateBookingRequest{
		Name:       d.Name,
		Phone:      d.Phone,
		Email:      d.Email,
		Date:       d.Date,
		Time:       d.Time,
		ClubBrand:  d.ClubBrand,
		ClubLoft:   d.ClubLoft,
		ClubShaft:  d.ClubShaft,
		Distance:   d.Distance,
		Trajectory: d.Trajectory,
		ShotShape:  d.ShotShape,
		Notes:      d.Notes,
		HoldID:     d.ID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		logger.Errorf("Failed to delete submitted draft %s: %v", id, err)
	}
	return created, nil
}
