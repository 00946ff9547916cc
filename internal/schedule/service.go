package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/whalechillz/mas-win-sub012/internal/logger"
	"github.com/whalechillz/mas-win-sub012/internal/metrics"
)

const DefaultDurationMinutes = 60

type Service interface {
	DaySource

	// Settings returns the current policy, falling back to DefaultSettings
	// when the row cannot be read. The bool reports whether the fallback
	// was used.
	Settings(ctx context.Context) (Settings, bool)
	Window(ctx context.Context) (Window, Settings)
	Resolve(ctx context.Context, date string, duration int, autoAdvance bool) (*DayAvailability, int, error)

	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error)
	SetRestriction(ctx context.Context, req RestrictionRequest) error
	ClearRestriction(ctx context.Context, date string) error
	BlockTime(ctx context.Context, req BlockTimeRequest) error
	UnblockTime(ctx context.Context, date, timeOfDay string) error

	PlaceHold(ctx context.Context, draftID, date, timeOfDay string, ttl time.Duration) (*Hold, error)
	ReleaseHold(ctx context.Context, draftID string) error
	GetHold(ctx context.Context, draftID string) (*Hold, error)
}

type service struct {
	repo Repository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		repo: repo,
		loc:  loc,
		now:  func() time.Time { return time.Now().In(loc) },
	}
}

// NewServiceWithClock injects the wall clock; window math depends on "today".
func NewServiceWithClock(repo Repository, loc *time.Location, now func() time.Time) Service {
	s := NewService(repo, loc).(*service)
	s.now = now
	return s
}

func (s *service) Settings(ctx context.Context) (Settings, bool) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		// Degrade to the hardcoded policy rather than failing the flow.
		logger.Errorf("failed to load booking settings, using fallback: %v", err)
		return DefaultSettings(), true
	}
	return *settings, false
}

func (s *service) Window(ctx context.Context) (Window, Settings) {
	settings, _ := s.Settings(ctx)
	return ComputeWindow(settings, s.now()), settings
}

func (s *service) Day(ctx context.Context, date string, duration int) (*DayAvailability, error) {
	if _, err := time.ParseInLocation(DateLayout, date, s.loc); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if duration <= 0 {
		duration = DefaultDurationMinutes
	}

	restriction, err := s.repo.GetRestriction(ctx, date)
	if err != nil {
		return nil, err
	}
	if restriction != nil {
		return &DayAvailability{
			Date:            date,
			AvailableTimes:  []string{},
			VirtualTimes:    []string{},
			BookedTimes:     []string{},
			BlockedTimes:    []string{},
			Restriction:     true,
			Message:         restriction.Message,
			ShowCallMessage: restriction.ShowCallMessage,
		}, nil
	}

	settings, _ := s.Settings(ctx)
	grid := TimeGrid(settings.OpenTime, settings.CloseTime, settings.SlotIntervalMinutes, duration)
	grid = s.dropElapsed(date, grid)

	now := s.now()

	booked, err := s.repo.GetBookedTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	blocked, err := s.repo.GetBlockedTimes(ctx, date)
	if err != nil {
		return nil, err
	}
	held, err := s.repo.GetHeldTimes(ctx, date, now)
	if err != nil {
		return nil, err
	}

	available, virtual, bookedOut, blockedOut := Partition(grid, held, booked, blocked)

	return &DayAvailability{
		Date:           date,
		AvailableTimes: nonNil(available),
		VirtualTimes:   nonNil(virtual),
		BookedTimes:    nonNil(bookedOut),
		BlockedTimes:   nonNil(blockedOut),
	}, nil
}

// dropElapsed removes grid buckets that already started when the requested
// date is today. Future dates pass through untouched.
func (s *service) dropElapsed(date string, grid []string) []string {
	now := s.now()
	if date != now.Format(DateLayout) {
		return grid
	}

	cutoff := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())
	var out []string
	for _, t := range grid {
		if CompareTimes(t, cutoff) > 0 {
			out = append(out, t)
		}
	}
	return out
}

func (s *service) Next(ctx context.Context, fromDate string, duration int) (string, error) {
	window, _ := s.Window(ctx)

	date := fromDate
	if date == "" || date < window.MinDate {
		date = window.MinDate
	}

	for ; date <= window.MaxDate; date = NextDate(date, s.loc) {
		day, err := s.Day(ctx, date, duration)
		if err != nil {
			return "", err
		}
		if !day.Restriction && len(day.AvailableTimes) > 0 {
			return date, nil
		}
	}

	return "", nil
}

func (s *service) Resolve(ctx context.Context, date string, duration int, autoAdvance bool) (*DayAvailability, int, error) {
	day, hops, err := ResolveAvailability(ctx, s, date, duration, autoAdvance, s.loc)
	if err != nil {
		return nil, 0, err
	}

	metrics.RecordAutoAdvance(hops)
	if hops > 0 {
		logger.Debug("auto-advanced to next open date", "from", date, "to", day.Date, "hops", hops)
	}

	return day, hops, nil
}

func (s *service) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	return s.repo.UpdateSettings(ctx, req)
}

func (s *service) SetRestriction(ctx context.Context, req RestrictionRequest) error {
	return s.repo.SetRestriction(ctx, Restriction{
		Date:            req.Date,
		Message:         req.Message,
		ShowCallMessage: req.ShowCallMessage,
	})
}

func (s *service) ClearRestriction(ctx context.Context, date string) error {
	return s.repo.ClearRestriction(ctx, date)
}

func (s *service) BlockTime(ctx context.Context, req BlockTimeRequest) error {
	return s.repo.BlockTime(ctx, req.Date, req.Time, req.Reason)
}

func (s *service) UnblockTime(ctx context.Context, date, timeOfDay string) error {
	return s.repo.UnblockTime(ctx, date, timeOfDay)
}

var ErrSlotUnavailable = errors.New("time slot is not available")

func (s *service) PlaceHold(ctx context.Context, draftID, date, timeOfDay string, ttl time.Duration) (*Hold, error) {
	day, err := s.Day(ctx, date, DefaultDurationMinutes)
	if err != nil {
		return nil, err
	}
	if day.Restriction {
		return nil, ErrSlotUnavailable
	}

	open := false
	for _, t := range day.AvailableTimes {
		if t == timeOfDay {
			open = true
			break
		}
	}
	if !open {
		// re-selecting the slot this draft already holds is fine
		existing, err := s.repo.GetHold(ctx, draftID)
		if err != nil {
			return nil, err
		}
		if existing == nil || existing.Date != date || existing.Time != timeOfDay {
			return nil, ErrSlotUnavailable
		}
	}

	h := Hold{
		DraftID:   draftID,
		Date:      date,
		Time:      timeOfDay,
		ExpiresAt: s.now().Add(ttl),
	}
	if err := s.repo.PlaceHold(ctx, h); err != nil {
		return nil, err
	}

	metrics.SlotHoldsTotal.Inc()
	return &h, nil
}

func (s *service) ReleaseHold(ctx context.Context, draftID string) error {
	return s.repo.ReleaseHold(ctx, draftID)
}

func (s *service) GetHold(ctx context.Context, draftID string) (*Hold, error) {
	return s.repo.GetHold(ctx, draftID)
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

var koreanWeekdays = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatKoreanDate renders an ISO date the way the booking UI displays it,
// e.g. "6월 2일 (월)".
func FormatKoreanDate(date string, loc *time.Location) string {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d월 %d일 (%s)", int(t.Month()), t.Day(), koreanWeekdays[t.Weekday()])
}
