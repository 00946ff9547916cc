package schedule

import "time"

// ComputeWindow derives the selectable date range from the booking policy.
//
// The minimum date starts at today, or tomorrow when same-day booking is
// disabled. When a minimum advance of N hours is configured, now+N truncated
// to midnight competes with that candidate and the later date wins. The
// maximum date is always today+max_advance_days.
func ComputeWindow(s Settings, now time.Time) Window {
	today := truncateToDate(now)

	min := today
	if s.DisableSameDayBooking {
		min = today.AddDate(0, 0, 1)
	}

	if s.MinAdvanceHours > 0 {
		candidate := truncateToDate(now.Add(time.Duration(s.MinAdvanceHours) * time.Hour))
		if candidate.After(min) {
			min = candidate
		}
	}

	max := today.AddDate(0, 0, s.MaxAdvanceDays)

	return Window{
		MinDate: min.Format(DateLayout),
		MaxDate: max.Format(DateLayout),
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextDate returns the ISO date one day after the given one. Malformed input
// is returned unchanged so callers degrade instead of panicking.
func NextDate(date string, loc *time.Location) string {
	t, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, 1).Format(DateLayout)
}
