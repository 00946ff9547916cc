package schedule

import "time"

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// Settings is the booking policy row. A single row drives the whole flow;
// it is re-read on every request so admin edits take effect immediately.
type Settings struct {
	DisableSameDayBooking bool   `db:"disable_same_day_booking" json:"disable_same_day_booking"`
	MinAdvanceHours       int    `db:"min_advance_hours" json:"min_advance_hours"`
	MaxAdvanceDays        int    `db:"max_advance_days" json:"max_advance_days"`
	OpenTime              string `db:"open_time" json:"open_time"`
	CloseTime             string `db:"close_time" json:"close_time"`
	SlotIntervalMinutes   int    `db:"slot_interval_minutes" json:"slot_interval_minutes"`
}

// DefaultSettings is the silent fallback policy used when the settings row
// cannot be read: bookings open from tomorrow through today+14.
func DefaultSettings() Settings {
	return Settings{
		DisableSameDayBooking: true,
		MinAdvanceHours:       0,
		MaxAdvanceDays:        14,
		OpenTime:              "10:00",
		CloseTime:             "19:00",
		SlotIntervalMinutes:   60,
	}
}

// Window is the inclusive range of selectable booking dates.
type Window struct {
	MinDate string `json:"min_date" example:"2025-06-02"`
	MaxDate string `json:"max_date" example:"2025-06-15"`
}

// Contains reports whether date (YYYY-MM-DD) falls inside the window.
// String comparison is safe for ISO dates.
func (w Window) Contains(date string) bool {
	return date >= w.MinDate && date <= w.MaxDate
}

// Restriction closes a whole date for booking with an operator-supplied
// message. A restricted date never auto-advances.
type Restriction struct {
	Date            string `db:"date" json:"date"`
	Message         string `db:"message" json:"message"`
	ShowCallMessage bool   `db:"show_call_message" json:"show_call_message"`
}

// DayAvailability is the per-date partition of time buckets. Every bucket
// belongs to exactly one of the four sets.
type DayAvailability struct {
	Date            string   `json:"date"`
	AvailableTimes  []string `json:"available_times"`
	VirtualTimes    []string `json:"virtual_times"`
	BookedTimes     []string `json:"booked_times"`
	BlockedTimes    []string `json:"blocked_times"`
	Restriction     bool     `json:"restriction,omitempty"`
	Message         string   `json:"message,omitempty"`
	ShowCallMessage bool     `json:"show_call_message,omitempty"`
}

// Hold is a short-lived claim on a time bucket placed while a customer is
// mid-wizard. Active holds surface as virtual-reserved times.
type Hold struct {
	DraftID   string    `db:"draft_id" json:"draft_id"`
	Date      string    `db:"date" json:"date"`
	Time      string    `db:"time" json:"time"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

type UpdateSettingsRequest struct {
	DisableSameDayBooking *bool   `json:"disable_same_day_booking"`
	MinAdvanceHours       *int    `json:"min_advance_hours" binding:"omitempty,gte=0"`
	MaxAdvanceDays        *int    `json:"max_advance_days" binding:"omitempty,gt=0"`
	OpenTime              *string `json:"open_time"`
	CloseTime             *string `json:"close_time"`
	SlotIntervalMinutes   *int    `json:"slot_interval_minutes" binding:"omitempty,gt=0"`
}

type BlockTimeRequest struct {
	Date   string `json:"date" binding:"required"`
	Time   string `json:"time" binding:"required"`
	Reason string `json:"reason"`
}

type RestrictionRequest struct {
	Date            string `json:"date" binding:"required"`
	Message         string `json:"message" binding:"required"`
	ShowCallMessage bool   `json:"show_call_message"`
}
