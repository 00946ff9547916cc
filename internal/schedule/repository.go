package schedule

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrRestrictionNotFound = errors.New("restriction not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetSettings(ctx context.Context) (*Settings, error) {
	query := `
		SELECT disable_same_day_booking, min_advance_hours, max_advance_days,
		       open_time, close_time, slot_interval_minutes
		FROM booking_settings
		WHERE id = 1
	`

	var s Settings
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error) {
	query := `
		UPDATE booking_settings SET
			disable_same_day_booking = COALESCE($1, disable_same_day_booking),
			min_advance_hours        = COALESCE($2, min_advance_hours),
			max_advance_days         = COALESCE($3, max_advance_days),
			open_time                = COALESCE($4, open_time),
			close_time               = COALESCE($5, close_time),
			slot_interval_minutes    = COALESCE($6, slot_interval_minutes),
			updated_at               = NOW()
		WHERE id = 1
		RETURNING disable_same_day_booking, min_advance_hours, max_advance_days,
		          open_time, close_time, slot_interval_minutes
	`

	var s Settings
	err := r.db.GetContext(ctx, &s, query,
		req.DisableSameDayBooking,
		req.MinAdvanceHours,
		req.MaxAdvanceDays,
		req.OpenTime,
		req.CloseTime,
		req.SlotIntervalMinutes,
	)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) GetBookedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT time FROM bookings
		WHERE date = $1 AND status = 'booked'
	`

	var times []string
	if err := r.db.SelectContext(ctx, &times, query, date); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *repository) GetBlockedTimes(ctx context.Context, date string) ([]string, error) {
	query := `
		SELECT time FROM blocked_times
		WHERE date = $1
	`

	var times []string
	if err := r.db.SelectContext(ctx, &times, query, date); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *repository) GetHeldTimes(ctx context.Context, date string, now time.Time) ([]string, error) {
	query := `
		SELECT time FROM slot_holds
		WHERE date = $1 AND expires_at > $2
	`

	var times []string
	if err := r.db.SelectContext(ctx, &times, query, date, now); err != nil {
		return nil, err
	}

	return times, nil
}

func (r *repository) GetRestriction(ctx context.Context, date string) (*Restriction, error) {
	query := `
		SELECT date, message, show_call_message
		FROM date_restrictions
		WHERE date = $1
	`

	var restriction Restriction
	err := r.db.GetContext(ctx, &restriction, query, date)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &restriction, nil
}

func (r *repository) SetRestriction(ctx context.Context, restriction Restriction) error {
	query := `
		INSERT INTO date_restrictions (date, message, show_call_message)
		VALUES ($1, $2, $3)
		ON CONFLICT (date) DO UPDATE
		SET message = EXCLUDED.message, show_call_message = EXCLUDED.show_call_message
	`

	_, err := r.db.ExecContext(ctx, query, restriction.Date, restriction.Message, restriction.ShowCallMessage)
	return err
}

func (r *repository) ClearRestriction(ctx context.Context, date string) error {
	query := `DELETE FROM date_restrictions WHERE date = $1`

	result, err := r.db.ExecContext(ctx, query, date)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrRestrictionNotFound
	}

	return nil
}

func (r *repository) BlockTime(ctx context.Context, date, timeOfDay, reason string) error {
	query := `
		INSERT INTO blocked_times (date, time, reason)
		VALUES ($1, $2, $3)
		ON CONFLICT (date, time) DO UPDATE SET reason = EXCLUDED.reason
	`

	_, err := r.db.ExecContext(ctx, query, date, timeOfDay, reason)
	return err
}

func (r *repository) UnblockTime(ctx context.Context, date, timeOfDay string) error {
	query := `DELETE FROM blocked_times WHERE date = $1 AND time = $2`

	_, err := r.db.ExecContext(ctx, query, date, timeOfDay)
	return err
}

func (r *repository) PlaceHold(ctx context.Context, h Hold) error {
	query := `
		INSERT INTO slot_holds (draft_id, date, time, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (draft_id) DO UPDATE
		SET date = EXCLUDED.date, time = EXCLUDED.time, expires_at = EXCLUDED.expires_at
	`

	_, err := r.db.ExecContext(ctx, query, h.DraftID, h.Date, h.Time, h.ExpiresAt)
	return err
}

func (r *repository) ReleaseHold(ctx context.Context, draftID string) error {
	query := `DELETE FROM slot_holds WHERE draft_id = $1`

	_, err := r.db.ExecContext(ctx, query, draftID)
	return err
}

func (r *repository) GetHold(ctx context.Context, draftID string) (*Hold, error) {
	query := `
		SELECT draft_id, date, time, expires_at
		FROM slot_holds
		WHERE draft_id = $1
	`

	var h Hold
	err := r.db.GetContext(ctx, &h, query, draftID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &h, nil
}
