package booking

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrBookingNotFound                   = errors.New("booking not found")
	ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")
	// ErrSlotTaken surfaces the unique index on (date, time) for booked rows:
	// the last line of defense when two requests race for the same bucket.
	ErrSlotTaken = errors.New("this time has just been booked")
)

const bookingColumns = `id, public_id, date, time, duration_minutes, service_type, location,
		name, phone, email, club_brand, club_loft, club_shaft,
		distance, trajectory, shot_shape, notes, status, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Booking) (*Booking, error) {
	query := `
		INSERT INTO bookings (
			public_id, date, time, duration_minutes, service_type, location,
			name, phone, email, club_brand, club_loft, club_shaft,
			distance, trajectory, shot_shape, notes, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, 'booked')
		RETURNING ` + bookingColumns + `
	`

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.PublicID, b.Date, b.Time, b.DurationMinutes, b.ServiceType, b.Location,
		b.Name, b.Phone, b.Email, b.ClubBrand, b.ClubLoft, b.ClubShaft,
		b.Distance, b.Trajectory, b.ShotShape, b.Notes,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByPublicID(ctx context.Context, publicID string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE public_id = $1`

	var b Booking
	if err := r.db.GetContext(ctx, &b, query, publicID); err != nil {
		return nil, ErrBookingNotFound
	}

	return &b, nil
}

func (r *repository) ListByDate(ctx context.Context, date string) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE date = $1 ORDER BY time`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, date); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListByPhone(ctx context.Context, phone string) ([]Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE phone = $1 ORDER BY date DESC, time DESC`

	var bookings []Booking
	if err := r.db.SelectContext(ctx, &bookings, query, phone); err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) Cancel(ctx context.Context, publicID string) error {
	query := `
		UPDATE bookings
		SET status = 'cancelled'
		WHERE public_id = $1 AND status = 'booked'
	`

	result, err := r.db.ExecContext(ctx, query, publicID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}
