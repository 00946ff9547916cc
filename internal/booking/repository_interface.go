package booking

import "context"

type Repository interface {
	Create(ctx context.Context, b *Booking) (*Booking, error)
	GetByPublicID(ctx context.Context, publicID string) (*Booking, error)
	ListByDate(ctx context.Context, date string) ([]Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]Booking, error)
	Cancel(ctx context.Context, publicID string) error
}
