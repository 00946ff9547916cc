package schedule

import (
	"context"
	"time"
)

type Repository interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*Settings, error)
	GetBookedTimes(ctx context.Context, date string) ([]string, error)
	GetBlockedTimes(ctx context.Context, date string) ([]string, error)
	GetHeldTimes(ctx context.Context, date string, now time.Time) ([]string, error)
	GetRestriction(ctx context.Context, date string) (*Restriction, error)
	SetRestriction(ctx context.Context, r Restriction) error
	ClearRestriction(ctx context.Context, date string) error
	BlockTime(ctx context.Context, date, timeOfDay, reason string) error
	UnblockTime(ctx context.Context, date, timeOfDay string) error

	// Slot holds back the virtual-reserved partition. A draft owns at most
	// one hold; placing a new one replaces the old.
	PlaceHold(ctx context.Context, h Hold) error
	ReleaseHold(ctx context.Context, draftID string) error
	GetHold(ctx context.Context, draftID string) (*Hold, error)
}
