package booking

import (
	"time"

	"github.com/lib/pq"
)

type Booking struct {
	ID              int            `db:"id" json:"-"`
	PublicID        string         `db:"public_id" json:"id"`
	Date            string         `db:"date" json:"date"`
	Time            string         `db:"time" json:"time"`
	DurationMinutes int            `db:"duration_minutes" json:"duration"`
	ServiceType     string         `db:"service_type" json:"service_type"`
	Location        string         `db:"location" json:"location"`
	Name            string         `db:"name" json:"name"`
	Phone           string         `db:"phone" json:"phone"`
	Email           string         `db:"email" json:"email"`
	ClubBrand       string         `db:"club_brand" json:"club_brand"`
	ClubLoft        string         `db:"club_loft" json:"club_loft"`
	ClubShaft       string         `db:"club_shaft" json:"club_shaft"`
	Distance        int            `db:"distance" json:"distance"`
	Trajectory      pq.StringArray `db:"trajectory" json:"trajectory"`
	ShotShape       pq.StringArray `db:"shot_shape" json:"shot_shape"`
	Notes           string         `db:"notes" json:"notes"`
	Status          string         `db:"status" json:"status"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

type CreateBookingRequest struct {
	Name            string   `json:"name" binding:"required"`
	Phone           string   `json:"phone" binding:"required"`
	Email           string   `json:"email" binding:"omitempty,email"`
	Date            string   `json:"date" binding:"required"`
	Time            string   `json:"time" binding:"required"`
	DurationMinutes int      `json:"duration" binding:"omitempty,gt=0"`
	ServiceType     string   `json:"service_type"`
	Location        string   `json:"location"`
	ClubBrand       string   `json:"club_brand"`
	ClubLoft        string   `json:"club_loft"`
	ClubShaft       string   `json:"club_shaft"`
	Distance        int      `json:"distance" binding:"omitempty,gte=0"`
	Trajectory      []string `json:"trajectory" binding:"max=2"`
	ShotShape       []string `json:"shot_shape" binding:"max=2"`
	Notes           string   `json:"notes"`
	// HoldID lets a draft book the slot it is itself holding.
	HoldID string `json:"hold_id"`
}

type CreateBookingResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}
