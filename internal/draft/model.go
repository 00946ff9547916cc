package draft

import "time"

const (
	StepBasicInfo       = 1
	StepGolfProfile     = 2
	StepPersonalization = 3
)

// MaxMultiSelect caps the trajectory and shot-shape pickers. Toggling a
// selected value removes it; adding a third is a no-op.
const MaxMultiSelect = 2

// Draft is a booking in progress, stored in redis until it is submitted or
// its TTL runs out. Version increases on every mutation so that a stale
// update (an older snapshot of the form) can be rejected instead of silently
// overwriting newer input.
type Draft struct {
	ID      string `json:"id"`
	Step    int    `json:"step"`
	Version int    `json:"version"`

	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`

	ClubBrand string `json:"club_brand"`
	ClubLoft  string `json:"club_loft"`
	ClubShaft string `json:"club_shaft"`

	Distance   int      `json:"distance"`
	Trajectory []string `json:"trajectory"`
	ShotShape  []string `json:"shot_shape"`

	Notes string `json:"notes"`

	Date string `json:"date"`
	Time string `json:"time"`

	// AutofillApplied is set once a customer lookup has populated the
	// form, so later phone edits never overwrite user input.
	AutofillApplied bool `json:"autofill_applied"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateDraftRequest is a partial form update. Nil fields are left alone.
// Trajectory and shot shape are toggled one value at a time, mirroring the
// picker buttons.
type UpdateDraftRequest struct {
	Version int `json:"version" binding:"gte=0"`

	Step *int `json:"step" binding:"omitempty,min=1,max=3"`

	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email" binding:"omitempty,email"`

	ClubBrand *string `json:"club_brand"`
	ClubLoft  *string `json:"club_loft"`
	ClubShaft *string `json:"club_shaft"`

	Distance *int `json:"distance" binding:"omitempty,gte=0"`

	ToggleTrajectory *string `json:"toggle_trajectory"`
	ToggleShotShape  *string `json:"toggle_shot_shape"`

	Notes *string `json:"notes"`
}

type SelectSlotRequest struct {
	Version int    `json:"version" binding:"gte=0"`
	Date    string `json:"date" binding:"required"`
	Time    string `json:"time" binding:"required"`
}

// DraftResponse wraps a draft with its derived completion percentage.
type DraftResponse struct {
	Draft      *Draft `json:"draft"`
	Completion int    `json:"completion"`
}
