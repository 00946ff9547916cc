package draft

import (
	"errors"
	"strings"

	"github.com/whalechillz/mas-win-sub012/internal/customer"
)

var ErrNamePhoneRequired = errors.New("name and phone are required to continue")

// toggleSelection adds value to the selection, or removes it when already
// present. A third value is dropped on the floor so the selection never
// exceeds MaxMultiSelect.
func toggleSelection(selected []string, value string) []string {
	for i, v := range selected {
		if v == value {
			return append(append([]string{}, selected[:i]...), selected[i+1:]...)
		}
	}
	if len(selected) >= MaxMultiSelect {
		return selected
	}
	return append(append([]string{}, selected...), value)
}

// applyUpdate merges a partial update into the draft. It returns
// ErrNamePhoneRequired when the update tries to move past step 1 without a
// name and phone.
func applyUpdate(d *Draft, req UpdateDraftRequest) error {
	if req.Name != nil {
		d.Name = *req.Name
	}
	if req.Phone != nil {
		d.Phone = *req.Phone
	}
	if req.Email != nil {
		d.Email = *req.Email
	}
	if req.ClubBrand != nil {
		d.ClubBrand = *req.ClubBrand
		// Loft and shaft pickers only exist while a brand is chosen.
		if d.ClubBrand == "" {
			d.ClubLoft = ""
			d.ClubShaft = ""
		}
	}
	if req.ClubLoft != nil {
		d.ClubLoft = *req.ClubLoft
	}
	if req.ClubShaft != nil {
		d.ClubShaft = *req.ClubShaft
	}
	if req.Distance != nil {
		d.Distance = *req.Distance
	}
	if req.ToggleTrajectory != nil {
		d.Trajectory = toggleSelection(d.Trajectory, *req.ToggleTrajectory)
	}
	if req.ToggleShotShape != nil {
		d.ShotShape = toggleSelection(d.ShotShape, *req.ToggleShotShape)
	}
	if req.Notes != nil {
		d.Notes = *req.Notes
	}

	if req.Step != nil && *req.Step != d.Step {
		if *req.Step > StepBasicInfo && (strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Phone) == "") {
			return ErrNamePhoneRequired
		}
		d.Step = *req.Step
	}

	return nil
}

// applyAutofill copies profile values into fields the customer has not
// touched yet. Already-filled fields keep their value.
func applyAutofill(d *Draft, p *customer.Profile) {
	if d.Name == "" {
		d.Name = p.Name
	}
	if d.Email == "" {
		d.Email = p.Email
	}
	if d.Distance == 0 {
		d.Distance = p.AvgDistance
	}
	if len(d.Trajectory) == 0 && p.PreferredTrajectory != "" {
		d.Trajectory = []string{p.PreferredTrajectory}
	}
	if len(d.ShotShape) == 0 && p.TypicalShotShape != "" {
		d.ShotShape = []string{p.TypicalShotShape}
	}
	d.AutofillApplied = true
}

// Completion weights: the two required fields are half the bar, the four
// profile fields score only once the customer starts filling them in, and
// notes round it out. Presentational only; nothing gates on it.
func Completion(d *Draft) int {
	points := 0

	if strings.TrimSpace(d.Name) != "" {
		points += 25
	}
	if strings.TrimSpace(d.Phone) != "" {
		points += 25
	}

	profileFilled := 0
	if d.ClubBrand != "" {
		profileFilled++
	}
	if d.Distance > 0 {
		profileFilled++
	}
	if len(d.Trajectory) > 0 {
		profileFilled++
	}
	if len(d.ShotShape) > 0 {
		profileFilled++
	}
	if profileFilled > 0 {
		points += profileFilled * 10
	}

	if strings.TrimSpace(d.Notes) != "" {
		points += 10
	}

	return points
}
