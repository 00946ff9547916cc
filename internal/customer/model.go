package customer

import "time"

// Profile is the read-only customer record keyed by normalized phone number.
// The booking flow never creates or mutates profiles; they are maintained by
// the store's CRM import.
type Profile struct {
	ID                 int        `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Phone              string     `db:"phone" json:"phone"`
	Email              string     `db:"email" json:"email"`
	VisitCount         int        `db:"visit_count" json:"visit_count"`
	CustomerGrade      string     `db:"customer_grade" json:"customer_grade"`
	LastVisitDate      *time.Time `db:"last_visit_date" json:"last_visit_date"`
	AvgDistance        int        `db:"avg_distance" json:"avg_distance"`
	PreferredTrajectory string    `db:"preferred_trajectory" json:"preferred_trajectory"`
	TypicalShotShape   string     `db:"typical_shot_shape" json:"typical_shot_shape"`
}

type LookupResponse struct {
	Customer *Profile `json:"customer"`
}
