package customer

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*Profile, error) {
	query := `
		SELECT id, name, phone, email, visit_count, customer_grade,
		       last_visit_date, avg_distance, preferred_trajectory, typical_shot_shape
		FROM customers
		WHERE phone = $1
	`

	var profile Profile
	err := r.db.GetContext(ctx, &profile, query, NormalizePhone(phone))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}
