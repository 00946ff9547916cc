package equipment

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	SearchBrands(ctx context.Context, query string) ([]string, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SearchBrands(ctx context.Context, query string) ([]string, error) {
	sqlQuery := `
		SELECT name FROM club_brands
		WHERE name ILIKE '%' || $1 || '%'
		ORDER BY name
		LIMIT 20
	`

	var brands []string
	if err := r.db.SelectContext(ctx, &brands, sqlQuery, query); err != nil {
		return nil, err
	}

	return brands, nil
}
