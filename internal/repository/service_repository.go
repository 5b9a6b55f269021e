package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/cleaning-service-api/internal/model"
)

// ServiceRepo reads the static cleaning-service catalog. The catalog is
// seeded out of band and never written through the API, so the repo
// exposes read operations only.
type ServiceRepo struct{ DB *sql.DB }

func NewServiceRepo(db *sql.DB) *ServiceRepo { return &ServiceRepo{DB: db} }

// List returns every catalog entry ordered by name.
func (r *ServiceRepo) List(ctx context.Context) ([]model.Service, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,description,price,duration_hours FROM services ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Service, 0)
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationHours); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Exists reports whether a service with the given id is in the catalog.
func (r *ServiceRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM services WHERE id=? LIMIT 1", id).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
