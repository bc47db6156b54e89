package repository

import (
	"context"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func (r *Repository) CreateSpecialty(specialty *domain.Specialty) error {
	query := `
		INSERT INTO specialties (name, color)
		VALUES ($1, $2)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, specialty.Name, specialty.Color)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetSpecialtyByName(name string) (*domain.Specialty, error) {
	query := `
		SELECT color FROM specialties WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	specialty := &domain.Specialty{
		Name: name,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&specialty.Color); err != nil {
		return nil, err
	}

	return specialty, nil
}

func (r *Repository) GetAllSpecialties() ([]*domain.Specialty, error) {
	query := `
		SELECT name, color FROM specialties ORDER BY name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	specialties := make([]*domain.Specialty, 0)
	for rows.Next() {
		specialty := &domain.Specialty{}
		if err := rows.Scan(&specialty.Name, &specialty.Color); err != nil {
			return nil, err
		}
		specialties = append(specialties, specialty)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return specialties, nil
}

func (r *Repository) DeleteSpecialty(name string) error {
	query := `
		DELETE FROM specialties WHERE name = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, name)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountDoctorsBySpecialty(name string) (int, error) {
	query := `
		SELECT COUNT(*) FROM doctors WHERE specialty = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	count := 0
	if err := r.dbpool.QueryRowContext(ctx, query, name).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
