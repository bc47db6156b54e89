package repository

import (
	"context"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func (r *Repository) CreateDoctor(doctor *domain.Doctor) error {
	query := `
		INSERT INTO doctors (dni, full_name, position, employment_status, specialty)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{doctor.DNI, doctor.FullName, doctor.Position, doctor.EmploymentStatus, doctor.Specialty}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doctor.ID, &doctor.CreatedAt, &doctor.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetDoctorByID(id int64) (*domain.Doctor, error) {
	query := `
		SELECT dni, full_name, position, employment_status, specialty, created_at, version
		FROM doctors WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	doctor := &domain.Doctor{
		ID: id,
	}

	dst := []any{&doctor.DNI, &doctor.FullName, &doctor.Position, &doctor.EmploymentStatus, &doctor.Specialty, &doctor.CreatedAt, &doctor.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return doctor, nil
}

func (r *Repository) GetAllDoctors() ([]*domain.Doctor, error) {
	query := `
		SELECT id, dni, full_name, position, employment_status, specialty, created_at, version
		FROM doctors ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doctor := &domain.Doctor{}
		dst := []any{&doctor.ID, &doctor.DNI, &doctor.FullName, &doctor.Position, &doctor.EmploymentStatus, &doctor.Specialty, &doctor.CreatedAt, &doctor.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return doctors, nil
}

func (r *Repository) GetDoctorsBySpecialty(specialty string) ([]*domain.Doctor, error) {
	query := `
		SELECT id, dni, full_name, position, employment_status, specialty, created_at, version
		FROM doctors WHERE specialty = $1 ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		doctor := &domain.Doctor{}
		dst := []any{&doctor.ID, &doctor.DNI, &doctor.FullName, &doctor.Position, &doctor.EmploymentStatus, &doctor.Specialty, &doctor.CreatedAt, &doctor.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		doctors = append(doctors, doctor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return doctors, nil
}

func (r *Repository) UpdateDoctor(doctor *domain.Doctor) error {
	query := `
		UPDATE doctors
		SET
			dni = $1,
			full_name = $2,
			position = $3,
			employment_status = $4,
			specialty = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{doctor.DNI, doctor.FullName, doctor.Position, doctor.EmploymentStatus, doctor.Specialty, doctor.ID, doctor.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doctor.CreatedAt, &doctor.Version); err != nil {
		return err
	}

	return nil
}

// DeleteDoctor removes the doctor; the shifts table cascades on doctor_id.
func (r *Repository) DeleteDoctor(id int64) error {
	query := `
		DELETE FROM doctors WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
