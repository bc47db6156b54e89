package repository

import (
	"context"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// Only custom types live in the database; the standard table is compiled in
// and merged by the catalog package.

func (r *Repository) CreateShiftType(shiftType *domain.ShiftTypeDefinition) error {
	query := `
		INSERT INTO shift_types (id, name, abbreviation, duration_hours, start_time, end_time, color, specialty)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shiftType.ID, shiftType.Name, shiftType.Abbreviation, shiftType.DurationHours, shiftType.StartTime, shiftType.EndTime, shiftType.Color, shiftType.Specialty}
	_, err := r.dbpool.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftTypeByID(id string) (*domain.ShiftTypeDefinition, error) {
	query := `
		SELECT name, abbreviation, duration_hours, start_time, end_time, color, specialty
		FROM shift_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shiftType := &domain.ShiftTypeDefinition{
		ID: id,
	}

	dst := []any{&shiftType.Name, &shiftType.Abbreviation, &shiftType.DurationHours, &shiftType.StartTime, &shiftType.EndTime, &shiftType.Color, &shiftType.Specialty}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return shiftType, nil
}

func (r *Repository) GetCustomShiftTypes() ([]*domain.ShiftTypeDefinition, error) {
	query := `
		SELECT id, name, abbreviation, duration_hours, start_time, end_time, color, specialty
		FROM shift_types ORDER BY id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shiftTypes := make([]*domain.ShiftTypeDefinition, 0)
	for rows.Next() {
		shiftType := &domain.ShiftTypeDefinition{}
		dst := []any{&shiftType.ID, &shiftType.Name, &shiftType.Abbreviation, &shiftType.DurationHours, &shiftType.StartTime, &shiftType.EndTime, &shiftType.Color, &shiftType.Specialty}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		shiftTypes = append(shiftTypes, shiftType)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shiftTypes, nil
}

func (r *Repository) DeleteShiftType(id string) error {
	query := `
		DELETE FROM shift_types WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
