package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (doctor_id, date, shift_type_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.DoctorID, shift.Date, shift.ShiftTypeID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetShiftByID(id int64) (*domain.Shift, error) {
	query := `
		SELECT doctor_id, to_char(date, 'YYYY-MM-DD'), shift_type_id
		FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	shift := &domain.Shift{
		ID: id,
	}

	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(&shift.DoctorID, &shift.Date, &shift.ShiftTypeID); err != nil {
		return nil, err
	}

	return shift, nil
}

func (r *Repository) GetShiftsByDoctor(doctorID int64) ([]*domain.Shift, error) {
	query := `
		SELECT id, doctor_id, to_char(date, 'YYYY-MM-DD'), shift_type_id
		FROM shifts WHERE doctor_id = $1 ORDER BY date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

// GetShiftsByMonth returns every doctor's shifts whose date falls in the
// calendar month.
func (r *Repository) GetShiftsByMonth(year int, month time.Month) ([]*domain.Shift, error) {
	query := `
		SELECT id, doctor_id, to_char(date, 'YYYY-MM-DD'), shift_type_id
		FROM shifts
		WHERE date >= $1 AND date < $2
		ORDER BY date, doctor_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	rows, err := r.dbpool.QueryContext(ctx, query, first.Format(domain.DateLayout), next.Format(domain.DateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

// GetShiftsByMonthAndSpecialty narrows the month view to doctors of one
// specialty.
func (r *Repository) GetShiftsByMonthAndSpecialty(year int, month time.Month, specialty string) ([]*domain.Shift, error) {
	query := `
		SELECT s.id, s.doctor_id, to_char(s.date, 'YYYY-MM-DD'), s.shift_type_id
		FROM shifts s
		JOIN doctors d ON d.id = s.doctor_id
		WHERE s.date >= $1 AND s.date < $2 AND d.specialty = $3
		ORDER BY s.date, s.doctor_id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	rows, err := r.dbpool.QueryContext(ctx, query, first.Format(domain.DateLayout), next.Format(domain.DateLayout), specialty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanShifts(rows)
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			doctor_id = $1,
			date = $2,
			shift_type_id = $3
		WHERE id = $4
		RETURNING id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.DoctorID, shift.Date, shift.ShiftTypeID, shift.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.ID); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id int64) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}

func (r *Repository) CountShiftsByType(shiftTypeID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM shifts WHERE shift_type_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	count := 0
	if err := r.dbpool.QueryRowContext(ctx, query, shiftTypeID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func scanShifts(rows *sql.Rows) ([]*domain.Shift, error) {
	shifts := make([]*domain.Shift, 0)
	for rows.Next() {
		shift := &domain.Shift{}
		if err := rows.Scan(&shift.ID, &shift.DoctorID, &shift.Date, &shift.ShiftTypeID); err != nil {
			return nil, err
		}
		shifts = append(shifts, shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}
