package rules

import (
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// Thresholds are the configured hour limits. MaxWeekly and MonthlyMax block;
// MonthlyWarning and MonthlyMin only color the reported status.
type Thresholds struct {
	MaxWeekly      float64 `json:"maxWeeklyHours"`
	MonthlyWarning float64 `json:"monthlyHoursWarning"`
	MonthlyMax     float64 `json:"monthlyHoursMax"`
	MonthlyMin     float64 `json:"monthlyHoursMin"`
}

type MonthlyStatus string

const (
	StatusLow      MonthlyStatus = "low"
	StatusOK       MonthlyStatus = "ok"
	StatusWarning  MonthlyStatus = "warning"
	StatusCritical MonthlyStatus = "critical"
)

// MonthlyStatus buckets a monthly total against the advisory bands.
func (t Thresholds) MonthlyStatus(hours float64) MonthlyStatus {
	switch {
	case hours >= t.MonthlyMax:
		return StatusCritical
	case hours > t.MonthlyWarning:
		return StatusWarning
	case hours < t.MonthlyMin:
		return StatusLow
	default:
		return StatusOK
	}
}

// Accountant sums a doctor's worked hours over calendar-month and
// Sunday-to-Saturday week windows. Pure: it only reads the shift slice and the
// catalog it was built with.
type Accountant struct {
	catalog *catalog.Catalog
}

func NewAccountant(c *catalog.Catalog) *Accountant {
	return &Accountant{catalog: c}
}

// MonthlyHours sums the durations of the doctor's shifts whose date falls in
// the given calendar month. Dates are calendar-local; no timezone shifting.
func (a *Accountant) MonthlyHours(shifts []*domain.Shift, doctorID int64, year int, month time.Month) float64 {
	total := 0.0
	for _, s := range shifts {
		if s.DoctorID != doctorID {
			continue
		}
		d, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			continue
		}
		if d.Year() == year && d.Month() == month {
			total += a.catalog.DurationOf(s.ShiftTypeID)
		}
	}
	return total
}

// WeeklyHours sums the durations of the doctor's shifts inside the week window
// containing anchorDate.
func (a *Accountant) WeeklyHours(shifts []*domain.Shift, doctorID int64, anchorDate string) float64 {
	start, end, err := WeekWindow(anchorDate)
	if err != nil {
		return 0
	}

	total := 0.0
	for _, s := range shifts {
		if s.DoctorID != doctorID {
			continue
		}
		d, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			total += a.catalog.DurationOf(s.ShiftTypeID)
		}
	}
	return total
}

// WeekWindow returns the Sunday on/before the date and the following Saturday,
// both inclusive. The arithmetic is date-only in UTC, so the boundary does not
// move with the caller's timezone.
func WeekWindow(date string) (start, end time.Time, err error) {
	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	start = d.AddDate(0, 0, -int(d.Weekday()))
	end = start.AddDate(0, 0, 6)
	return start, end, nil
}
