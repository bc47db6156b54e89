package rules

import (
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// Validator checks a proposed assignment against a doctor's existing shifts.
// The rules run in a fixed order and the first violation wins; a nil result
// means the assignment is acceptable. The validator is pure: the caller is
// responsible for loading the shifts and for committing under a lock.
type Validator struct {
	catalog    *catalog.Catalog
	thresholds Thresholds
	accountant *Accountant
}

func NewValidator(c *catalog.Catalog, t Thresholds) *Validator {
	return &Validator{
		catalog:    c,
		thresholds: t,
		accountant: NewAccountant(c),
	}
}

func (v *Validator) Thresholds() Thresholds {
	return v.thresholds
}

func (v *Validator) Accountant() *Accountant {
	return v.accountant
}

// Validate runs the rule chain for the proposal. existing should hold the
// doctor's current shifts; entries for other doctors are ignored. When the
// proposal replaces a shift (edit), p.ExcludeShiftID names it and every rule
// except the rest rule skips that shift.
func (v *Validator) Validate(p *domain.ProposedAssignment, existing []*domain.Shift) *Rejection {
	// The date anchors every rule below; a proposal that cannot name its day
	// is rejected outright. Handlers validate the format too, but proposals
	// also arrive from the generator, which is not to be trusted on formats.
	if _, err := time.Parse(domain.DateLayout, p.Date); err != nil {
		return &Rejection{Code: CodeInvalidDate}
	}

	def, ok := v.catalog.Resolve(p.ShiftTypeID)
	if !ok {
		return &Rejection{Code: CodeUnknownShiftType}
	}

	if rej := v.checkWeeklyCap(p, def, existing); rej != nil {
		return rej
	}
	if rej := v.checkMonthlyCap(p, def, existing); rej != nil {
		return rej
	}
	if rej := v.checkVacationExclusivity(p, def, existing); rej != nil {
		return rej
	}
	if rej := v.checkRestAfterNight(p, existing); rej != nil {
		return rej
	}
	return v.checkTimeOverlap(p, def, existing)
}

func (v *Validator) checkWeeklyCap(p *domain.ProposedAssignment, def *domain.ShiftTypeDefinition, existing []*domain.Shift) *Rejection {
	start, end, err := WeekWindow(p.Date)
	if err != nil {
		return nil
	}

	current := 0.0
	for _, s := range existing {
		if v.skip(p, s) {
			continue
		}
		d, err := time.Parse(domain.DateLayout, s.Date)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(end) {
			current += v.catalog.DurationOf(s.ShiftTypeID)
		}
	}

	total := current + def.DurationHours
	if total > v.thresholds.MaxWeekly {
		return &Rejection{Code: CodeWeeklyCapExceeded, TotalHours: total, MaxHours: v.thresholds.MaxWeekly}
	}
	return nil
}

// checkMonthlyCap projects the doctor's monthly total after the change:
// current hours minus the replaced shift's hours plus the proposed hours.
func (v *Validator) checkMonthlyCap(p *domain.ProposedAssignment, def *domain.ShiftTypeDefinition, existing []*domain.Shift) *Rejection {
	d, err := time.Parse(domain.DateLayout, p.Date)
	if err != nil {
		return nil
	}

	current := v.accountant.MonthlyHours(existing, p.DoctorID, d.Year(), d.Month())

	old := 0.0
	if p.ExcludeShiftID != nil {
		for _, s := range existing {
			if s.ID == *p.ExcludeShiftID && s.DoctorID == p.DoctorID {
				old = v.catalog.DurationOf(s.ShiftTypeID)
				break
			}
		}
	}

	projected := current - old + def.DurationHours
	if projected > v.thresholds.MonthlyMax {
		return &Rejection{Code: CodeMonthlyCapExceeded, TotalHours: projected, MaxHours: v.thresholds.MonthlyMax}
	}
	return nil
}

// checkVacationExclusivity enforces both directions: a vacation cannot join a
// day that already has work, and work cannot join a day on vacation.
func (v *Validator) checkVacationExclusivity(p *domain.ProposedAssignment, def *domain.ShiftTypeDefinition, existing []*domain.Shift) *Rejection {
	for _, s := range existing {
		if v.skip(p, s) || s.Date != p.Date {
			continue
		}
		if def.ID == domain.ShiftTypeVacation {
			return &Rejection{Code: CodeVacationConflict}
		}
		if s.ShiftTypeID == domain.ShiftTypeVacation {
			return &Rejection{Code: CodeVacationConflict}
		}
	}
	return nil
}

// checkRestAfterNight blocks any assignment, vacation included, on the day
// after a night-type shift. The replaced shift is deliberately not excluded
// here: the rest obligation comes from the night already on the books.
func (v *Validator) checkRestAfterNight(p *domain.ProposedAssignment, existing []*domain.Shift) *Rejection {
	d, err := time.Parse(domain.DateLayout, p.Date)
	if err != nil {
		return nil
	}
	prev := d.AddDate(0, 0, -1).Format(domain.DateLayout)

	for _, s := range existing {
		if s.DoctorID != p.DoctorID || s.Date != prev {
			continue
		}
		if domain.IsNightType(s.ShiftTypeID) {
			return &Rejection{Code: CodeInsufficientRest}
		}
	}
	return nil
}

func (v *Validator) checkTimeOverlap(p *domain.ProposedAssignment, def *domain.ShiftTypeDefinition, existing []*domain.Shift) *Rejection {
	if !def.Timed() {
		return nil
	}
	newStart, newEnd := clockInterval(def)

	for _, s := range existing {
		if v.skip(p, s) || s.Date != p.Date {
			continue
		}
		other, ok := v.catalog.Resolve(s.ShiftTypeID)
		if !ok || !other.Timed() {
			continue
		}
		otherStart, otherEnd := clockInterval(other)
		if newStart < otherEnd && newEnd > otherStart {
			return &Rejection{Code: CodeTimeOverlap, OtherShiftID: s.ID}
		}
	}
	return nil
}

// skip reports whether a shift is out of scope for the proposal: another
// doctor's shift, or the one being replaced.
func (v *Validator) skip(p *domain.ProposedAssignment, s *domain.Shift) bool {
	if s.DoctorID != p.DoctorID {
		return true
	}
	return p.ExcludeShiftID != nil && s.ID == *p.ExcludeShiftID
}

// clockInterval maps a timed definition to minutes since midnight, half-open.
// An end at or before the start means the shift wraps past midnight and the
// end is pushed into the next day.
func clockInterval(def *domain.ShiftTypeDefinition) (start, end int) {
	start = minutesOfDay(def.StartTime)
	end = minutesOfDay(def.EndTime)
	if end <= start {
		end += 24 * 60
	}
	return start, end
}

func minutesOfDay(hhmm string) int {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}
