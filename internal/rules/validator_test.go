package rules

import (
	"fmt"
	"testing"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func newTestValidator(custom ...*domain.ShiftTypeDefinition) *Validator {
	return NewValidator(catalog.New(custom), testThresholds)
}

func proposal(doctorID int64, date, shiftTypeID string) *domain.ProposedAssignment {
	return &domain.ProposedAssignment{DoctorID: doctorID, Date: date, ShiftTypeID: shiftTypeID}
}

func editProposal(doctorID int64, date, shiftTypeID string, excludeID int64) *domain.ProposedAssignment {
	p := proposal(doctorID, date, shiftTypeID)
	p.ExcludeShiftID = &excludeID
	return p
}

func TestUnknownShiftTypeShortCircuits(t *testing.T) {
	v := newTestValidator()

	// Even with a schedule that would trip every other rule, the unknown type
	// must be reported first.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-14", ShiftTypeID: domain.ShiftTypeNightGuard},
		{ID: 2, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeVacation},
	}

	rej := v.Validate(proposal(1, "2024-05-15", "turno_misterioso"), existing)
	if rej == nil || rej.Code != CodeUnknownShiftType {
		t.Fatalf("rejection = %+v, want %s", rej, CodeUnknownShiftType)
	}
}

func TestInvalidDateRejected(t *testing.T) {
	v := newTestValidator()

	// A date no rule can anchor on must not slide through the chain, even
	// when the schedule holds a night that would otherwise demand rest.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-14", ShiftTypeID: domain.ShiftTypeNightGuard},
	}

	for _, date := range []string{"", "not-a-date", "15/05/2024", "2024-13-40"} {
		rej := v.Validate(proposal(1, date, domain.ShiftTypeNightGuard), existing)
		if rej == nil || rej.Code != CodeInvalidDate {
			t.Errorf("date %q: rejection = %+v, want %s", date, rej, CodeInvalidDate)
		}
	}
}

func TestValidationIsIdempotent(t *testing.T) {
	v := newTestValidator()

	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-13", ShiftTypeID: domain.ShiftTypeMorningAfternoon},
	}
	p := proposal(1, "2024-05-15", domain.ShiftTypeMorning)

	first := v.Validate(p, existing)
	second := v.Validate(p, existing)
	if first != nil || second != nil {
		t.Fatalf("rejections = %v, %v, want nil, nil", first, second)
	}
	if len(existing) != 1 {
		t.Fatal("validation mutated the shift slice")
	}
}

func TestWeeklyCapBoundary(t *testing.T) {
	v := newTestValidator(
		&domain.ShiftTypeDefinition{ID: "custom_g7", Name: "Guardia Corta", Abbreviation: "G7", DurationHours: 7, StartTime: "00:00", EndTime: "07:00"},
	)

	// 30 hours already inside the week of 2024-05-12..18.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-13", ShiftTypeID: domain.ShiftTypeNight},            // 12
		{ID: 2, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorningAfternoon}, // 12
		{ID: 3, DoctorID: 1, Date: "2024-05-17", ShiftTypeID: domain.ShiftTypeMorning},          // 6
	}

	// Exactly at the cap is allowed.
	if rej := v.Validate(proposal(1, "2024-05-16", domain.ShiftTypeAfternoon), existing); rej != nil {
		t.Fatalf("36h total rejected: %+v", rej)
	}

	// One hour over blocks and reports both numbers.
	rej := v.Validate(proposal(1, "2024-05-16", "custom_g7"), existing)
	if rej == nil || rej.Code != CodeWeeklyCapExceeded {
		t.Fatalf("rejection = %+v, want %s", rej, CodeWeeklyCapExceeded)
	}
	if rej.TotalHours != 37 || rej.MaxHours != 36 {
		t.Errorf("reported hours = (%v, %v), want (37, 36)", rej.TotalHours, rej.MaxHours)
	}
}

func TestWeeklyCapIgnoresNeighboringWeeks(t *testing.T) {
	v := newTestValidator()

	// Heavy load just outside the window of 2024-05-12..18.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-11", ShiftTypeID: domain.ShiftTypeNightGuard},
		{ID: 2, DoctorID: 1, Date: "2024-05-19", ShiftTypeID: domain.ShiftTypeNightGuard},
		{ID: 3, DoctorID: 1, Date: "2024-05-14", ShiftTypeID: domain.ShiftTypeMorningAfternoon},
	}

	if rej := v.Validate(proposal(1, "2024-05-16", domain.ShiftTypeMorningAfternoon), existing); rej != nil {
		t.Fatalf("in-window 24h rejected: %+v", rej)
	}
}

func TestMonthlyCapOnEdit(t *testing.T) {
	v := newTestValidator()

	// 144 hours in May: ten 12h guards, two 6h mornings (one of them being
	// edited) and one 12h night.
	existing := make([]*domain.Shift, 0, 13)
	for day := 1; day <= 10; day++ {
		existing = append(existing, &domain.Shift{
			ID:          int64(day),
			DoctorID:    1,
			Date:        domainDate(2024, 5, day*2),
			ShiftTypeID: domain.ShiftTypeDayGuard,
		})
	}
	existing = append(existing,
		&domain.Shift{ID: 11, DoctorID: 1, Date: "2024-05-23", ShiftTypeID: domain.ShiftTypeMorning},
		&domain.Shift{ID: 12, DoctorID: 1, Date: "2024-05-25", ShiftTypeID: domain.ShiftTypeNight},
		&domain.Shift{ID: 13, DoctorID: 1, Date: "2024-05-27", ShiftTypeID: domain.ShiftTypeMorning},
	)

	// 144 - 6 + 12 = 150: exactly at the cap, allowed.
	if rej := v.Validate(editProposal(1, "2024-05-27", domain.ShiftTypeNight, 13), existing); rej != nil {
		t.Fatalf("projected 150h rejected: %+v", rej)
	}

	// Adding a new shift instead: 144 + 12 = 156, blocked.
	rej := v.Validate(proposal(1, "2024-05-29", domain.ShiftTypeNight), existing)
	if rej == nil || rej.Code != CodeMonthlyCapExceeded {
		t.Fatalf("rejection = %+v, want %s", rej, CodeMonthlyCapExceeded)
	}
	if rej.TotalHours != 156 || rej.MaxHours != 150 {
		t.Errorf("reported hours = (%v, %v), want (156, 150)", rej.TotalHours, rej.MaxHours)
	}
}

func TestVacationExclusivityBothDirections(t *testing.T) {
	v := newTestValidator()

	// Work on a vacation day.
	onVacation := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeVacation},
	}
	rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeMorning), onVacation)
	if rej == nil || rej.Code != CodeVacationConflict {
		t.Fatalf("work onto vacation: rejection = %+v, want %s", rej, CodeVacationConflict)
	}

	// Vacation on a work day: the independent path yields the same code.
	working := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning},
	}
	rej = v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeVacation), working)
	if rej == nil || rej.Code != CodeVacationConflict {
		t.Fatalf("vacation onto work: rejection = %+v, want %s", rej, CodeVacationConflict)
	}

	// Another doctor's vacation is irrelevant.
	othersVacation := []*domain.Shift{
		{ID: 1, DoctorID: 2, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeVacation},
	}
	if rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeMorning), othersVacation); rej != nil {
		t.Fatalf("unrelated vacation blocked the shift: %+v", rej)
	}
}

func TestRestAfterNightBlocksEverything(t *testing.T) {
	v := newTestValidator()

	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-10", ShiftTypeID: domain.ShiftTypeNightGuard},
	}

	for _, typeID := range []string{
		domain.ShiftTypeMorning,
		domain.ShiftTypeNight,
		domain.ShiftTypeVacation,
	} {
		rej := v.Validate(proposal(1, "2024-05-11", typeID), existing)
		if rej == nil || rej.Code != CodeInsufficientRest {
			t.Errorf("%s after night guard: rejection = %+v, want %s", typeID, rej, CodeInsufficientRest)
		}
	}

	// Two days later is fine.
	if rej := v.Validate(proposal(1, "2024-05-12", domain.ShiftTypeMorning), existing); rej != nil {
		t.Errorf("day-after-next rejected: %+v", rej)
	}

	// The plain Night type imposes the same obligation.
	night := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-10", ShiftTypeID: domain.ShiftTypeNight},
	}
	if rej := v.Validate(proposal(1, "2024-05-11", domain.ShiftTypeMorning), night); rej == nil || rej.Code != CodeInsufficientRest {
		t.Errorf("morning after night: rejection = %+v, want %s", rej, CodeInsufficientRest)
	}
}

func TestRestRuleConsidersReplacedShift(t *testing.T) {
	v := newTestValidator()

	// Editing the shift on the 11th does not waive the rest owed for the
	// night on the 10th.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-10", ShiftTypeID: domain.ShiftTypeNightGuard},
		{ID: 2, DoctorID: 1, Date: "2024-05-11", ShiftTypeID: domain.ShiftTypeVacation},
	}

	rej := v.Validate(editProposal(1, "2024-05-11", domain.ShiftTypeMorning, 2), existing)
	if rej == nil || rej.Code != CodeInsufficientRest {
		t.Fatalf("rejection = %+v, want %s", rej, CodeInsufficientRest)
	}
}

func TestTimeOverlap(t *testing.T) {
	v := newTestValidator()

	morning := []*domain.Shift{
		{ID: 7, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning}, // 07:00-13:00
	}

	// 07:00-19:00 overlaps the morning and names the offending shift.
	rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeDayGuard), morning)
	if rej == nil || rej.Code != CodeTimeOverlap {
		t.Fatalf("rejection = %+v, want %s", rej, CodeTimeOverlap)
	}
	if rej.OtherShiftID != 7 {
		t.Errorf("OtherShiftID = %d, want 7", rej.OtherShiftID)
	}

	// Half-open intervals: 13:00-19:00 after 07:00-13:00 touches but does not
	// overlap. The weekly total is 12h, well under the cap.
	if rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeAfternoon), morning); rej != nil {
		t.Fatalf("adjacent shifts rejected: %+v", rej)
	}
}

func TestOvernightOverlapBoundary(t *testing.T) {
	v := newTestValidator(
		&domain.ShiftTypeDefinition{ID: "custom_tarde_noche", Name: "Tarde Extendida", Abbreviation: "TE", DurationHours: 4, StartTime: "18:00", EndTime: "22:00"},
	)

	// Night guard 19:00-07:00: the end wraps to minute 1860 of the shift's
	// own calendar day.
	nightGuard := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeNightGuard},
	}

	// 18:00-22:00 crosses the 19:00 start.
	rej := v.Validate(proposal(1, "2024-05-15", "custom_tarde_noche"), nightGuard)
	if rej == nil || rej.Code != CodeTimeOverlap {
		t.Fatalf("rejection = %+v, want %s", rej, CodeTimeOverlap)
	}

	// Two wrapping shifts on the same day always collide.
	rej = v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeNight), nightGuard)
	if rej == nil || rej.Code != CodeTimeOverlap {
		t.Fatalf("night onto night guard: rejection = %+v, want %s", rej, CodeTimeOverlap)
	}

	// A morning starting exactly where the guard's wrapped tail ends does not
	// overlap: the tail belongs to the next calendar day, and on the guard's
	// own day 07:00 precedes the 19:00 start.
	if rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeMorning), nightGuard); rej != nil {
		t.Fatalf("07:00 start rejected against 19:00-07:00 guard: %+v", rej)
	}
}

func TestUntimedTypesNeverOverlap(t *testing.T) {
	v := newTestValidator()

	// Vacation has no clock interval, so the overlap rule ignores it; the
	// exclusivity rule is what guards vacation days. Here the existing shift
	// belongs to someone else, so nothing fires.
	existing := []*domain.Shift{
		{ID: 1, DoctorID: 2, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeDayGuard},
	}
	if rej := v.Validate(proposal(1, "2024-05-15", domain.ShiftTypeVacation), existing); rej != nil {
		t.Fatalf("vacation rejected: %+v", rej)
	}
}

func TestEditExcludesReplacedShiftFromOverlap(t *testing.T) {
	v := newTestValidator()

	existing := []*domain.Shift{
		{ID: 9, DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning},
	}

	// Replacing the morning with the full-day shift on the same date would
	// self-overlap unless the replaced shift is excluded.
	if rej := v.Validate(editProposal(1, "2024-05-15", domain.ShiftTypeMorningAfternoon, 9), existing); rej != nil {
		t.Fatalf("self-replacement rejected: %+v", rej)
	}
}

func domainDate(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}
