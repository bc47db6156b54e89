package rules

import (
	"testing"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

var testThresholds = Thresholds{
	MaxWeekly:      36,
	MonthlyWarning: 140,
	MonthlyMax:     150,
	MonthlyMin:     120,
}

func TestWeekWindow(t *testing.T) {
	tests := []struct {
		date      string
		wantStart string
		wantEnd   string
	}{
		// 2024-05-15 is a Wednesday.
		{"2024-05-15", "2024-05-12", "2024-05-18"},
		// A Sunday anchors its own week.
		{"2024-05-12", "2024-05-12", "2024-05-18"},
		// A Saturday closes the week.
		{"2024-05-18", "2024-05-12", "2024-05-18"},
		// Window crossing a month boundary.
		{"2024-06-01", "2024-05-26", "2024-06-01"},
	}

	for _, tt := range tests {
		start, end, err := WeekWindow(tt.date)
		if err != nil {
			t.Fatalf("WeekWindow(%q): %v", tt.date, err)
		}
		if got := start.Format(domain.DateLayout); got != tt.wantStart {
			t.Errorf("WeekWindow(%q) start = %s, want %s", tt.date, got, tt.wantStart)
		}
		if got := end.Format(domain.DateLayout); got != tt.wantEnd {
			t.Errorf("WeekWindow(%q) end = %s, want %s", tt.date, got, tt.wantEnd)
		}
	}
}

func TestMonthlyHours(t *testing.T) {
	a := NewAccountant(catalog.New(nil))

	shifts := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-02", ShiftTypeID: domain.ShiftTypeNight},            // 12
		{ID: 2, DoctorID: 1, Date: "2024-05-10", ShiftTypeID: domain.ShiftTypeMorning},          // 6
		{ID: 3, DoctorID: 1, Date: "2024-05-20", ShiftTypeID: domain.ShiftTypeVacation},         // 0
		{ID: 4, DoctorID: 1, Date: "2024-06-01", ShiftTypeID: domain.ShiftTypeDayGuard},         // other month
		{ID: 5, DoctorID: 2, Date: "2024-05-10", ShiftTypeID: domain.ShiftTypeMorningAfternoon}, // other doctor
	}

	if got := a.MonthlyHours(shifts, 1, 2024, time.May); got != 18 {
		t.Errorf("MonthlyHours = %v, want 18", got)
	}
	if got := a.MonthlyHours(shifts, 1, 2024, time.June); got != 12 {
		t.Errorf("MonthlyHours(June) = %v, want 12", got)
	}
	if got := a.MonthlyHours(shifts, 3, 2024, time.May); got != 0 {
		t.Errorf("MonthlyHours(no shifts) = %v, want 0", got)
	}
}

func TestWeeklyHoursWindowEdges(t *testing.T) {
	a := NewAccountant(catalog.New(nil))

	// Week of 2024-05-12 (Sun) .. 2024-05-18 (Sat).
	shifts := []*domain.Shift{
		{ID: 1, DoctorID: 1, Date: "2024-05-11", ShiftTypeID: domain.ShiftTypeNight},     // Saturday before
		{ID: 2, DoctorID: 1, Date: "2024-05-12", ShiftTypeID: domain.ShiftTypeMorning},   // first day
		{ID: 3, DoctorID: 1, Date: "2024-05-18", ShiftTypeID: domain.ShiftTypeAfternoon}, // last day
		{ID: 4, DoctorID: 1, Date: "2024-05-19", ShiftTypeID: domain.ShiftTypeDayGuard},  // Sunday after
	}

	if got := a.WeeklyHours(shifts, 1, "2024-05-15"); got != 12 {
		t.Errorf("WeeklyHours = %v, want 12", got)
	}
}

func TestMonthlyStatusBands(t *testing.T) {
	tests := []struct {
		hours float64
		want  MonthlyStatus
	}{
		{0, StatusLow},
		{119.5, StatusLow},
		{120, StatusOK},
		{140, StatusOK},
		{140.5, StatusWarning},
		{149.9, StatusWarning},
		{150, StatusCritical},
		{162, StatusCritical},
	}

	for _, tt := range tests {
		if got := testThresholds.MonthlyStatus(tt.hours); got != tt.want {
			t.Errorf("MonthlyStatus(%v) = %s, want %s", tt.hours, got, tt.want)
		}
	}
}
