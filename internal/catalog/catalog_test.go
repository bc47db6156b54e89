package catalog

import (
	"testing"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func TestResolveStandardTypes(t *testing.T) {
	c := New(nil)

	for _, id := range []string{
		domain.ShiftTypeMorning,
		domain.ShiftTypeAfternoon,
		domain.ShiftTypeMorningAfternoon,
		domain.ShiftTypeNight,
		domain.ShiftTypeDayGuard,
		domain.ShiftTypeNightGuard,
		domain.ShiftTypeVacation,
	} {
		def, ok := c.Resolve(id)
		if !ok {
			t.Fatalf("Resolve(%q) = not found", id)
		}
		if def.ID != id {
			t.Errorf("Resolve(%q).ID = %q", id, def.ID)
		}
		if def.Specialty != "" {
			t.Errorf("standard type %q has specialty scope %q", id, def.Specialty)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	c := New(nil)

	if _, ok := c.Resolve("Guardia"); ok {
		t.Error("Resolve of unknown id reported found")
	}
	if got := c.DurationOf("Guardia"); got != 0 {
		t.Errorf("DurationOf(unknown) = %v, want 0", got)
	}
}

func TestVacationIsUntimed(t *testing.T) {
	c := New(nil)

	def, _ := c.Resolve(domain.ShiftTypeVacation)
	if def.Timed() {
		t.Error("Vacation reports a clock interval")
	}
	if def.DurationHours != 0 {
		t.Errorf("Vacation duration = %v, want 0", def.DurationHours)
	}
}

func TestCustomTypes(t *testing.T) {
	custom := []*domain.ShiftTypeDefinition{
		{ID: "custom_ce", Name: "Consulta Externa", Abbreviation: "CE", DurationHours: 4, StartTime: "08:00", EndTime: "12:00", Specialty: "Cardiología"},
	}
	c := New(custom)

	def, ok := c.Resolve("custom_ce")
	if !ok {
		t.Fatal("custom type not resolvable")
	}
	if got := c.DurationOf("custom_ce"); got != 4 {
		t.Errorf("DurationOf(custom_ce) = %v, want 4", got)
	}
	if !def.Timed() {
		t.Error("timed custom type reports untimed")
	}
}

func TestForSpecialtyScoping(t *testing.T) {
	custom := []*domain.ShiftTypeDefinition{
		{ID: "custom_ce", Name: "Consulta Externa", Abbreviation: "CE", DurationHours: 4, StartTime: "08:00", EndTime: "12:00", Specialty: "Cardiología"},
		{ID: "custom_eco", Name: "Ecografías", Abbreviation: "ECO", DurationHours: 3, StartTime: "14:00", EndTime: "17:00", Specialty: "Pediatría"},
	}
	c := New(custom)

	defs := c.ForSpecialty("Cardiología")
	ids := make(map[string]bool, len(defs))
	for _, def := range defs {
		ids[def.ID] = true
	}

	if !ids["custom_ce"] {
		t.Error("ForSpecialty(Cardiología) missing its own custom type")
	}
	if ids["custom_eco"] {
		t.Error("ForSpecialty(Cardiología) includes another specialty's custom type")
	}
	if !ids[domain.ShiftTypeNightGuard] {
		t.Error("ForSpecialty(Cardiología) missing global standard type")
	}
}

func TestNameTaken(t *testing.T) {
	custom := []*domain.ShiftTypeDefinition{
		{ID: "custom_ce", Name: "Consulta Externa", Abbreviation: "CE", DurationHours: 4, StartTime: "08:00", EndTime: "12:00", Specialty: "Cardiología"},
	}
	c := New(custom)

	cases := []struct {
		name         string
		abbreviation string
		want         bool
	}{
		{"Mañana", "X1", true},   // standard name, compiled in
		{"Refuerzo", "M", true},  // standard abbreviation
		{"mañana", "X1", true},   // case-insensitive
		{"Consulta Externa", "X1", true},
		{"Refuerzo", "ce", true},
		{"Refuerzo", "RF", false},
	}
	for _, tc := range cases {
		if got := c.NameTaken(tc.name, tc.abbreviation); got != tc.want {
			t.Errorf("NameTaken(%q, %q) = %v, want %v", tc.name, tc.abbreviation, got, tc.want)
		}
	}
}

func TestNightTypeMembershipIsClosed(t *testing.T) {
	if !domain.IsNightType(domain.ShiftTypeNight) || !domain.IsNightType(domain.ShiftTypeNightGuard) {
		t.Error("standard night types not in the night set")
	}
	// Starts at 19:00 like NightGuard, but a custom type never joins the
	// rest-rule set.
	if domain.IsNightType("custom_turno_noche") {
		t.Error("custom id treated as a night type")
	}
	if domain.IsNightType(domain.ShiftTypeMorning) {
		t.Error("Morning treated as a night type")
	}
}
