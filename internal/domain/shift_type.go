package domain

// ShiftTypeDefinition describes one assignable shift category. Standard types
// are global and fixed at compile time; custom types live in the database and
// are scoped to exactly one specialty.
type ShiftTypeDefinition struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Abbreviation  string  `json:"abbreviation"`
	DurationHours float64 `json:"durationHours"`
	StartTime     string  `json:"startTime,omitempty"` // HH:MM, empty for untimed types
	EndTime       string  `json:"endTime,omitempty"`   // HH:MM, may be <= StartTime (overnight)
	Color         string  `json:"color,omitempty"`
	Specialty     string  `json:"specialty,omitempty"` // empty = global
}

// Timed reports whether the type carries a clock interval. Vacation does not.
func (d *ShiftTypeDefinition) Timed() bool {
	return d.StartTime != "" && d.EndTime != ""
}

const (
	ShiftTypeMorning          = "Morning"
	ShiftTypeAfternoon        = "Afternoon"
	ShiftTypeMorningAfternoon = "MorningAfternoon"
	ShiftTypeNight            = "Night"
	ShiftTypeDayGuard         = "DayGuard"
	ShiftTypeNightGuard       = "NightGuard"
	ShiftTypeVacation         = "Vacation"
)

var StandardShiftTypes = []ShiftTypeDefinition{
	{ID: ShiftTypeMorning, Name: "Mañana", Abbreviation: "M", DurationHours: 6, StartTime: "07:00", EndTime: "13:00"},
	{ID: ShiftTypeAfternoon, Name: "Tarde", Abbreviation: "T", DurationHours: 6, StartTime: "13:00", EndTime: "19:00"},
	{ID: ShiftTypeMorningAfternoon, Name: "Mañana y Tarde", Abbreviation: "MT", DurationHours: 12, StartTime: "07:00", EndTime: "19:00"},
	{ID: ShiftTypeNight, Name: "Noche", Abbreviation: "N", DurationHours: 12, StartTime: "19:00", EndTime: "07:00"},
	{ID: ShiftTypeDayGuard, Name: "Guardia Diurna", Abbreviation: "GD", DurationHours: 12, StartTime: "07:00", EndTime: "19:00"},
	{ID: ShiftTypeNightGuard, Name: "Guardia Nocturna", Abbreviation: "GN", DurationHours: 12, StartTime: "19:00", EndTime: "07:00"},
	{ID: ShiftTypeVacation, Name: "Vacaciones", Abbreviation: "V", DurationHours: 0},
}

// IsNightType reports rest-rule membership. This is a closed set, not a
// start-time heuristic: only the two standard night types forbid work on the
// following day.
func IsNightType(shiftTypeID string) bool {
	return shiftTypeID == ShiftTypeNight || shiftTypeID == ShiftTypeNightGuard
}

// IsStandardType reports whether the id belongs to the fixed global set.
func IsStandardType(shiftTypeID string) bool {
	for _, st := range StandardShiftTypes {
		if st.ID == shiftTypeID {
			return true
		}
	}
	return false
}
