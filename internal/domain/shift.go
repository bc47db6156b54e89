package domain

// DateLayout is the wire and storage format for shift dates.
const DateLayout = "2006-01-02"

type Shift struct {
	ID          int64  `json:"id"`
	DoctorID    int64  `json:"doctorId"`
	Date        string `json:"date"` // YYYY-MM-DD
	ShiftTypeID string `json:"shiftTypeId"`
}

// ProposedAssignment is a transient value checked by the rule engine before it
// becomes a Shift. ExcludeShiftID is set when editing, so the shift being
// edited is not counted as a conflict against itself.
type ProposedAssignment struct {
	DoctorID       int64  `json:"doctorId"`
	Date           string `json:"date"`
	ShiftTypeID    string `json:"shiftTypeId"`
	ExcludeShiftID *int64 `json:"excludeShiftId,omitempty"`
}
