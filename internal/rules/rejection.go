package rules

import (
	"fmt"
)

// Code identifies why a proposed assignment was rejected. Every rejection is
// local and re-triable; the caller renders the human-readable text.
type Code string

const (
	CodeUnknownDoctor      Code = "UNKNOWN_DOCTOR"
	CodeInvalidDate        Code = "INVALID_DATE"
	CodeUnknownShiftType   Code = "UNKNOWN_SHIFT_TYPE"
	CodeWeeklyCapExceeded  Code = "WEEKLY_CAP_EXCEEDED"
	CodeMonthlyCapExceeded Code = "MONTHLY_CAP_EXCEEDED"
	CodeVacationConflict   Code = "VACATION_CONFLICT"
	CodeInsufficientRest   Code = "INSUFFICIENT_REST"
	CodeTimeOverlap        Code = "TIME_OVERLAP"
)

// Rejection carries the first violated rule plus the numbers the presentation
// layer needs. TotalHours/MaxHours are set for the cap codes, OtherShiftID for
// time overlaps.
type Rejection struct {
	Code         Code    `json:"code"`
	TotalHours   float64 `json:"totalHours,omitempty"`
	MaxHours     float64 `json:"maxHours,omitempty"`
	OtherShiftID int64   `json:"otherShiftId,omitempty"`
}

func (r *Rejection) Error() string {
	switch r.Code {
	case CodeWeeklyCapExceeded, CodeMonthlyCapExceeded:
		return fmt.Sprintf("%s: %g > %g", r.Code, r.TotalHours, r.MaxHours)
	case CodeTimeOverlap:
		return fmt.Sprintf("%s: shift %d", r.Code, r.OtherShiftID)
	default:
		return string(r.Code)
	}
}
