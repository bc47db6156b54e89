package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/rules"
)

// rejectionMessage maps a rule rejection to the text shown to the scheduler.
func rejectionMessage(rej *rules.Rejection) string {
	switch rej.Code {
	case rules.CodeUnknownDoctor:
		return "El médico no existe"
	case rules.CodeInvalidDate:
		return "La fecha no es válida"
	case rules.CodeUnknownShiftType:
		return "El tipo de turno no existe"
	case rules.CodeWeeklyCapExceeded:
		return fmt.Sprintf("Se superaría el máximo semanal: %g de %g horas", rej.TotalHours, rej.MaxHours)
	case rules.CodeMonthlyCapExceeded:
		return fmt.Sprintf("Se superaría el máximo mensual: %g de %g horas", rej.TotalHours, rej.MaxHours)
	case rules.CodeVacationConflict:
		return "Las vacaciones no se pueden combinar con otros turnos del mismo día"
	case rules.CodeInsufficientRest:
		return "Debe descansar el día posterior a un turno nocturno"
	case rules.CodeTimeOverlap:
		return "El horario se solapa con otro turno del mismo día"
	default:
		return "Asignación rechazada"
	}
}

// GetShifts lists one calendar month. Admins may narrow with ?specialty=;
// other users always get their own specialty's view.
func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		h.errorResponse(w, r, "El parámetro year es inválido")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		h.errorResponse(w, r, "El parámetro month es inválido")
		return
	}

	specialty := r.URL.Query().Get("specialty")
	if myInfo.Role != domain.RoleAdmin {
		specialty = myInfo.Specialty
	}

	var shifts []*domain.Shift
	if specialty == "" {
		shifts, err = h.repository.GetShiftsByMonth(year, time.Month(month))
	} else {
		shifts, err = h.repository.GetShiftsByMonthAndSpecialty(year, time.Month(month), specialty)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Turnos obtenidos", shifts)
}

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DoctorID    int64  `json:"doctorId" validate:"required"`
		Date        string `json:"date" validate:"required,datetime=2006-01-02"`
		ShiftTypeID string `json:"shiftTypeId" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	proposal := &domain.ProposedAssignment{
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		ShiftTypeID: req.ShiftTypeID,
	}

	shift, rej, err := h.schedule.Propose(proposal)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rej != nil {
		h.errorResponseWithData(w, r, rejectionMessage(rej), rej)
		return
	}

	h.notifyIfOverloaded(shift)
	h.successResponse(w, r, "Turno asignado", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		DoctorID    *int64  `json:"doctorId"`
		Date        *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
		ShiftTypeID *string `json:"shiftTypeId"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	proposal := &domain.ProposedAssignment{
		DoctorID:       shift.DoctorID,
		Date:           shift.Date,
		ShiftTypeID:    shift.ShiftTypeID,
		ExcludeShiftID: &shift.ID,
	}
	if req.DoctorID != nil {
		proposal.DoctorID = *req.DoctorID
	}
	if req.Date != nil {
		proposal.Date = *req.Date
	}
	if req.ShiftTypeID != nil {
		proposal.ShiftTypeID = *req.ShiftTypeID
	}

	updated, rej, err := h.schedule.Propose(proposal)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if rej != nil {
		h.errorResponseWithData(w, r, rejectionMessage(rej), rej)
		return
	}

	h.notifyIfOverloaded(updated)
	h.successResponse(w, r, "Turno actualizado", updated)
}

// DeleteShift is idempotent: deleting an already removed shift succeeds.
func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	shiftIDParam := chi.URLParam(r, "id")
	shiftID, err := strconv.ParseInt(shiftIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "ID de turno inválido")
		return
	}

	if err := h.schedule.Remove(shiftID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Turno eliminado", nil)
}

func (h *Handler) GetDoctorHours(w http.ResponseWriter, r *http.Request) {
	doctor := r.Context().Value(DoctorCtx).(*domain.Doctor)

	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format(domain.DateLayout)
	}
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		h.errorResponse(w, r, "El parámetro date es inválido")
		return
	}

	report, err := h.schedule.HoursReport(doctor.ID, date)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Resumen de horas obtenido", report)
}

// notifyIfOverloaded queues an alert mail when a commit leaves the doctor's
// month in the warning or critical band. Failures are logged, never surfaced:
// the shift is already committed.
func (h *Handler) notifyIfOverloaded(shift *domain.Shift) {
	report, err := h.schedule.HoursReport(shift.DoctorID, shift.Date)
	if err != nil {
		slog.Error("no se pudo calcular el resumen de horas", "doctorId", shift.DoctorID, "error", err)
		return
	}
	if report.Status != rules.StatusWarning && report.Status != rules.StatusCritical {
		return
	}

	doctor, err := h.repository.GetDoctorByID(shift.DoctorID)
	if err != nil {
		slog.Error("no se pudo obtener el médico para la alerta de horas", "doctorId", shift.DoctorID, "error", err)
		return
	}

	users, err := h.repository.GetAllUsers()
	if err != nil {
		slog.Error("no se pudieron obtener los administradores para la alerta de horas", "error", err)
		return
	}

	// Every active admin gets the alert; the bootstrap admin is one of them.
	for _, user := range users {
		if user.Role != domain.RoleAdmin || !user.IsActive {
			continue
		}

		mailMessage := domain.MailMessage{
			Type: "hours_alert",
			To:   user.Email,
			Data: domain.HoursAlertMailData{
				DoctorName:   doctor.FullName,
				Specialty:    doctor.Specialty,
				Month:        report.Month,
				MonthlyHours: report.MonthlyHours,
				Status:       string(report.Status),
			},
		}

		if err := h.publishNotification(mailMessage); err != nil {
			slog.Error("no se pudo encolar la alerta de horas", "doctorId", shift.DoctorID, "to", user.Email, "error", err)
		}
	}
}
