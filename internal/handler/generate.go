package handler

import (
	"net/http"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// GenerateSchedule drafts a month for one specialty with the generator model
// and commits each proposed assignment through the rule chain. Assignments the
// rules reject are reported back instead of committed.
func (h *Handler) GenerateSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Specialty     string `json:"specialty" validate:"required"`
		Year          int    `json:"year" validate:"required,gte=2000"`
		Month         int    `json:"month" validate:"required,gte=1,lte=12"`
		ClearExisting bool   `json:"clearExisting"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doctors, err := h.repository.GetDoctorsBySpecialty(req.Specialty)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(doctors) == 0 {
		h.errorResponse(w, r, "La especialidad no tiene médicos asignados")
		return
	}

	custom, err := h.repository.GetCustomShiftTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	shiftTypes := catalog.New(custom).ForSpecialty(req.Specialty)

	existing, err := h.repository.GetShiftsByMonthAndSpecialty(req.Year, time.Month(req.Month), req.Specialty)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// Optionally start the month from a clean slate for this specialty. The
	// removals go through the schedule service so they take the same per-doctor
	// locks as the commits below.
	if req.ClearExisting {
		for _, s := range existing {
			if err := h.schedule.Remove(s.ID); err != nil {
				h.internalServerError(w, r, err)
				return
			}
		}
		existing = existing[:0]
	}

	proposals, err := h.generator.GenerateMonthlySchedule(r.Context(), doctors, shiftTypes, existing, req.Year, time.Month(req.Month), h.schedule.Thresholds())
	if err != nil {
		h.logInternalServerError(r, err)
		h.errorResponse(w, r, "No se pudo generar el cuadrante, inténtelo de nuevo")
		return
	}

	type rejectedAssignment struct {
		Assignment *domain.ProposedAssignment `json:"assignment"`
		Reason     string                     `json:"reason"`
	}

	committed := make([]*domain.Shift, 0, len(proposals))
	rejected := make([]rejectedAssignment, 0)

	for _, p := range proposals {
		p.ExcludeShiftID = nil
		shift, rej, err := h.schedule.Propose(p)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if rej != nil {
			rejected = append(rejected, rejectedAssignment{Assignment: p, Reason: rejectionMessage(rej)})
			continue
		}
		committed = append(committed, shift)
	}

	h.successResponse(w, r, "Cuadrante generado", map[string]any{
		"committed": committed,
		"rejected":  rejected,
	})
}
