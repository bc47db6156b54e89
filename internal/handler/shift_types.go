package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// GetShiftTypes returns the merged catalog: the built-in standard types plus
// the stored custom ones. Non-admins only see the types assignable to their
// specialty.
func (h *Handler) GetShiftTypes(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	custom, err := h.repository.GetCustomShiftTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	cat := catalog.New(custom)

	specialty := r.URL.Query().Get("specialty")
	if myInfo.Role != domain.RoleAdmin {
		specialty = myInfo.Specialty
	}

	if specialty == "" {
		h.successResponse(w, r, "Lista de tipos de turno obtenida", cat.All())
		return
	}

	h.successResponse(w, r, "Lista de tipos de turno obtenida", cat.ForSpecialty(specialty))
}

func (h *Handler) CreateShiftType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name" validate:"required"`
		Abbreviation string `json:"abbreviation" validate:"required"`
		StartTime    string `json:"startTime" validate:"required,datetime=15:04"`
		EndTime      string `json:"endTime" validate:"required,datetime=15:04"`
		Color        string `json:"color" validate:"omitempty,hexcolor"`
		Specialty    string `json:"specialty"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	custom, err := h.repository.GetCustomShiftTypes()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if catalog.New(custom).NameTaken(req.Name, req.Abbreviation) {
		h.errorResponse(w, r, "El nombre o la abreviatura ya están en uso")
		return
	}

	// Custom types never wrap past midnight; only the built-in night types do.
	start, _ := time.Parse("15:04", req.StartTime)
	end, _ := time.Parse("15:04", req.EndTime)
	if !start.Before(end) {
		h.errorResponse(w, r, "La hora de inicio debe ser anterior a la hora de fin")
		return
	}

	shiftType := &domain.ShiftTypeDefinition{
		ID:            fmt.Sprintf("custom_%d", time.Now().UnixMilli()),
		Name:          req.Name,
		Abbreviation:  req.Abbreviation,
		DurationHours: end.Sub(start).Hours(),
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Color:         req.Color,
		Specialty:     req.Specialty,
	}

	if err := h.repository.CreateShiftType(shiftType); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "shift_types_specialty_fkey":
				h.badRequest(w, r, errors.New("La especialidad no existe"))
			case pgErr.ConstraintName == "shift_types_name_key", pgErr.ConstraintName == "shift_types_abbreviation_key":
				h.badRequest(w, r, errors.New("El nombre o la abreviatura ya están en uso"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Tipo de turno creado", shiftType)
}

func (h *Handler) DeleteShiftType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if domain.IsStandardType(id) {
		h.errorResponse(w, r, "Los tipos de turno estándar no se pueden eliminar")
		return
	}

	inUse, err := h.schedule.IsShiftTypeInUse(id)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if inUse {
		h.errorResponse(w, r, "El tipo de turno está en uso y no se puede eliminar")
		return
	}

	if err := h.repository.DeleteShiftType(id); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Tipo de turno eliminado", nil)
}
