package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

func (h *Handler) GetAllSpecialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.repository.GetAllSpecialties()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Lista de especialidades obtenida", specialties)
}

func (h *Handler) CreateSpecialty(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name" validate:"required"`
		Color string `json:"color" validate:"omitempty,hexcolor"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Color == "" {
		existing, err := h.repository.GetAllSpecialties()
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		req.Color = domain.SpecialtyColorPalette[len(existing)%len(domain.SpecialtyColorPalette)]
	}

	specialty := &domain.Specialty{
		Name:  req.Name,
		Color: req.Color,
	}

	if err := h.repository.CreateSpecialty(specialty); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "specialties_pkey":
			h.badRequest(w, r, errors.New("La especialidad ya existe"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Especialidad creada", specialty)
}

func (h *Handler) DeleteSpecialty(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	count, err := h.repository.CountDoctorsBySpecialty(name)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if count > 0 {
		h.errorResponse(w, r, "No se puede eliminar una especialidad con médicos asignados")
		return
	}

	if err := h.repository.DeleteSpecialty(name); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "users_specialty_fkey":
			h.errorResponse(w, r, "No se puede eliminar una especialidad con usuarios asignados")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Especialidad eliminada", nil)
}
