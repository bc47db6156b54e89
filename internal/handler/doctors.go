package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
)

// GetDoctors lists the roster. Admins see everyone (optionally filtered by
// ?specialty=); other users only see their own specialty.
func (h *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	specialty := r.URL.Query().Get("specialty")
	if myInfo.Role != domain.RoleAdmin {
		specialty = myInfo.Specialty
	}

	var (
		doctors []*domain.Doctor
		err     error
	)
	if specialty == "" {
		doctors, err = h.repository.GetAllDoctors()
	} else {
		doctors, err = h.repository.GetDoctorsBySpecialty(specialty)
	}
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Lista de médicos obtenida", doctors)
}

func (h *Handler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DNI              string `json:"dni" validate:"required"`
		FullName         string `json:"fullName" validate:"required"`
		Position         string `json:"position" validate:"required"`
		EmploymentStatus string `json:"employmentStatus" validate:"required,oneof=Nombrado Contratado Suplente"`
		Specialty        string `json:"specialty" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doctor := &domain.Doctor{
		DNI:              req.DNI,
		FullName:         req.FullName,
		Position:         req.Position,
		EmploymentStatus: req.EmploymentStatus,
		Specialty:        req.Specialty,
	}

	if err := h.repository.CreateDoctor(doctor); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "doctors_dni_key":
				h.badRequest(w, r, errors.New("Ya existe un médico con ese DNI"))
			case pgErr.ConstraintName == "doctors_specialty_fkey":
				h.badRequest(w, r, errors.New("La especialidad no existe"))
			default:
				h.internalServerError(w, r, err)
			}
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Médico creado", doctor)
}

func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor := r.Context().Value(DoctorCtx).(*domain.Doctor)
	h.successResponse(w, r, "Médico obtenido", doctor)
}

func (h *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DNI              *string `json:"dni"`
		FullName         *string `json:"fullName"`
		Position         *string `json:"position"`
		EmploymentStatus *string `json:"employmentStatus" validate:"omitempty,oneof=Nombrado Contratado Suplente"`
		Specialty        *string `json:"specialty"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	doctor := r.Context().Value(DoctorCtx).(*domain.Doctor)

	if req.DNI != nil {
		doctor.DNI = *req.DNI
	}
	if req.FullName != nil {
		doctor.FullName = *req.FullName
	}
	if req.Position != nil {
		doctor.Position = *req.Position
	}
	if req.EmploymentStatus != nil {
		doctor.EmploymentStatus = *req.EmploymentStatus
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}

	if err := h.repository.UpdateDoctor(doctor); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr):
			switch {
			case pgErr.ConstraintName == "doctors_dni_key":
				h.badRequest(w, r, errors.New("Ya existe un médico con ese DNI"))
			case pgErr.ConstraintName == "doctors_specialty_fkey":
				h.badRequest(w, r, errors.New("La especialidad no existe"))
			default:
				h.internalServerError(w, r, err)
			}
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "No se pudo actualizar el médico, inténtelo de nuevo")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "Médico actualizado", doctor)
}

// DeleteDoctor removes the doctor and, via the foreign key cascade, all of
// their shifts.
func (h *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	doctor := r.Context().Value(DoctorCtx).(*domain.Doctor)

	if err := h.repository.DeleteDoctor(doctor.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "Médico eliminado", nil)
}
